package pauta

import (
	"errors"
	"fmt"

	"pauta-plenario/internal/domain"
)

// ErrParecerDuplicado sinaliza dois candidatos com o mesmo número máximo
// na mesma categoria, o que indica anomalia nos dados da fonte.
var ErrParecerDuplicado = errors.New("número máximo de parecer duplicado na categoria")

// selecionarPareceres escolhe, por categoria presente, o candidato de maior
// número, na ordem fixa PRLP depois PRLE. Categorias sem candidato ficam de
// fora. Um empate no número máximo é devolvido como erro em vez de
// resolvido silenciosamente.
func selecionarPareceres(candidatos []domain.CandidatoParecer) ([]domain.ParecerSubstitutivoVoto, error) {
	selecionados := make([]domain.ParecerSubstitutivoVoto, 0, 2)
	for _, categoria := range []domain.CategoriaParecer{domain.CategoriaPRLP, domain.CategoriaPRLE} {
		var melhor *domain.CandidatoParecer
		duplicado := false
		for i := range candidatos {
			c := candidatos[i]
			if c.Categoria != categoria {
				continue
			}
			switch {
			case melhor == nil || c.Numero > melhor.Numero:
				cc := c
				melhor = &cc
				duplicado = false
			case c.Numero == melhor.Numero:
				duplicado = true
			}
		}
		if melhor == nil {
			continue
		}
		if duplicado {
			return nil, fmt.Errorf("%w: %s %d", ErrParecerDuplicado, categoria, melhor.Numero)
		}
		selecionados = append(selecionados, melhor.Parecer())
	}
	return selecionados, nil
}
