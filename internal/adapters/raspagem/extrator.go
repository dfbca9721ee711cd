package raspagem

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Coluna descreve uma coluna lógica esperada em uma tabela de documento.
// O cabeçalho é casado por substring, sem diferenciar caixa.
type Coluna struct {
	Nome         string
	PalavraChave string
}

// Perfil descreve como localizar as colunas de um tipo de documento.
// A ordem das colunas é a ordem posicional usada no fallback quando os
// cabeçalhos semânticos não são reconhecidos.
type Perfil struct {
	Colunas []Coluna
}

// linha é o texto normalizado de uma linha, indexado pelo nome lógico.
type linha map[string]string

// extrairLinhas varre todas as tabelas do documento e devolve as linhas
// mapeadas pelas colunas do perfil, na ordem tabela/linha de encontro.
// Tabelas sem colunas reconhecíveis e sem contagem suficiente para o
// fallback posicional são ignoradas; linhas curtas também.
func extrairLinhas(corpo []byte, perfil Perfil) ([]linha, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(corpo))
	if err != nil {
		return nil, fmt.Errorf("ler documento: %w", err)
	}

	var linhas []linha
	doc.Find("table").Each(func(_ int, tabela *goquery.Selection) {
		indices, ok := resolverColunas(tabela, perfil)
		if !ok {
			return
		}
		maior := 0
		for _, idx := range indices {
			if idx > maior {
				maior = idx
			}
		}
		tabela.Find("tr").Each(func(i int, tr *goquery.Selection) {
			if i == 0 {
				// linha de cabeçalho
				return
			}
			celulas := tr.Find("td")
			if celulas.Length() < maior+1 {
				return
			}
			l := make(linha, len(perfil.Colunas))
			for nome, idx := range indices {
				l[nome] = normalizarTexto(celulas.Eq(idx).Text())
			}
			linhas = append(linhas, l)
		})
	})
	return linhas, nil
}

// resolverColunas tenta casar cada coluna do perfil com um cabeçalho da
// tabela; se alguma falhar e a tabela tiver colunas suficientes, cai para
// a atribuição posicional na ordem declarada do perfil.
func resolverColunas(tabela *goquery.Selection, perfil Perfil) (map[string]int, bool) {
	var cabecalhos []string
	tabela.Find("th").Each(func(_ int, th *goquery.Selection) {
		cabecalhos = append(cabecalhos, strings.ToLower(normalizarTexto(th.Text())))
	})

	indices := make(map[string]int, len(perfil.Colunas))
	completo := true
	for _, col := range perfil.Colunas {
		idx := indiceContendo(cabecalhos, col.PalavraChave)
		if idx < 0 {
			completo = false
			break
		}
		indices[col.Nome] = idx
	}
	if completo {
		return indices, true
	}

	if contarColunas(tabela, cabecalhos) >= len(perfil.Colunas) {
		for i, col := range perfil.Colunas {
			indices[col.Nome] = i
		}
		return indices, true
	}
	return nil, false
}

// contarColunas conta pelas células de cabeçalho ou, em tabelas sem
// cabeçalho semântico, pelas células da primeira linha de dados.
func contarColunas(tabela *goquery.Selection, cabecalhos []string) int {
	if len(cabecalhos) > 0 {
		return len(cabecalhos)
	}
	maior := 0
	tabela.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		if n := tr.Find("td").Length(); n > maior {
			maior = n
		}
		return i < 1
	})
	return maior
}

func indiceContendo(cabecalhos []string, palavra string) int {
	for i, h := range cabecalhos {
		if strings.Contains(h, palavra) {
			return i
		}
	}
	return -1
}

// normalizarTexto achata espaços e quebras de linha em espaços simples.
func normalizarTexto(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
