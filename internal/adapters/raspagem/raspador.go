package raspagem

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pauta-plenario/internal/domain"
	"pauta-plenario/internal/infra/metrics"
)

// BuscadorPaginas busca o corpo bruto de uma página raspada.
type BuscadorPaginas interface {
	PaginaHTML(ctx context.Context, operacao, pagina string, params url.Values, timeout time.Duration) ([]byte, error)
}

// Config descreve as páginas raspadas e os seus tempos-limite.
type Config struct {
	PlenarioID           int
	URLRequerimentos     string
	URLDestaques         string
	URLPareceres         string
	TimeoutDestaques     time.Duration
	TimeoutRequerimentos time.Duration
	TimeoutPareceres     time.Duration
}

// Raspador extrai registros tipados das três páginas HTML da Câmara.
type Raspador struct {
	buscador BuscadorPaginas
	cfg      Config
	log      zerolog.Logger
}

var _ domain.RaspadorPaginas = (*Raspador)(nil)

// NewRaspador cria o raspador sobre o buscador de páginas.
func NewRaspador(buscador BuscadorPaginas, cfg Config, logger zerolog.Logger) *Raspador {
	return &Raspador{buscador: buscador, cfg: cfg, log: logger}
}

var perfilDestaques = Perfil{Colunas: []Coluna{
	{Nome: "numero", PalavraChave: "número"},
	{Nome: "autoria", PalavraChave: "autoria"},
	{Nome: "descricao", PalavraChave: "descri"},
	{Nome: "tipo", PalavraChave: "tipo"},
	{Nome: "situacao", PalavraChave: "situa"},
}}

// Destaques extrai os destaques e emendas em tramitação da proposição.
func (r *Raspador) Destaques(ctx context.Context, idProposicao int64) ([]domain.DestaqueEmenda, error) {
	corpo, err := r.buscador.PaginaHTML(ctx, "destaques", r.cfg.URLDestaques, r.paramsOrgao(idProposicao), r.cfg.TimeoutDestaques)
	if err != nil {
		return nil, err
	}
	linhas, err := extrairLinhas(corpo, perfilDestaques)
	if err != nil {
		return nil, err
	}
	destaques := make([]domain.DestaqueEmenda, 0, len(linhas))
	for _, l := range linhas {
		if l["situacao"] != domain.SituacaoEmTramitacao {
			continue
		}
		descricao := l["descricao"]
		if descricao == "" {
			descricao = domain.DescricaoIndisponivel
		}
		destaques = append(destaques, domain.DestaqueEmenda{
			Numero:       l["numero"],
			Autoria:      l["autoria"],
			Descricao:    descricao,
			TipoDestaque: l["tipo"],
			Situacao:     l["situacao"],
		})
	}
	metrics.LinhasRaspadas.WithLabelValues("destaques").Add(float64(len(destaques)))
	return destaques, nil
}

var perfilProcedimentos = Perfil{Colunas: []Coluna{
	{Nome: "numero", PalavraChave: "número"},
	{Nome: "autoria", PalavraChave: "autoria"},
	{Nome: "descricao", PalavraChave: "descri"},
	{Nome: "situacao", PalavraChave: "situa"},
	{Nome: "data", PalavraChave: "data"},
}}

// Procedimentos extrai os requerimentos procedimentais em tramitação.
func (r *Raspador) Procedimentos(ctx context.Context, idProposicao int64) ([]domain.Procedimento, error) {
	corpo, err := r.buscador.PaginaHTML(ctx, "requerimentos", r.cfg.URLRequerimentos, r.paramsOrgao(idProposicao), r.cfg.TimeoutRequerimentos)
	if err != nil {
		return nil, err
	}
	linhas, err := extrairLinhas(corpo, perfilProcedimentos)
	if err != nil {
		return nil, err
	}
	procs := make([]domain.Procedimento, 0, len(linhas))
	for _, l := range linhas {
		if l["situacao"] != domain.SituacaoEmTramitacao {
			continue
		}
		descricao := l["descricao"]
		if descricao == "" {
			descricao = domain.DescricaoIndisponivel
		}
		procs = append(procs, domain.Procedimento{
			Numero:    l["numero"],
			Autoria:   l["autoria"],
			Descricao: descricao,
			Situacao:  l["situacao"],
			Data:      domain.FormatarDataCurta(l["data"]),
		})
	}
	metrics.LinhasRaspadas.WithLabelValues("requerimentos").Add(float64(len(procs)))
	return procs, nil
}

var perfilPareceres = Perfil{Colunas: []Coluna{
	{Nome: "psv", PalavraChave: "pareceres"},
	{Nome: "tipo", PalavraChave: "tipo de propos"},
	{Nome: "data", PalavraChave: "data de apres"},
	{Nome: "autor", PalavraChave: "autor"},
	{Nome: "descricao", PalavraChave: "descri"},
}}

// padraoParecer reconhece o código de categoria seguido do número, p.ex.
// "PRLP 3". As duas categorias aceitas são PRLP e PRLE.
var padraoParecer = regexp.MustCompile(`\b(PRL[PE])\s*(\d+)\b`)

// CandidatosParecer extrai todos os pareceres PRLP/PRLE da página, antes
// da seleção do mais recente por categoria.
func (r *Raspador) CandidatosParecer(ctx context.Context, idProposicao int64) ([]domain.CandidatoParecer, error) {
	params := url.Values{"idProposicao": {strconv.FormatInt(idProposicao, 10)}}
	corpo, err := r.buscador.PaginaHTML(ctx, "pareceres", r.cfg.URLPareceres, params, r.cfg.TimeoutPareceres)
	if err != nil {
		return nil, err
	}
	linhas, err := extrairLinhas(corpo, perfilPareceres)
	if err != nil {
		return nil, err
	}

	// link estável para a página de histórico da proposição
	link := fmt.Sprintf("%s?idProposicao=%d", r.cfg.URLPareceres, idProposicao)

	candidatos := make([]domain.CandidatoParecer, 0, len(linhas))
	for _, l := range linhas {
		m := padraoParecer.FindStringSubmatch(l["psv"])
		if m == nil {
			continue
		}
		numero, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		candidatos = append(candidatos, domain.CandidatoParecer{
			Categoria:        domain.CategoriaParecer(m[1]),
			Numero:           numero,
			DataApresentacao: textoOuND(l["data"]),
			Autor:            textoOuND(l["autor"]),
			Descricao:        limparDescricaoParecer(l["descricao"]),
			LinkInteiroTeor:  link,
		})
	}
	metrics.LinhasRaspadas.WithLabelValues("pareceres").Add(float64(len(candidatos)))
	return candidatos, nil
}

func (r *Raspador) paramsOrgao(idProposicao int64) url.Values {
	return url.Values{
		"codOrgao":      {strconv.Itoa(r.cfg.PlenarioID)},
		"codProposicao": {strconv.FormatInt(idProposicao, 10)},
	}
}

func textoOuND(s string) string {
	if s == "" {
		return domain.NaoDisponivel
	}
	return s
}

// limparDescricaoParecer remove o texto de boilerplate "Inteiro teor" que a
// página embute junto da descrição.
func limparDescricaoParecer(s string) string {
	limpa := normalizarTexto(strings.ReplaceAll(s, "Inteiro teor", ""))
	if limpa == "" {
		return domain.DescricaoIndisponivel
	}
	return limpa
}
