package pauta

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pauta-plenario/internal/domain"
	"pauta-plenario/internal/infra/metrics"
)

// Service responde as consultas sobre a pauta do Plenário, sempre passando
// pelo cache. Envelopes de falha também são gravados no cache, com o mesmo
// TTL, para não martelar uma fonte que já está falhando.
type Service struct {
	api      domain.ClienteCamara
	raspador domain.RaspadorPaginas
	cache    domain.Cache
	log      zerolog.Logger
}

var _ domain.ServicoPauta = (*Service)(nil)

// NewService cria o serviço de pauta.
func NewService(api domain.ClienteCamara, raspador domain.RaspadorPaginas, cache domain.Cache, logger zerolog.Logger) *Service {
	return &Service{api: api, raspador: raspador, cache: cache, log: logger}
}

// EventosDoDia busca os eventos do Plenário no dia e filtra os deliberativos.
func (s *Service) EventosDoDia(ctx context.Context, data string) domain.EventosDia {
	ck := "eventos:" + data
	if v, ok := s.cache.Get(ck); ok {
		if res, ok := v.(domain.EventosDia); ok {
			metrics.ObserveCache("eventos", true)
			return res
		}
	}
	metrics.ObserveCache("eventos", false)

	brutos, err := s.api.EventosDoDia(ctx, data)
	if err != nil {
		res := domain.EventosDia{Eventos: []domain.Evento{}, Erro: "Erro na API: " + err.Error()}
		s.cache.Set(ck, res)
		return res
	}

	eventos := make([]domain.Evento, 0, len(brutos))
	for _, e := range brutos {
		if !strings.Contains(e.DescricaoTipo, domain.MarcadorSessaoDeliberativa) {
			continue
		}
		situacao := e.Situacao
		if situacao == "" {
			situacao = domain.SituacaoNaoInformada
		}
		eventos = append(eventos, domain.Evento{
			IDEvento:       e.ID.Int64(),
			DataHoraInicio: domain.FormatarDataHora(e.DataHoraInicio),
			Situacao:       situacao,
			DescricaoTipo:  e.DescricaoTipo,
			Descricao:      e.Descricao,
		})
	}

	res := domain.EventosDia{TemSessao: len(eventos) > 0, Eventos: eventos}
	if len(eventos) == 0 {
		res.Erro = fmt.Sprintf("Nenhuma sessão deliberativa em %s.", data)
	}
	s.cache.Set(ck, res)
	return res
}

// PautaDoEvento monta a pauta de um evento, resolvendo a proposição
// principal de cada item e deduplicando por ela (a primeira ocorrência
// vence; itens sem proposição resolvível caem fora).
func (s *Service) PautaDoEvento(ctx context.Context, eventoID int64) domain.Pauta {
	ck := fmt.Sprintf("pauta:%d", eventoID)
	if v, ok := s.cache.Get(ck); ok {
		if res, ok := v.(domain.Pauta); ok {
			metrics.ObserveCache("pauta", true)
			return res
		}
	}
	metrics.ObserveCache("pauta", false)

	brutos, err := s.api.PautaDoEvento(ctx, eventoID)
	if err != nil {
		s.log.Error().Err(err).Int64("evento", eventoID).Msg("pauta: erro ao obter itens")
		res := domain.Pauta{Itens: []domain.ItemPauta{}, Erro: "Erro na API: " + err.Error()}
		s.cache.Set(ck, res)
		return res
	}
	s.log.Info().Int64("evento", eventoID).Int("itens", len(brutos)).Msg("pauta: itens recebidos")

	itens := make([]domain.ItemPauta, 0, len(brutos))
	vistos := make(map[int64]bool, len(brutos))
	for _, bruto := range brutos {
		principalID, ementa := principalDoItem(bruto)
		if principalID == 0 || vistos[principalID] {
			continue
		}
		vistos[principalID] = true

		detalhe := s.detalheProposicao(ctx, principalID)
		autores := s.autoresProposicao(ctx, principalID)

		item := domain.ItemPauta{
			Ordem:                       bruto.OrdemTexto(),
			Regime:                      bruto.Regime,
			Titulo:                      bruto.Titulo,
			IDProposicao:                principalID,
			Ementa:                      ementa,
			DescricaoSituacao:           detalhe.DescricaoSituacao,
			DestaquesEmendas:            []domain.DestaqueEmenda{},
			Procedimentos:               []domain.Procedimento{},
			Autores:                     autores,
			PareceresSubstitutivosVotos: []domain.ParecerSubstitutivoVoto{},
		}
		if r := bruto.Relator; r != nil {
			item.RelatorID = r.ID.Int64()
			item.RelatorNome = r.Nome
			item.RelatorSiglaPartido = r.SiglaPartido
			item.RelatorURLFoto = r.URLFoto
		}
		itens = append(itens, item)
	}

	res := domain.Pauta{TemPauta: len(itens) > 0, Itens: itens}
	if len(itens) == 0 {
		res.Erro = fmt.Sprintf("Sem itens para evento %d", eventoID)
	}
	s.cache.Set(ck, res)
	return res
}

// PautaDoDia monta a pauta mesclada de todos os eventos deliberativos do
// dia, na ordem dos eventos e, dentro de cada um, na ordem dos itens.
// eventoID diferente de zero restringe a um único evento.
func (s *Service) PautaDoDia(ctx context.Context, data string, eventoID int64) domain.PautaDia {
	inicio := time.Now()
	defer func() {
		metrics.PautaBuildSeconds.Observe(time.Since(inicio).Seconds())
	}()

	eventosRes := s.EventosDoDia(ctx, data)
	if !eventosRes.TemSessao {
		return domain.PautaDia{
			Itens:   []domain.ItemPauta{},
			Eventos: []domain.Evento{},
			Erro:    eventosRes.Erro,
		}
	}

	itens := []domain.ItemPauta{}
	for _, ev := range eventosRes.Eventos {
		if eventoID != 0 && ev.IDEvento != eventoID {
			continue
		}
		pauta := s.PautaDoEvento(ctx, ev.IDEvento)
		itens = append(itens, pauta.Itens...)
	}

	res := domain.PautaDia{
		TemPauta: len(itens) > 0,
		Itens:    itens,
		Eventos:  eventosRes.Eventos,
	}
	if len(itens) == 0 {
		res.Erro = "Sem itens de pauta para o(s) evento(s) do dia."
	}
	return res
}

// SituacaoProposicao consulta a situação atual direto na API, sem cache,
// para atualizações pontuais do front.
func (s *Service) SituacaoProposicao(ctx context.Context, id int64) (string, error) {
	prop, err := s.api.Proposicao(ctx, id)
	if err != nil {
		return "", err
	}
	return prop.Situacao(), nil
}

// DestaquesEmendas busca os destaques e emendas em tramitação da proposição.
func (s *Service) DestaquesEmendas(ctx context.Context, id int64) domain.Destaques {
	ck := fmt.Sprintf("destaques:%d", id)
	if v, ok := s.cache.Get(ck); ok {
		if res, ok := v.(domain.Destaques); ok {
			metrics.ObserveCache("destaques", true)
			return res
		}
	}
	metrics.ObserveCache("destaques", false)

	destaques, err := s.raspador.Destaques(ctx, id)
	if err != nil {
		res := domain.Destaques{DestaquesEmendas: []domain.DestaqueEmenda{}, Erro: "Erro no scraping: " + err.Error()}
		s.cache.Set(ck, res)
		return res
	}
	res := domain.Destaques{TemDestaques: len(destaques) > 0, DestaquesEmendas: destaques}
	if len(destaques) == 0 {
		res.DestaquesEmendas = []domain.DestaqueEmenda{}
		res.Erro = "Nenhum destaque/emenda em tramitação"
	}
	s.cache.Set(ck, res)
	return res
}

// PareceresProposicao busca os candidatos PRLP/PRLE e devolve o mais
// recente de cada categoria.
func (s *Service) PareceresProposicao(ctx context.Context, id int64) domain.Pareceres {
	ck := fmt.Sprintf("pareceres:%d", id)
	if v, ok := s.cache.Get(ck); ok {
		if res, ok := v.(domain.Pareceres); ok {
			metrics.ObserveCache("pareceres", true)
			return res
		}
	}
	metrics.ObserveCache("pareceres", false)

	candidatos, err := s.raspador.CandidatosParecer(ctx, id)
	if err != nil {
		res := domain.Pareceres{PareceresSubstitutivosVotos: []domain.ParecerSubstitutivoVoto{}, Erro: "Erro no scraping: " + err.Error()}
		s.cache.Set(ck, res)
		return res
	}
	s.log.Info().Int64("id_proposicao", id).Int("candidatos", len(candidatos)).Msg("pareceres: PRLP/PRLE encontrados")

	if len(candidatos) == 0 {
		res := domain.Pareceres{PareceresSubstitutivosVotos: []domain.ParecerSubstitutivoVoto{}, Erro: "Nenhum PRLP/PRLE encontrado"}
		s.cache.Set(ck, res)
		return res
	}

	selecionados, err := selecionarPareceres(candidatos)
	if err != nil {
		s.log.Warn().Err(err).Int64("id_proposicao", id).Msg("pareceres: anomalia na fonte")
		res := domain.Pareceres{PareceresSubstitutivosVotos: []domain.ParecerSubstitutivoVoto{}, Erro: "Anomalia nos dados da fonte: " + err.Error()}
		s.cache.Set(ck, res)
		return res
	}

	res := domain.Pareceres{TemPareceres: len(selecionados) > 0, PareceresSubstitutivosVotos: selecionados}
	s.cache.Set(ck, res)
	return res
}

// ProcedimentosRegimentais busca os requerimentos procedimentais em
// tramitação da proposição.
func (s *Service) ProcedimentosRegimentais(ctx context.Context, id int64) domain.Procedimentos {
	ck := fmt.Sprintf("proced:%d", id)
	if v, ok := s.cache.Get(ck); ok {
		if res, ok := v.(domain.Procedimentos); ok {
			metrics.ObserveCache("procedimentos", true)
			return res
		}
	}
	metrics.ObserveCache("procedimentos", false)

	procs, err := s.raspador.Procedimentos(ctx, id)
	if err != nil {
		res := domain.Procedimentos{Procedimentos: []domain.Procedimento{}, Erro: "Erro no scraping: " + err.Error()}
		s.cache.Set(ck, res)
		return res
	}
	res := domain.Procedimentos{TemProcedimentos: len(procs) > 0, Procedimentos: procs}
	if len(procs) == 0 {
		res.Procedimentos = []domain.Procedimento{}
		res.Erro = "Nenhum requerimento procedimental em tramitação"
	}
	s.cache.Set(ck, res)
	return res
}

// detalheProposicao consulta (com cache) a situação de uma proposição
// para compor o item de pauta. Falhas também entram no cache.
func (s *Service) detalheProposicao(ctx context.Context, id int64) domain.DetalheProposicao {
	ck := fmt.Sprintf("prop:%d", id)
	if v, ok := s.cache.Get(ck); ok {
		if res, ok := v.(domain.DetalheProposicao); ok {
			metrics.ObserveCache("proposicao", true)
			return res
		}
	}
	metrics.ObserveCache("proposicao", false)

	prop, err := s.api.Proposicao(ctx, id)
	if err != nil {
		res := domain.DetalheProposicao{DescricaoSituacao: "Erro: " + err.Error()}
		s.cache.Set(ck, res)
		return res
	}
	situacao := prop.Situacao()
	if situacao == "" {
		situacao = domain.SituacaoNaoInformada
	}
	res := domain.DetalheProposicao{DescricaoSituacao: situacao}
	s.cache.Set(ck, res)
	return res
}

// autoresProposicao consulta (com cache) até dois autores da proposição.
func (s *Service) autoresProposicao(ctx context.Context, id int64) domain.AutoresProposicao {
	ck := fmt.Sprintf("autores:%d", id)
	if v, ok := s.cache.Get(ck); ok {
		if res, ok := v.(domain.AutoresProposicao); ok {
			metrics.ObserveCache("autores", true)
			return res
		}
	}
	metrics.ObserveCache("autores", false)

	brutos, err := s.api.AutoresProposicao(ctx, id)
	if err != nil {
		res := domain.AutoresProposicao{Autores: []domain.Autor{}}
		s.cache.Set(ck, res)
		return res
	}
	autores := make([]domain.Autor, 0, 2)
	for _, a := range brutos {
		if len(autores) == 2 {
			break
		}
		autores = append(autores, domain.Autor{Nome: a.NomeAutor()})
	}
	res := domain.AutoresProposicao{Autores: autores, TemMaisAutores: len(brutos) > 2}
	s.cache.Set(ck, res)
	return res
}
