package domain

import "context"

// Cache guarda resultados de consultas por tempo limitado.
// Ausência e expiração são indistinguíveis para quem consulta.
type Cache interface {
	Get(chave string) (any, bool)
	Set(chave string, valor any)
}

// ClienteCamara consulta a API de dados abertos da Câmara.
type ClienteCamara interface {
	EventosDoDia(ctx context.Context, data string) ([]EventoBruto, error)
	PautaDoEvento(ctx context.Context, eventoID int64) ([]ItemPautaBruto, error)
	Proposicao(ctx context.Context, id int64) (ProposicaoBruta, error)
	AutoresProposicao(ctx context.Context, id int64) ([]AutorBruto, error)
}

// RaspadorPaginas extrai registros das páginas HTML da Câmara.
type RaspadorPaginas interface {
	Destaques(ctx context.Context, idProposicao int64) ([]DestaqueEmenda, error)
	Procedimentos(ctx context.Context, idProposicao int64) ([]Procedimento, error)
	CandidatosParecer(ctx context.Context, idProposicao int64) ([]CandidatoParecer, error)
}

// ServicoPauta responde as consultas do front sobre a pauta do dia.
type ServicoPauta interface {
	EventosDoDia(ctx context.Context, data string) EventosDia
	PautaDoEvento(ctx context.Context, eventoID int64) Pauta
	PautaDoDia(ctx context.Context, data string, eventoID int64) PautaDia
	SituacaoProposicao(ctx context.Context, id int64) (string, error)
	DestaquesEmendas(ctx context.Context, id int64) Destaques
	PareceresProposicao(ctx context.Context, id int64) Pareceres
	ProcedimentosRegimentais(ctx context.Context, id int64) Procedimentos
}
