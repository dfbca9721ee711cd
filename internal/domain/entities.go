package domain

import "strconv"

// DescricaoIndisponivel substitui descrições vazias vindas das fontes.
const DescricaoIndisponivel = "Descrição não disponível"

// NaoDisponivel substitui campos de texto ausentes nas tabelas raspadas.
const NaoDisponivel = "N/D"

// SituacaoNaoInformada substitui a situação quando a API não a informa.
const SituacaoNaoInformada = "Não Informada"

// MarcadorSessaoDeliberativa identifica eventos deliberativos pelo tipo.
const MarcadorSessaoDeliberativa = "Sessão Deliberativa"

// SituacaoEmTramitacao é o único status mantido nas tabelas raspadas.
const SituacaoEmTramitacao = "Em tramitação"

// Evento representa um evento do Plenário em um dia.
type Evento struct {
	IDEvento       int64  `json:"id_evento"`
	DataHoraInicio string `json:"data_hora_inicio"`
	Situacao       string `json:"situacao"`
	DescricaoTipo  string `json:"descricao_tipo"`
	Descricao      string `json:"descricao"`
}

// Autor é um autor de proposição, limitado ao nome.
type Autor struct {
	Nome string `json:"nome"`
}

// ItemPauta é um item de pauta já resolvido para a proposição principal.
type ItemPauta struct {
	Ordem                       string                    `json:"ordem"`
	Regime                      string                    `json:"regime"`
	Titulo                      string                    `json:"titulo"`
	IDProposicao                int64                     `json:"id_proposicao"`
	Ementa                      string                    `json:"ementa"`
	RelatorID                   int64                     `json:"relator_id"`
	RelatorNome                 string                    `json:"relator_nome"`
	RelatorSiglaPartido         string                    `json:"relator_sigla_partido"`
	RelatorURLFoto              string                    `json:"relator_url_foto"`
	DescricaoSituacao           string                    `json:"descricao_situacao"`
	DestaquesEmendas            []DestaqueEmenda          `json:"destaques_emendas"`
	Procedimentos               []Procedimento            `json:"procedimentos"`
	Autores                     AutoresProposicao         `json:"autores"`
	PareceresSubstitutivosVotos []ParecerSubstitutivoVoto `json:"pareceres_substitutivos_votos"`
}

// DestaqueEmenda é um destaque ou emenda em tramitação.
type DestaqueEmenda struct {
	Numero       string `json:"numero"`
	Autoria      string `json:"autoria"`
	Descricao    string `json:"descricao"`
	TipoDestaque string `json:"tipo_destaque"`
	Situacao     string `json:"situacao"`
}

// ParecerSubstitutivoVoto é um parecer, substitutivo ou voto do relator.
type ParecerSubstitutivoVoto struct {
	TipoProposicao   string `json:"tipo_proposicao"`
	DataApresentacao string `json:"data_apresentacao"`
	Autor            string `json:"autor"`
	Descricao        string `json:"descricao"`
	LinkInteiroTeor  string `json:"link_inteiro_teor"`
}

// Procedimento é um requerimento procedimental em tramitação.
type Procedimento struct {
	Numero    string `json:"numero"`
	Autoria   string `json:"autoria"`
	Descricao string `json:"descricao"`
	Situacao  string `json:"situacao"`
	Data      string `json:"data"`
}

// CategoriaParecer identifica uma das duas classes de parecer reconhecidas.
type CategoriaParecer string

// Categorias de parecer capturadas pela raspagem.
const (
	CategoriaPRLP CategoriaParecer = "PRLP"
	CategoriaPRLE CategoriaParecer = "PRLE"
)

// CandidatoParecer é um parecer encontrado na tabela antes da seleção.
type CandidatoParecer struct {
	Categoria        CategoriaParecer
	Numero           int
	DataApresentacao string
	Autor            string
	Descricao        string
	LinkInteiroTeor  string
}

// Parecer converte o candidato no modelo servido ao front.
func (c CandidatoParecer) Parecer() ParecerSubstitutivoVoto {
	return ParecerSubstitutivoVoto{
		TipoProposicao:   string(c.Categoria) + " " + strconv.Itoa(c.Numero),
		DataApresentacao: c.DataApresentacao,
		Autor:            c.Autor,
		Descricao:        c.Descricao,
		LinkInteiroTeor:  c.LinkInteiroTeor,
	}
}

// EventosDia é o envelope da consulta de eventos de um dia.
type EventosDia struct {
	TemSessao bool     `json:"tem_sessao"`
	Eventos   []Evento `json:"eventos"`
	Erro      string   `json:"erro,omitempty"`
}

// Pauta é o envelope da pauta de um evento.
type Pauta struct {
	TemPauta bool        `json:"tem_pauta"`
	Itens    []ItemPauta `json:"itens"`
	Erro     string      `json:"erro,omitempty"`
}

// PautaDia é o envelope da pauta mesclada de todos os eventos do dia.
type PautaDia struct {
	TemPauta bool        `json:"tem_pauta"`
	Itens    []ItemPauta `json:"itens"`
	Eventos  []Evento    `json:"eventos"`
	Erro     string      `json:"erro,omitempty"`
}

// Destaques é o envelope da consulta de destaques e emendas.
type Destaques struct {
	TemDestaques     bool             `json:"tem_destaques_emendas"`
	DestaquesEmendas []DestaqueEmenda `json:"destaques_emendas"`
	Erro             string           `json:"erro,omitempty"`
}

// Pareceres é o envelope da consulta de pareceres, substitutivos e votos.
type Pareceres struct {
	TemPareceres                bool                      `json:"tem_pareceres"`
	PareceresSubstitutivosVotos []ParecerSubstitutivoVoto `json:"pareceres_substitutivos_votos"`
	Erro                        string                    `json:"erro,omitempty"`
}

// Procedimentos é o envelope da consulta de requerimentos procedimentais.
type Procedimentos struct {
	TemProcedimentos bool           `json:"tem_procedimentos"`
	Procedimentos    []Procedimento `json:"procedimentos"`
	Erro             string         `json:"erro,omitempty"`
}

// DetalheProposicao guarda a situação atual de uma proposição.
type DetalheProposicao struct {
	DescricaoSituacao string `json:"descricao_situacao"`
}

// AutoresProposicao guarda até dois autores e indica se há mais.
type AutoresProposicao struct {
	Autores        []Autor `json:"autores"`
	TemMaisAutores bool    `json:"tem_mais_autores"`
}
