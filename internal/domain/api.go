package domain

import (
	"bytes"
	"strconv"
)

// NumeroFlex aceita número, string numérica ou null no JSON da API.
// A API de dados abertos alterna entre os três conforme o endpoint.
type NumeroFlex int64

// UnmarshalJSON normaliza o valor para inteiro, tratando ausência como zero.
func (n *NumeroFlex) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = NumeroFlex(v)
	return nil
}

// Int64 devolve o valor como inteiro comum.
func (n NumeroFlex) Int64() int64 { return int64(n) }

// EventoBruto é o registro de evento como vem da API.
type EventoBruto struct {
	ID             NumeroFlex `json:"id"`
	DataHoraInicio string     `json:"dataHoraInicio"`
	Situacao       string     `json:"situacao"`
	DescricaoTipo  string     `json:"descricaoTipo"`
	Descricao      string     `json:"descricao"`
}

// ProposicaoResumo é a proposição embutida em um item de pauta.
type ProposicaoResumo struct {
	ID        NumeroFlex `json:"id"`
	SiglaTipo string     `json:"siglaTipo"`
	CodTipo   NumeroFlex `json:"codTipo"`
	Ementa    string     `json:"ementa"`
}

// RelatorBruto é o relator embutido em um item de pauta.
type RelatorBruto struct {
	ID           NumeroFlex `json:"id"`
	Nome         string     `json:"nome"`
	SiglaPartido string     `json:"siglaPartido"`
	URLFoto      string     `json:"urlFoto"`
}

// ItemPautaBruto é um item de pauta como vem da API, antes da resolução.
type ItemPautaBruto struct {
	Ordem                 NumeroFlex        `json:"ordem"`
	Regime                string            `json:"regime"`
	Titulo                string            `json:"titulo"`
	Proposicao            *ProposicaoResumo `json:"proposicao_"`
	ProposicaoRelacionada *ProposicaoResumo `json:"proposicaoRelacionada_"`
	Relator               *RelatorBruto     `json:"relator"`
}

// OrdemTexto devolve a ordem do item em texto, ou "N/D" quando ausente.
func (i ItemPautaBruto) OrdemTexto() string {
	if i.Ordem == 0 {
		return NaoDisponivel
	}
	return strconv.FormatInt(i.Ordem.Int64(), 10)
}

// StatusProposicaoBruto é o bloco de status embutido na proposição.
type StatusProposicaoBruto struct {
	DescricaoSituacao string `json:"descricaoSituacao"`
}

// ProposicaoBruta é o registro de proposição como vem da API.
type ProposicaoBruta struct {
	ID                NumeroFlex             `json:"id"`
	StatusProposicao  *StatusProposicaoBruto `json:"statusProposicao"`
	DescricaoSituacao string                 `json:"descricaoSituacao"`
}

// Situacao extrai a descrição de situação, preferindo o bloco de status.
// Qualquer elo ausente no caminho resulta em texto vazio.
func (p ProposicaoBruta) Situacao() string {
	if p.StatusProposicao != nil && p.StatusProposicao.DescricaoSituacao != "" {
		return p.StatusProposicao.DescricaoSituacao
	}
	return p.DescricaoSituacao
}

// AutorBruto é o registro de autor; o nome vem direto ou aninhado.
type AutorBruto struct {
	Nome  string `json:"nome"`
	Autor *struct {
		Nome string `json:"nome"`
	} `json:"autor"`
}

// NomeAutor devolve o nome do autor ou "Desconhecido" quando ausente.
func (a AutorBruto) NomeAutor() string {
	if a.Nome != "" {
		return a.Nome
	}
	if a.Autor != nil && a.Autor.Nome != "" {
		return a.Autor.Nome
	}
	return "Desconhecido"
}
