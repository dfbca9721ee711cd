package camara

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pauta-plenario/internal/domain"
)

func clienteDeTeste(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:           baseURL,
		PlenarioID:        180,
		Tentativas:        2,
		IntervaloBase:     time.Millisecond,
		TimeoutEventos:    time.Second,
		TimeoutPauta:      time.Second,
		TimeoutProposicao: time.Second,
		TimeoutAutores:    time.Second,
	}, zerolog.Nop())
}

func TestEventosDoDiaJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("idOrgao") != "180" {
			t.Errorf("esperava idOrgao=180, veio %s", r.URL.Query().Get("idOrgao"))
		}
		if r.URL.Query().Get("dataInicio") != "2024-03-12" {
			t.Errorf("esperava dataInicio=2024-03-12")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"dados":[{"id":101,"dataHoraInicio":"2024-03-12T14:00:00","situacao":"Convocada","descricaoTipo":"Sessão Deliberativa Extraordinária","descricao":"Ordem do Dia"}]}`))
	}))
	defer srv.Close()

	eventos, err := clienteDeTeste(srv.URL).EventosDoDia(context.Background(), "2024-03-12")
	if err != nil {
		t.Fatalf("não esperava erro: %v", err)
	}
	if len(eventos) != 1 {
		t.Fatalf("esperava 1 evento, veio %d", len(eventos))
	}
	if eventos[0].ID.Int64() != 101 {
		t.Fatalf("esperava id 101, veio %d", eventos[0].ID.Int64())
	}
	if eventos[0].DescricaoTipo != "Sessão Deliberativa Extraordinária" {
		t.Fatalf("descricaoTipo inesperada: %s", eventos[0].DescricaoTipo)
	}
}

func TestEventosDoDiaFallbackXML(t *testing.T) {
	corpo := `<?xml version="1.0"?>
<xml><dados>
<evento_><id>77</id><dataHoraInicio>2024-03-12T10:00:00</dataHoraInicio><situacao>Encerrada</situacao><descricaoTipo>Sessão Deliberativa Ordinária</descricaoTipo><descricao>Pauta</descricao></evento_>
<evento_><id>78</id><descricaoTipo>Sessão Solene</descricaoTipo></evento_>
</dados></xml>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(corpo))
	}))
	defer srv.Close()

	eventos, err := clienteDeTeste(srv.URL).EventosDoDia(context.Background(), "2024-03-12")
	if err != nil {
		t.Fatalf("não esperava erro no fallback XML: %v", err)
	}
	if len(eventos) != 2 {
		t.Fatalf("esperava 2 eventos, veio %d", len(eventos))
	}
	if eventos[0].ID.Int64() != 77 || eventos[0].Situacao != "Encerrada" {
		t.Fatalf("registro achatado incorreto: %+v", eventos[0])
	}
}

func TestPautaFallbackXMLSemAninhados(t *testing.T) {
	corpo := `<xml><dados><item_><ordem>1</ordem><regime>Urgência</regime><titulo>PL 123</titulo></item_></dados></xml>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(corpo))
	}))
	defer srv.Close()

	itens, err := clienteDeTeste(srv.URL).PautaDoEvento(context.Background(), 55)
	if err != nil {
		t.Fatalf("não esperava erro: %v", err)
	}
	if len(itens) != 1 {
		t.Fatalf("esperava 1 item, veio %d", len(itens))
	}
	if itens[0].Proposicao != nil {
		t.Fatalf("o fallback achatado não deveria trazer a proposição aninhada")
	}
	if itens[0].OrdemTexto() != "1" {
		t.Fatalf("ordem inesperada: %s", itens[0].OrdemTexto())
	}
}

func TestStatusNaoRecuperavelNaoRetenta(t *testing.T) {
	chamadas := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chamadas++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := clienteDeTeste(srv.URL).Proposicao(context.Background(), 9001)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("esperava ErrUpstream, veio %v", err)
	}
	if chamadas != 1 {
		t.Fatalf("404 não deveria ser retentado, houve %d chamadas", chamadas)
	}
}

func TestRetentaEmErro500(t *testing.T) {
	chamadas := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chamadas++
		if chamadas < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"dados":[]}`))
	}))
	defer srv.Close()

	_, err := clienteDeTeste(srv.URL).AutoresProposicao(context.Background(), 9001)
	if err != nil {
		t.Fatalf("esperava sucesso após retentativas: %v", err)
	}
	if chamadas != 3 {
		t.Fatalf("esperava 3 chamadas, houve %d", chamadas)
	}
}

func TestCorpoIlegivelViraErrFormato(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<<não é json nem xml"))
	}))
	defer srv.Close()

	_, err := clienteDeTeste(srv.URL).EventosDoDia(context.Background(), "2024-03-12")
	if !errors.Is(err, domain.ErrFormato) {
		t.Fatalf("esperava ErrFormato, veio %v", err)
	}
}

func TestSituacaoDaProposicaoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"dados":{"id":9001,"statusProposicao":{"descricaoSituacao":"Pronta para Pauta"}}}`))
	}))
	defer srv.Close()

	prop, err := clienteDeTeste(srv.URL).Proposicao(context.Background(), 9001)
	if err != nil {
		t.Fatalf("não esperava erro: %v", err)
	}
	if prop.Situacao() != "Pronta para Pauta" {
		t.Fatalf("situação inesperada: %s", prop.Situacao())
	}
}
