package camara

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pauta-plenario/internal/domain"
	"pauta-plenario/internal/infra/metrics"
)

// Config descreve o cliente da API de dados abertos.
type Config struct {
	BaseURL           string
	PlenarioID        int
	Tentativas        int
	IntervaloBase     time.Duration
	TimeoutEventos    time.Duration
	TimeoutPauta      time.Duration
	TimeoutProposicao time.Duration
	TimeoutAutores    time.Duration
}

// Client consulta a API de dados abertos da Câmara, preferindo JSON e
// caindo para o XML quando o corpo não parseia como JSON.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

var _ domain.ClienteCamara = (*Client)(nil)

// NewClient cria o cliente.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Tentativas <= 0 {
		cfg.Tentativas = 5
	}
	if cfg.IntervaloBase <= 0 {
		cfg.IntervaloBase = 600 * time.Millisecond
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{},
		log:  logger,
	}
}

// EventosDoDia busca os eventos do Plenário no dia informado.
func (c *Client) EventosDoDia(ctx context.Context, data string) ([]domain.EventoBruto, error) {
	params := url.Values{
		"idOrgao":    {strconv.Itoa(c.cfg.PlenarioID)},
		"dataInicio": {data},
		"dataFim":    {data},
		"ordem":      {"ASC"},
		"ordenarPor": {"dataHoraInicio"},
	}
	corpo, err := c.get(ctx, "eventos", c.cfg.BaseURL+"/eventos", params, c.cfg.TimeoutEventos)
	if err != nil {
		return nil, err
	}
	var env struct {
		Dados []domain.EventoBruto `json:"dados"`
	}
	if err := json.Unmarshal(corpo, &env); err == nil {
		return env.Dados, nil
	}
	registros, err := elementosXML(corpo, "evento_")
	if err != nil {
		return nil, fmt.Errorf("%w: eventos: %v", domain.ErrFormato, err)
	}
	eventos := make([]domain.EventoBruto, 0, len(registros))
	for _, r := range registros {
		eventos = append(eventos, domain.EventoBruto{
			ID:             numeroDoMapa(r, "id"),
			DataHoraInicio: r["dataHoraInicio"],
			Situacao:       r["situacao"],
			DescricaoTipo:  r["descricaoTipo"],
			Descricao:      r["descricao"],
		})
	}
	return eventos, nil
}

// PautaDoEvento busca os itens de pauta de um evento.
func (c *Client) PautaDoEvento(ctx context.Context, eventoID int64) ([]domain.ItemPautaBruto, error) {
	endpoint := fmt.Sprintf("%s/eventos/%d/pauta", c.cfg.BaseURL, eventoID)
	corpo, err := c.get(ctx, "pauta", endpoint, nil, c.cfg.TimeoutPauta)
	if err != nil {
		return nil, err
	}
	var env struct {
		Dados []domain.ItemPautaBruto `json:"dados"`
	}
	if err := json.Unmarshal(corpo, &env); err == nil {
		return env.Dados, nil
	}
	registros, err := elementosXML(corpo, "item_")
	if err != nil {
		return nil, fmt.Errorf("%w: pauta: %v", domain.ErrFormato, err)
	}
	// o fallback XML é achatado: os sub-registros aninhados não vêm
	itens := make([]domain.ItemPautaBruto, 0, len(registros))
	for _, r := range registros {
		itens = append(itens, domain.ItemPautaBruto{
			Ordem:  numeroDoMapa(r, "ordem"),
			Regime: r["regime"],
			Titulo: r["titulo"],
		})
	}
	return itens, nil
}

// Proposicao busca os dados de uma proposição.
func (c *Client) Proposicao(ctx context.Context, id int64) (domain.ProposicaoBruta, error) {
	endpoint := fmt.Sprintf("%s/proposicoes/%d", c.cfg.BaseURL, id)
	corpo, err := c.get(ctx, "proposicao", endpoint, nil, c.cfg.TimeoutProposicao)
	if err != nil {
		return domain.ProposicaoBruta{}, err
	}
	var env struct {
		Dados domain.ProposicaoBruta `json:"dados"`
	}
	if err := json.Unmarshal(corpo, &env); err == nil {
		return env.Dados, nil
	}
	registros, err := elementosXML(corpo, "proposicao_")
	if err != nil || len(registros) == 0 {
		return domain.ProposicaoBruta{}, fmt.Errorf("%w: proposição %d", domain.ErrFormato, id)
	}
	r := registros[0]
	return domain.ProposicaoBruta{
		ID:                numeroDoMapa(r, "id"),
		DescricaoSituacao: r["descricaoSituacao"],
	}, nil
}

// AutoresProposicao busca os autores de uma proposição.
func (c *Client) AutoresProposicao(ctx context.Context, id int64) ([]domain.AutorBruto, error) {
	endpoint := fmt.Sprintf("%s/proposicoes/%d/autores", c.cfg.BaseURL, id)
	corpo, err := c.get(ctx, "autores", endpoint, nil, c.cfg.TimeoutAutores)
	if err != nil {
		return nil, err
	}
	var env struct {
		Dados []domain.AutorBruto `json:"dados"`
	}
	if err := json.Unmarshal(corpo, &env); err == nil {
		return env.Dados, nil
	}
	registros, err := elementosXML(corpo, "autor_")
	if err != nil {
		return nil, fmt.Errorf("%w: autores: %v", domain.ErrFormato, err)
	}
	autores := make([]domain.AutorBruto, 0, len(registros))
	for _, r := range registros {
		autores = append(autores, domain.AutorBruto{Nome: r["nome"]})
	}
	return autores, nil
}

// PaginaHTML busca uma das páginas raspadas e devolve o corpo bruto.
func (c *Client) PaginaHTML(ctx context.Context, operacao, pagina string, params url.Values, timeout time.Duration) ([]byte, error) {
	return c.get(ctx, operacao, pagina, params, timeout)
}

// get executa o GET com retentativas e converte falhas de transporte e
// status não-2xx em domain.ErrUpstream.
func (c *Client) get(ctx context.Context, operacao, endpoint string, params url.Values, timeout time.Duration) ([]byte, error) {
	inicio := time.Now()
	requestID := uuid.NewString()

	var corpo []byte
	tentativa := func() error {
		ctxReq, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		req, err := http.NewRequestWithContext(ctxReq, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if params != nil {
			req.URL.RawQuery = params.Encode()
		}
		c.cabecalhos(req, requestID)
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			corpo = b
			return nil
		case statusRetentavel(resp.StatusCode):
			return fmt.Errorf("%w: HTTP %d", domain.ErrUpstream, resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("%w: HTTP %d", domain.ErrUpstream, resp.StatusCode))
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.IntervaloBase
	politica := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.cfg.Tentativas)), ctx)
	err := backoff.Retry(tentativa, politica)
	metrics.ObserveUpstream(operacao, inicio, err)
	if err != nil {
		c.log.Warn().Err(err).Str("operacao", operacao).Str("request_id", requestID).Msg("camara: chamada falhou")
		if !errors.Is(err, domain.ErrUpstream) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		return nil, err
	}
	return corpo, nil
}

func (c *Client) cabecalhos(req *http.Request, requestID string) {
	req.Header.Set("Accept", "text/html,application/json")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("X-Request-Id", requestID)
}

func statusRetentavel(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func numeroDoMapa(r map[string]string, chave string) domain.NumeroFlex {
	v, err := strconv.ParseInt(strings.TrimSpace(r[chave]), 10, 64)
	if err != nil {
		return 0
	}
	return domain.NumeroFlex(v)
}
