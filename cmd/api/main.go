package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"pauta-plenario/internal/adapters/camara"
	"pauta-plenario/internal/adapters/raspagem"
	"pauta-plenario/internal/domain"
	"pauta-plenario/internal/infra/cache"
	"pauta-plenario/internal/infra/config"
	httpinfra "pauta-plenario/internal/infra/http"
	loginfra "pauta-plenario/internal/infra/log"
	"pauta-plenario/internal/infra/metrics"
	"pauta-plenario/internal/usecase/pauta"
)

func main() {
	cfg := config.Load()
	logger := loginfra.NewLogger(cfg.AppEnv)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cliente := camara.NewClient(camara.Config{
		BaseURL:           cfg.Camara.APIBaseURL,
		PlenarioID:        cfg.Camara.PlenarioID,
		Tentativas:        cfg.Retry.Tentativas,
		IntervaloBase:     cfg.Retry.IntervaloBase,
		TimeoutEventos:    cfg.Timeouts.Eventos,
		TimeoutPauta:      cfg.Timeouts.Pauta,
		TimeoutProposicao: cfg.Timeouts.Proposicao,
		TimeoutAutores:    cfg.Timeouts.Autores,
	}, logger.With().Str("component", "camara").Logger())

	raspador := raspagem.NewRaspador(cliente, raspagem.Config{
		PlenarioID:           cfg.Camara.PlenarioID,
		URLRequerimentos:     cfg.Camara.URLRequerimentos,
		URLDestaques:         cfg.Camara.URLDestaques,
		URLPareceres:         cfg.Camara.URLPareceres,
		TimeoutDestaques:     cfg.Timeouts.Destaques,
		TimeoutRequerimentos: cfg.Timeouts.Requerimentos,
		TimeoutPareceres:     cfg.Timeouts.Pareceres,
	}, logger.With().Str("component", "raspagem").Logger())

	// um cache por processo, compartilhado por todas as consultas
	memoria := cache.NewMemory(cfg.Cache.TTL, cfg.Cache.Max)

	servico := pauta.NewService(cliente, raspador, memoria, logger.With().Str("component", "pauta").Logger())

	srv := httpinfra.NewServer(logger.With().Str("component", "http").Logger())
	rotas(srv.Router, servico)

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), cfg.MetricsAddr)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("api: servidor parado")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("api: encerrando")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func rotas(r chi.Router, servico domain.ServicoPauta) {
	r.Get("/api/eventos/{data}", func(w http.ResponseWriter, req *http.Request) {
		data := chi.URLParam(req, "data")
		writeJSON(w, http.StatusOK, servico.EventosDoDia(req.Context(), data))
	})

	r.Get("/api/pauta/{data}", func(w http.ResponseWriter, req *http.Request) {
		data := chi.URLParam(req, "data")
		var eventoID int64
		if v := req.URL.Query().Get("evento_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "evento_id inválido")
				return
			}
			eventoID = id
		}
		writeJSON(w, http.StatusOK, servico.PautaDoDia(req.Context(), data, eventoID))
	})

	r.Get("/api/proposicao/{id}/situacao", func(w http.ResponseWriter, req *http.Request) {
		id, ok := idDaRota(w, req)
		if !ok {
			return
		}
		descricao, err := servico.SituacaoProposicao(req.Context(), id)
		if err != nil {
			status := http.StatusInternalServerError
			prefixo := "Interno: "
			if errors.Is(err, domain.ErrUpstream) {
				status = http.StatusBadGateway
				prefixo = "Upstream: "
			}
			writeJSON(w, status, map[string]any{
				"id":                id,
				"descricaoSituacao": nil,
				"erro":              prefixo + err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":                id,
			"descricaoSituacao": descricao,
		})
	})

	r.Get("/api/proposicao/{id}/destaques", func(w http.ResponseWriter, req *http.Request) {
		id, ok := idDaRota(w, req)
		if !ok {
			return
		}
		res := servico.DestaquesEmendas(req.Context(), id)
		writeJSON(w, http.StatusOK, map[string]any{"destaques_emendas": res.DestaquesEmendas})
	})

	r.Get("/api/proposicao/{id}/pareceres", func(w http.ResponseWriter, req *http.Request) {
		id, ok := idDaRota(w, req)
		if !ok {
			return
		}
		res := servico.PareceresProposicao(req.Context(), id)
		writeJSON(w, http.StatusOK, map[string]any{"pareceres_substitutivos_votos": res.PareceresSubstitutivosVotos})
	})

	r.Get("/api/proposicao/{id}/procedimentos", func(w http.ResponseWriter, req *http.Request) {
		id, ok := idDaRota(w, req)
		if !ok {
			return
		}
		res := servico.ProcedimentosRegimentais(req.Context(), id)
		writeJSON(w, http.StatusOK, map[string]any{"procedimentos": res.Procedimentos})
	})
}

func idDaRota(w http.ResponseWriter, req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id de proposição inválido")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"erro": msg})
}
