package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	UpstreamRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duração das chamadas às fontes da Câmara",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 25, 30},
	}, []string{"operacao", "status"})

	UpstreamRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_total",
		Help: "Quantidade de chamadas às fontes da Câmara",
	}, []string{"operacao", "status"})

	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Consultas ao cache por operação e resultado",
	}, []string{"operacao", "resultado"})

	LinhasRaspadas = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "raspagem_linhas_total",
		Help: "Linhas aceitas na raspagem por página",
	}, []string{"pagina"})

	PautaBuildSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pauta_build_seconds",
		Help:    "Tempo de montagem da pauta mesclada do dia",
		Buckets: prometheus.DefBuckets,
	})
)

// MustRegister registra as métricas.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		UpstreamRequestDuration,
		UpstreamRequestTotal,
		CacheLookups,
		LinhasRaspadas,
		PautaBuildSeconds,
	)
}

// StartServer sobe o servidor HTTP com o endpoint /metrics.
func StartServer(ctx context.Context, logger zerolog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: encerramento falhou")
		}
	}()

	go func() {
		logger.Info().Str("addr", addr).Msg("metrics: servidor no ar")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: servidor parado")
		}
	}()
}

// ObserveUpstream registra a duração e o status de uma chamada à fonte.
func ObserveUpstream(operacao string, inicio time.Time, err error) {
	status := "sucesso"
	if err != nil {
		status = "erro"
	}
	d := time.Since(inicio).Seconds()
	UpstreamRequestDuration.WithLabelValues(operacao, status).Observe(d)
	UpstreamRequestTotal.WithLabelValues(operacao, status).Inc()
}

// ObserveCache registra acerto ou falta no cache para a operação.
func ObserveCache(operacao string, acerto bool) {
	resultado := "acerto"
	if !acerto {
		resultado = "falta"
	}
	CacheLookups.WithLabelValues(operacao, resultado).Inc()
}
