package config

import (
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig descreve a configuração do serviço.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	TZ     string `envconfig:"TZ" default:"America/Sao_Paulo"`
	Port   int    `envconfig:"PORT" default:"8080"`

	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	Camara struct {
		APIBaseURL       string `envconfig:"CAMARA_API_URL" default:"https://dadosabertos.camara.leg.br/api/v2"`
		PlenarioID       int    `envconfig:"CAMARA_PLENARIO_ID" default:"180"`
		URLRequerimentos string `envconfig:"CAMARA_URL_REQUERIMENTOS" default:"https://www.camara.leg.br/pplen/requerimentos-proposicao.html"`
		URLDestaques     string `envconfig:"CAMARA_URL_DESTAQUES" default:"https://www.camara.leg.br/pplen/destaques.html"`
		URLPareceres     string `envconfig:"CAMARA_URL_PARECERES" default:"https://www.camara.leg.br/proposicoesWeb/prop_pareceres_substitutivos_votos"`
	} `envconfig:""`

	Cache struct {
		TTL time.Duration `envconfig:"CACHE_TTL" default:"300s"`
		Max int           `envconfig:"CACHE_MAX" default:"200"`
	} `envconfig:""`

	Timeouts struct {
		Eventos       time.Duration `envconfig:"TIMEOUT_EVENTOS" default:"15s"`
		Pauta         time.Duration `envconfig:"TIMEOUT_PAUTA" default:"15s"`
		Proposicao    time.Duration `envconfig:"TIMEOUT_PROPOSICAO" default:"12s"`
		Autores       time.Duration `envconfig:"TIMEOUT_AUTORES" default:"12s"`
		Destaques     time.Duration `envconfig:"TIMEOUT_DESTAQUES" default:"20s"`
		Requerimentos time.Duration `envconfig:"TIMEOUT_REQUERIMENTOS" default:"20s"`
		Pareceres     time.Duration `envconfig:"TIMEOUT_PARECERES" default:"25s"`
	} `envconfig:""`

	Retry struct {
		Tentativas    int           `envconfig:"RETRY_TENTATIVAS" default:"5"`
		IntervaloBase time.Duration `envconfig:"RETRY_INTERVALO" default:"600ms"`
	} `envconfig:""`
}

// Load carrega a configuração do ambiente.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("não foi possível carregar a configuração: %v", err)
	}
	return cfg
}
