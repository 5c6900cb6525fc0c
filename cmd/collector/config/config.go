package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration loaded from environment variables
type Config struct {
	InputFile         string        `env:"COLLECTOR_INPUT_FILE" envDefault:"stepa_validator.csv"`
	OutputFile        string        `env:"COLLECTOR_OUTPUT_FILE" envDefault:"validator_statistics.csv"`
	APIURL            string        `env:"COLLECTOR_API_URL" envDefault:"https://dashtec.xyz"`
	UserAgent         string        `env:"COLLECTOR_USER_AGENT" envDefault:"Aztec Validator Stats Collector"`
	HttpClientTimeout time.Duration `env:"COLLECTOR_HTTP_CLIENT_TIMEOUT" envDefault:"30s"`
	PacingDelay       time.Duration `env:"COLLECTOR_PACING_DELAY" envDefault:"500ms"`
	MetricsTextfile   string        `env:"COLLECTOR_METRICS_TEXTFILE"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogHumanFriendly  bool          `env:"LOG_HUMAN_FRIENDLY" envDefault:"true"`
}

// New loads all configuration from environment variables
func New() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}
