package testcfg

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds test-specific configuration for dashtec client acceptance tests
type Config struct {
	Address     string        `env:"DASHTEC_TEST_ADDRESS" envDefault:"0x0000000000000000000000000000000000000000"`
	HTTPTimeout time.Duration `env:"DASHTEC_TEST_HTTP_TIMEOUT" envDefault:"30s"`
	BaseURL     string        `env:"DASHTEC_TEST_BASE_URL" envDefault:"https://dashtec.xyz"`
}

// parseConfig wraps env.Parse to return (Config, error) for use with env.Must
func parseConfig() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}

// New loads test configuration from environment variables
func New() Config {
	return env.Must(parseConfig())
}
