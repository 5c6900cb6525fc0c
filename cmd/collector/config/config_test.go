package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screwyprof/validator-stats/cmd/collector/config"
)

func TestNew(t *testing.T) {
	t.Run("it applies defaults", func(t *testing.T) {
		// Act
		cfg, err := config.New()

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "stepa_validator.csv", cfg.InputFile)
		assert.Equal(t, "validator_statistics.csv", cfg.OutputFile)
		assert.Equal(t, "https://dashtec.xyz", cfg.APIURL)
		assert.Equal(t, "Aztec Validator Stats Collector", cfg.UserAgent)
		assert.Equal(t, 30*time.Second, cfg.HttpClientTimeout)
		assert.Equal(t, 500*time.Millisecond, cfg.PacingDelay)
		assert.Empty(t, cfg.MetricsTextfile)
		assert.True(t, cfg.LogHumanFriendly)
	})

	t.Run("it reads overrides from the environment", func(t *testing.T) {
		// Arrange
		t.Setenv("COLLECTOR_INPUT_FILE", "in.csv")
		t.Setenv("COLLECTOR_PACING_DELAY", "2s")
		t.Setenv("LOG_HUMAN_FRIENDLY", "false")

		// Act
		cfg, err := config.New()

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "in.csv", cfg.InputFile)
		assert.Equal(t, 2*time.Second, cfg.PacingDelay)
		assert.False(t, cfg.LogHumanFriendly)
	})

	t.Run("it rejects malformed durations", func(t *testing.T) {
		// Arrange
		t.Setenv("COLLECTOR_HTTP_CLIENT_TIMEOUT", "soon")

		// Act
		_, err := config.New()

		// Assert
		assert.Error(t, err)
	})
}
