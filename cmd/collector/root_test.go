package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screwyprof/validator-stats/cmd/collector/config"
	"github.com/screwyprof/validator-stats/collector"
	"github.com/screwyprof/validator-stats/collector/csvfile"
	"github.com/screwyprof/validator-stats/pkg/dashtec"
)

func TestRun(t *testing.T) {
	t.Run("it fails before any lookup when the input file is missing", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		cfg := testConfig(dir)
		cfg.InputFile = filepath.Join(dir, "missing.csv")

		// Act
		err := run(testContext(t), cfg)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, collector.ErrSourceFailed)
		assert.ErrorIs(t, err, csvfile.ErrSourceNotFound)
		assert.NoFileExists(t, cfg.OutputFile, "No report should be written")
	})

	t.Run("it refuses an insecure API URL", func(t *testing.T) {
		// Arrange
		cfg := testConfig(t.TempDir())
		cfg.APIURL = "http://dashtec.xyz"

		// Act
		err := run(testContext(t), cfg)

		// Assert
		assert.ErrorIs(t, err, dashtec.ErrInsecureBaseURL)
	})

	t.Run("it writes an empty report for an input without addresses", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		cfg := testConfig(dir)
		require.NoError(t, os.WriteFile(cfg.InputFile, []byte("address\n\n  \n"), 0o600))

		// Act
		err := run(testContext(t), cfg)

		// Assert
		require.NoError(t, err)
		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Equal(t, "address,index,status,balance_wei,balance_eth,attestation_success_rate,"+
			"proposal_success_rate,last_proposed,performance_score,total_attestations_succeeded,"+
			"total_attestations_missed,total_blocks_proposed,total_blocks_mined,total_blocks_missed,rank,error\n",
			string(data))
	})

	t.Run("it exports metrics to the configured textfile", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		cfg := testConfig(dir)
		cfg.MetricsTextfile = filepath.Join(dir, "validator_stats.prom")
		require.NoError(t, os.WriteFile(cfg.InputFile, []byte("address\n"), 0o600))

		// Act
		err := run(testContext(t), cfg)

		// Assert
		require.NoError(t, err)
		assert.FileExists(t, cfg.MetricsTextfile)
	})
}

func TestRootCommandFlags(t *testing.T) {
	t.Run("it rejects positional arguments", func(t *testing.T) {
		// Arrange
		cmd := newRootCmd()
		cmd.SetArgs([]string{"unexpected"})
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)

		// Act
		err := cmd.Execute()

		// Assert
		assert.Error(t, err)
	})

	t.Run("it lets flags override the environment", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		input := filepath.Join(dir, "flag-input.csv")
		output := filepath.Join(dir, "flag-output.csv")
		require.NoError(t, os.WriteFile(input, []byte("address\n"), 0o600))
		t.Setenv("COLLECTOR_INPUT_FILE", filepath.Join(dir, "env-input.csv"))
		t.Setenv("LOG_LEVEL", "error")

		cmd := newRootCmd()
		cmd.SetArgs([]string{"--input", input, "-o", output, "--pacing-delay", "0s"})

		// Act
		err := cmd.ExecuteContext(testContext(t))

		// Assert
		require.NoError(t, err)
		assert.FileExists(t, output)
	})
}

func testConfig(dir string) config.Config {
	return config.Config{
		InputFile:         filepath.Join(dir, "validators.csv"),
		OutputFile:        filepath.Join(dir, "report.csv"),
		APIURL:            dashtec.DefaultBaseURL,
		UserAgent:         dashtec.DefaultUserAgent,
		HttpClientTimeout: dashtec.DefaultTimeout,
		LogLevel:          "error",
	}
}
