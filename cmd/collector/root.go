package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/screwyprof/validator-stats/cmd/collector/config"
	"github.com/screwyprof/validator-stats/collector"
	"github.com/screwyprof/validator-stats/collector/csvfile"
	"github.com/screwyprof/validator-stats/pkg/dashtec"
	"github.com/screwyprof/validator-stats/pkg/logger"
)

var rootFlags struct {
	input       string
	output      string
	apiURL      string
	pacingDelay time.Duration
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validator-stats",
		Short:         "Collect Aztec validator statistics from dashtec into a CSV report",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	f := cmd.Flags()
	f.StringVarP(&rootFlags.input, "input", "i", "", "Input CSV with an address column (overrides COLLECTOR_INPUT_FILE)")
	f.StringVarP(&rootFlags.output, "output", "o", "", "Report CSV path (overrides COLLECTOR_OUTPUT_FILE)")
	f.StringVar(&rootFlags.apiURL, "api-url", "", "dashtec base URL (overrides COLLECTOR_API_URL)")
	f.DurationVar(&rootFlags.pacingDelay, "pacing-delay", 0, "Pause between lookups (overrides COLLECTOR_PACING_DELAY)")

	return cmd
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.New()
	if err != nil {
		cmd.PrintErrln("Fatal error: loading configuration:", err)
		return err
	}

	f := cmd.Flags()
	if f.Changed("input") {
		cfg.InputFile = rootFlags.input
	}
	if f.Changed("output") {
		cfg.OutputFile = rootFlags.output
	}
	if f.Changed("api-url") {
		cfg.APIURL = rootFlags.apiURL
	}
	if f.Changed("pacing-delay") {
		cfg.PacingDelay = rootFlags.pacingDelay
	}

	return run(cmd.Context(), cfg)
}

func run(ctx context.Context, cfg config.Config) error {
	// Initialize logger and set as default
	log := logger.NewFromConfig(logger.Config{
		LogLevel:         cfg.LogLevel,
		LogHumanFriendly: cfg.LogHumanFriendly,
	})
	slog.SetDefault(log)

	if cfg.MetricsTextfile != "" {
		defer writeMetrics(ctx, log, cfg.MetricsTextfile)
	}

	// HTTP client & dashtec client
	httpClient := &http.Client{
		Timeout:   cfg.HttpClientTimeout,
		Transport: logger.NewTransport(log, http.DefaultTransport),
	}
	dashtecClient, err := dashtec.NewClient(httpClient, cfg.APIURL, dashtec.WithUserAgent(cfg.UserAgent))
	if err != nil {
		log.ErrorContext(ctx, "Failed to create dashtec client", slog.Any("error", err))
		return err
	}

	service := collector.NewService(
		dashtecClient,
		csvfile.NewSource(cfg.InputFile),
		csvfile.NewSink(cfg.OutputFile),
		collector.WithPacingDelay(cfg.PacingDelay),
		collector.WithSubscriber(eventLogging(ctx, log, cfg.OutputFile)),
	)

	log.InfoContext(ctx, "Starting validator statistics collection",
		slog.String("input", cfg.InputFile),
		slog.String("output", cfg.OutputFile),
		slog.Duration("pacingDelay", cfg.PacingDelay),
	)

	if _, err := service.Run(ctx); err != nil {
		log.ErrorContext(ctx, "Fatal error", slog.Any("error", err))
		return fmt.Errorf("collecting statistics: %w", err)
	}
	return nil
}

// eventLogging configures event handlers using slog directly
func eventLogging(ctx context.Context, log *slog.Logger, output string) *collector.Subscriber {
	return collector.NewSubscriber(
		collector.OnRunStarted(func(event collector.RunStarted) {
			log.InfoContext(ctx, "Found validator addresses",
				slog.Int("total", event.Total),
				slog.String("startedAt", event.StartedAt.Format(logger.BritishTimeFormat)),
			)
		}),
		collector.OnAddressProcessed(func(event collector.AddressProcessed) {
			attrs := []any{
				slog.Int("position", event.Position),
				slog.Int("total", event.Total),
				slog.String("address", event.Record.Address),
			}
			if event.Record.HasError() {
				attrs = append(attrs, slog.String("status", event.Record.Status), slog.String("error", event.Record.Error))
				log.WarnContext(ctx, "Validator lookup failed", attrs...)
				return
			}
			attrs = append(attrs, slog.String("status", event.Record.Status), slog.String("balanceETH", event.Record.BalanceETH))
			log.InfoContext(ctx, "Validator processed", attrs...)
		}),
		collector.OnReportWritten(func(event collector.ReportWritten) {
			log.InfoContext(ctx, "Statistics collection completed",
				slog.String("output", output),
				slog.Int("records", event.Records),
				slog.Int("notFound", event.NotFound),
				slog.Int("failed", event.Failed),
				slog.Duration("duration", event.Duration),
			)
		}),
	)
}

// writeMetrics exports the run metrics for the node exporter textfile collector
func writeMetrics(ctx context.Context, log *slog.Logger, path string) {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		log.WarnContext(ctx, "Failed to write metrics", slog.String("path", path), slog.Any("error", err))
	}
}
