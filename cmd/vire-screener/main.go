package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/bobmcallan/vire-screener/internal/common"
	"github.com/bobmcallan/vire-screener/internal/config"
	"github.com/bobmcallan/vire-screener/internal/marketdata"
	"github.com/bobmcallan/vire-screener/internal/report"
	"github.com/bobmcallan/vire-screener/internal/screener"
	"github.com/bobmcallan/vire-screener/internal/tickers"
)

// configPaths is a custom flag type that allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	outputDir    = flag.String("output", "", "Export directory (overrides config)")
	maxPerSource = flag.Int("limit", 0, "Per-source ticker cap (overrides config)")
	showVersion  = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("vire-screener version %s\n", config.GetVersion())
		os.Exit(0)
	}

	// Auto-discover config file if not specified.
	// Binary-relative paths are tried first so the config is found even when
	// the working directory differs from the binary location.
	if len(configFiles) == 0 {
		for _, path := range screenerConfigSearchPaths() {
			if _, err := os.Stat(path); err == nil {
				configFiles = append(configFiles, path)
				break
			}
		}
	}

	// Load configuration
	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Apply CLI flag overrides (highest priority)
	config.ApplyFlagOverrides(cfg, *outputDir, *maxPerSource)

	// Validate mandatory configuration
	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Configuration error — mandatory fields are missing or invalid:")
		fmt.Fprintln(os.Stderr, "")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Values can be set via TOML file, VIRE_* environment variables, or CLI flags.")
		fmt.Fprintln(os.Stderr, "")
		os.Exit(1)
	}

	// Initialize logger with a run correlation id
	runID := uuid.New().String()
	logger := setupLogger(cfg).WithCorrelationId(runID)

	logger.Info().
		Str("run_id", runID).
		Int("per_source_cap", cfg.Sources.MaxPerSource).
		Int("history_days", cfg.Market.HistoryDays).
		Str("config_files", fmt.Sprintf("%v", configFiles)).
		Msg("configuration loaded")

	// Ctrl+C stops the run between symbols; there is no mid-fetch abort.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := tickers.NewFetcher(cfg.Sources.UserAgent, cfg.Sources.MaxPerSource, logger)
	symbols := fetcher.FetchAll(tickers.SP500(), tickers.FTSE100())

	provider := marketdata.NewYahooClient(cfg.Market.HistoryDays)
	reporter := report.New(os.Stdout, cfg.Output.Dir, logger)

	svc := screener.NewService(
		provider,
		reporter,
		screener.Thresholds{
			MaxPE:            cfg.Filters.MaxPE,
			MaxPB:            cfg.Filters.MaxPB,
			MinDividendYield: cfg.Filters.MinDividendYield,
			MinAvgVolume:     cfg.Filters.MinAvgVolume,
		},
		cfg.Market.MAWindow,
		cfg.Market.FetchDelay(),
		logger,
	)

	if err := svc.Run(ctx, symbols); err != nil {
		logger.Error().Err(err).Msg("screening run failed")
		os.Exit(1)
	}

	logger.Info().Msg("screening run complete")
}

// screenerConfigSearchPaths returns TOML files to auto-discover (first match
// wins). Binary-relative paths are tried first, with CWD fallbacks after.
// Paths are deduplicated via filepath.Abs.
func screenerConfigSearchPaths() []string {
	candidates := []string{
		"vire-screener.toml",
		"config/vire-screener.toml",
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, "vire-screener.toml"),
		filepath.Join(binDir, "config", "vire-screener.toml"),
	}
	paths = append(paths, candidates...)

	// Deduplicate via absolute path.
	seen := make(map[string]bool, len(paths))
	deduped := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// setupLogger creates an arbor logger based on config.
func setupLogger(cfg *config.Config) *common.Logger {
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:      cfg.Logging.Level,
		Outputs:    cfg.Logging.Outputs,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}
