package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the screener configuration.
type Config struct {
	Sources SourcesConfig `toml:"sources"`
	Market  MarketConfig  `toml:"market"`
	Filters FiltersConfig `toml:"filters"`
	Output  OutputConfig  `toml:"output"`
	Logging LoggingConfig `toml:"logging"`
}

// SourcesConfig controls the ticker list fetch.
type SourcesConfig struct {
	// UserAgent sent on constituent page fetches. Empty selects the built-in
	// desktop browser string.
	UserAgent string `toml:"user_agent"`
	// MaxPerSource truncates each source list before concatenation.
	// 0 means no cap; a full run of 600+ tickers takes over ten minutes.
	MaxPerSource int `toml:"max_per_source"`
}

// MarketConfig controls per-symbol market data retrieval.
type MarketConfig struct {
	// HistoryDays is the requested price history span in trading days,
	// slightly larger than the moving average window to tolerate short
	// trading calendars.
	HistoryDays int `toml:"history_days"`
	// MAWindow is the moving average lookback in trading days.
	MAWindow int `toml:"ma_window"`
	// FetchDelayMS is the fixed pause after every per-symbol fetch attempt,
	// success or failure, to stay under the provider's rate limit.
	FetchDelayMS int `toml:"fetch_delay_ms"`
}

// FetchDelay returns the per-symbol pause as a duration.
func (m MarketConfig) FetchDelay() time.Duration {
	return time.Duration(m.FetchDelayMS) * time.Millisecond
}

// FiltersConfig holds the screening thresholds.
type FiltersConfig struct {
	MaxPE            float64 `toml:"max_pe"`
	MaxPB            float64 `toml:"max_pb"`
	MinDividendYield float64 `toml:"min_div_yield"`
	MinAvgVolume     int64   `toml:"min_avg_volume"`
}

// OutputConfig controls where the CSV export lands.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies VIRE_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if limit := os.Getenv("VIRE_MAX_PER_SOURCE"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			config.Sources.MaxPerSource = n
		}
	}
	if delay := os.Getenv("VIRE_FETCH_DELAY_MS"); delay != "" {
		if n, err := strconv.Atoi(delay); err == nil {
			config.Market.FetchDelayMS = n
		}
	}
	if dir := os.Getenv("VIRE_OUTPUT_DIR"); dir != "" {
		config.Output.Dir = dir
	}
	if level := os.Getenv("VIRE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if path := os.Getenv("VIRE_LOG_FILE"); path != "" {
		config.Logging.FilePath = path
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, outputDir string, maxPerSource int) {
	if outputDir != "" {
		config.Output.Dir = outputDir
	}
	if maxPerSource > 0 {
		config.Sources.MaxPerSource = maxPerSource
	}
}

// Validate checks mandatory fields and returns a list of issues.
// An empty list means the configuration is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.Market.MAWindow <= 0 {
		issues = append(issues, "market.ma_window must be positive")
	}
	if c.Market.HistoryDays < c.Market.MAWindow {
		issues = append(issues, fmt.Sprintf(
			"market.history_days (%d) must cover market.ma_window (%d)",
			c.Market.HistoryDays, c.Market.MAWindow))
	}
	if c.Market.FetchDelayMS < 0 {
		issues = append(issues, "market.fetch_delay_ms must not be negative")
	}
	if c.Sources.MaxPerSource < 0 {
		issues = append(issues, "sources.max_per_source must not be negative")
	}
	if c.Filters.MaxPE <= 0 {
		issues = append(issues, "filters.max_pe must be positive")
	}
	if c.Filters.MaxPB <= 0 {
		issues = append(issues, "filters.max_pb must be positive")
	}
	if c.Output.Dir == "" {
		issues = append(issues, "output.dir must not be empty")
	}

	return issues
}
