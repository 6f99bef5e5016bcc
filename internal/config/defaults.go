package config

// NewDefaultConfig creates a configuration with default values. The filter
// thresholds are the screener's standing criteria: reasonably priced
// (P/E < 25, P/B < 1.5), paying a dividend (> 2%), and liquid (> 100k
// shares/day average).
func NewDefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			UserAgent:    "",
			MaxPerSource: 20,
		},
		Market: MarketConfig{
			HistoryDays:  210,
			MAWindow:     200,
			FetchDelayMS: 1000,
		},
		Filters: FiltersConfig{
			MaxPE:            25.0,
			MaxPB:            1.5,
			MinDividendYield: 0.02,
			MinAvgVolume:     100000,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
