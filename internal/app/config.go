package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath points at a config file or a directory of .hcl files that
	// override extension defaults. Empty means defaults only.
	ConfigPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates and normalizes a Config. Empty logging settings fall
// back to text/info; anything outside the accepted vocabulary is rejected.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	return &cfg, nil
}
