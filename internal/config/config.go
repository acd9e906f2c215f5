// Package config holds the run configuration shared by the csvskema CLI and
// its HTTP service. Values come from, in increasing precedence, built-in
// defaults, a YAML file, CSVSKEMA_* environment variables and command-line
// flags. Validate reports every bad value at once.
package config

import "time"

// Config is the complete run configuration.
type Config struct {
	// File is the CSV document to parse (parse subcommand).
	File string `yaml:"file"`

	// Columns lists one type name per column, for example
	// [string, coerce.number]. Empty means no schema: rows are returned raw.
	Columns []string `yaml:"columns"`

	// CollectAll reports every failing row instead of stopping at the first.
	CollectAll bool `yaml:"collect_all"`

	// FailFast keeps only the first issue.
	FailFast bool `yaml:"fail_fast"`

	// MaxBytes rejects larger sources; 0 disables the limit.
	MaxBytes int64 `yaml:"max_bytes"`

	// Format is the output format: text or json (default: text)
	Format string `yaml:"format"`

	// Lang selects issue messages: en or ja (default: en)
	Lang string `yaml:"lang"`

	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `yaml:"level"`

	// Format is the log format: text or json (default: text)
	Format string `yaml:"format"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	// Addr is the listen address (default: :8080)
	Addr string `yaml:"addr"`

	// RequestTimeout bounds a single request (default: 30s)
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ShutdownTimeout bounds graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Format: "text",
		Lang:   "en",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}
