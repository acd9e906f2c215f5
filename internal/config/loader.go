package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/csvskema/dsl"
)

// Environment variables read by Load.
const (
	EnvLogLevel  = "CSVSKEMA_LOG_LEVEL"
	EnvLogFormat = "CSVSKEMA_LOG_FORMAT"
	EnvAddr      = "CSVSKEMA_ADDR"
	EnvLang      = "CSVSKEMA_LANG"
)

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment. The result is not validated yet so
// that callers can apply flag overrides first.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config load: %w", err)
		}
		if err := Decode(data, cfg); err != nil {
			return nil, fmt.Errorf("config load %s: %w", path, err)
		}
	}
	applyEnv(cfg, os.Getenv)
	return cfg, nil
}

// Decode strictly decodes one YAML document into cfg. Unknown keys are
// errors; keys absent from data keep their current value.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv(EnvLang); v != "" {
		cfg.Lang = v
	}
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.MaxBytes < 0 {
		errs = append(errs, fmt.Sprintf("max_bytes (%d) must be non-negative", c.MaxBytes))
	}
	if !oneOf(c.Format, "text", "json") {
		errs = append(errs, fmt.Sprintf("format (%q) must be one of: text, json", c.Format))
	}
	if !oneOf(c.Lang, "en", "ja") {
		errs = append(errs, fmt.Sprintf("lang (%q) must be one of: en, ja", c.Lang))
	}
	if !oneOf(c.Log.Level, "debug", "info", "warn", "warning", "error") {
		errs = append(errs, fmt.Sprintf("log.level (%q) must be one of: debug, info, warn, error", c.Log.Level))
	}
	if !oneOf(c.Log.Format, "text", "json") {
		errs = append(errs, fmt.Sprintf("log.format (%q) must be one of: text, json", c.Log.Format))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "server.shutdown_timeout must be positive")
	}
	for i, name := range c.Columns {
		if _, err := dsl.ElemByName(name); err != nil {
			errs = append(errs, fmt.Sprintf("columns[%d]: %v", i, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	v = strings.ToLower(v)
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
