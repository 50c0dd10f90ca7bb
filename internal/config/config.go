// Package config loads the user configuration from YAML. Environment
// variables override file values at runtime and are never written back.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type ReportConfig struct {
	DateLayout   string `yaml:"date_layout"`
	Organisation string `yaml:"organisation"`
}

type PrintConfig struct {
	ImageTimeoutMs int `yaml:"image_timeout_ms"`
}

// ImageTimeout returns the bounded wait for print images.
func (p PrintConfig) ImageTimeout() time.Duration {
	return time.Duration(p.ImageTimeoutMs) * time.Millisecond
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Report        ReportConfig  `yaml:"report"`
	Print         PrintConfig   `yaml:"print"`
	History       HistoryConfig `yaml:"history"`
	Logging       LoggingConfig `yaml:"logging"`
}

const (
	EnvConfigPath     = "BFMP_CONFIG"
	EnvHistoryDB      = "BFMP_DB"
	EnvImageTimeoutMs = "BFMP_IMAGE_TIMEOUT_MS"
	EnvLogLevel       = "BFMP_LOG_LEVEL"
	EnvLogFormat      = "BFMP_LOG_FORMAT"
	EnvLogSource      = "BFMP_LOG_SOURCE"
	EnvLogFile        = "BFMP_LOG_FILE"
)

// Defaults returns the built-in configuration. History.Path is resolved at
// load time because it depends on the home directory.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Report:        ReportConfig{DateLayout: "2 January 2006", Organisation: "MarineStream Tools"},
		Print:         PrintConfig{ImageTimeoutMs: 10000},
		History:       HistoryConfig{Enabled: true},
		Logging:       LoggingConfig{Level: "warn", Format: "console"},
	}
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	return filepath.Join(dir, "bfmp", "config.yaml"), nil
}

// DefaultHistoryPath returns ~/.bfmp/history.db.
func DefaultHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".bfmp", "history.db"), nil
}

// Load reads the user config file if present, merges it over the defaults
// and applies environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file path. A missing file is not an
// error; a malformed one is.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg, data)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if cfg.History.Path == "" {
		p, err := DefaultHistoryPath()
		if err != nil {
			return cfg, err
		}
		cfg.History.Path = p
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// mergeInto copies non-zero file values over dst. Booleans are only taken
// from the file when the key is present, so a file can switch history off.
func mergeInto(dst, src *AppConfig, raw []byte) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Report.DateLayout != "" {
		dst.Report.DateLayout = src.Report.DateLayout
	}
	if src.Report.Organisation != "" {
		dst.Report.Organisation = src.Report.Organisation
	}
	if src.Print.ImageTimeoutMs > 0 {
		dst.Print.ImageTimeoutMs = src.Print.ImageTimeoutMs
	}
	if src.History.Path != "" {
		dst.History.Path = src.History.Path
	}
	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Format != "" {
		dst.Logging.Format = src.Logging.Format
	}
	if src.Logging.File != "" {
		dst.Logging.File = src.Logging.File
	}

	var present struct {
		History map[string]any `yaml:"history"`
		Logging map[string]any `yaml:"logging"`
	}
	if err := yaml.Unmarshal(raw, &present); err != nil {
		return
	}
	if _, ok := present.History["enabled"]; ok {
		dst.History.Enabled = src.History.Enabled
	}
	if _, ok := present.Logging["source"]; ok {
		dst.Logging.Source = src.Logging.Source
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv(EnvHistoryDB); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv(EnvImageTimeoutMs); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Print.ImageTimeoutMs = ms
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvLogSource); v != "" {
		cfg.Logging.Source = strings.EqualFold(v, "true")
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor reports the environment variable currently overriding the
// given dotted key, or "" when none is set.
func EnvOverrideFor(key string) string {
	names := map[string]string{
		"history.path":           EnvHistoryDB,
		"print.image_timeout_ms": EnvImageTimeoutMs,
		"logging.level":          EnvLogLevel,
		"logging.format":         EnvLogFormat,
		"logging.source":         EnvLogSource,
		"logging.file":           EnvLogFile,
	}
	name, ok := names[key]
	if !ok || os.Getenv(name) == "" {
		return ""
	}
	return name
}
