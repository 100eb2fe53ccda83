// Package config loads planpin settings: defaults, then an optional YAML
// file in the user's config directory, then PLANPIN_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/planpin/internal/api"
	"gopkg.in/yaml.v3"
)

// Notices holds how long each kind of transient message stays on screen.
type Notices struct {
	SuccessMs int `yaml:"success_ms"`
	InfoMs    int `yaml:"info_ms"`
	ErrorMs   int `yaml:"error_ms"`
}

// Success returns the success notice duration.
func (n Notices) Success() time.Duration { return time.Duration(n.SuccessMs) * time.Millisecond }

// Info returns the informational notice duration.
func (n Notices) Info() time.Duration { return time.Duration(n.InfoMs) * time.Millisecond }

// Error returns the error notice duration.
func (n Notices) Error() time.Duration { return time.Duration(n.ErrorMs) * time.Millisecond }

// Config represents the application configuration.
type Config struct {
	APIURL     string  `yaml:"api_url"`
	TimeoutMs  int     `yaml:"timeout_ms"`
	MaxRetries *int    `yaml:"max_retries"`
	DBPath     string  `yaml:"db_path"`
	LogCalls   bool    `yaml:"log_calls"`
	Notice     Notices `yaml:"notice"`
}

// Default returns the built-in configuration. DBPath is resolved by Load.
func Default() Config {
	apiCfg := api.DefaultConfig()
	retries := apiCfg.MaxRetries
	return Config{
		APIURL:     apiCfg.BaseURL,
		TimeoutMs:  apiCfg.TimeoutMs,
		MaxRetries: &retries,
		Notice: Notices{
			SuccessMs: 1500,
			InfoMs:    2000,
			ErrorMs:   5000,
		},
	}
}

// API returns the client settings.
func (c Config) API() api.Config {
	cfg := api.Config{
		BaseURL:   c.APIURL,
		TimeoutMs: c.TimeoutMs,
	}
	if c.MaxRetries != nil {
		cfg.MaxRetries = *c.MaxRetries
	}
	return cfg
}

// Load reads the config file if present and applies environment overrides.
// A missing file is not an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()

	if path, err := Path(); err == nil {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	cfg.applyDefaults()

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".planpin", "device.db")
	}
	return cfg, nil
}

// Path returns the config file location.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "planpin", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "planpin", "config.yaml"), nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PLANPIN_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("PLANPIN_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PLANPIN_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = &n
		}
	}
	if v := os.Getenv("PLANPIN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PLANPIN_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
}

// applyDefaults fills zero values a partial file may leave behind.
func (c *Config) applyDefaults() {
	d := Default()
	if c.APIURL == "" {
		c.APIURL = d.APIURL
	}
	if c.TimeoutMs <= 0 {
		c.TimeoutMs = d.TimeoutMs
	}
	if c.MaxRetries == nil || *c.MaxRetries < 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.Notice.SuccessMs <= 0 {
		c.Notice.SuccessMs = d.Notice.SuccessMs
	}
	if c.Notice.InfoMs <= 0 {
		c.Notice.InfoMs = d.Notice.InfoMs
	}
	if c.Notice.ErrorMs <= 0 {
		c.Notice.ErrorMs = d.Notice.ErrorMs
	}
}
