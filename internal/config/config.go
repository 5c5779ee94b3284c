// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and persists client configuration.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ragdemon/ragdemon-tui/internal/util"
)

// =============================================================================
// CONFIGURATION TYPES
// =============================================================================

// Config is the top-level client configuration.
type Config struct {
	// Version of the config schema.
	Version string `toml:"version" json:"version"`

	Backend BackendConfig `toml:"backend" json:"backend"`
	Auth    AuthConfig    `toml:"auth" json:"auth"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// BackendConfig selects and tunes the RAG backend.
type BackendConfig struct {
	// BaseURL is the backend base URL.
	BaseURL string `toml:"base_url" json:"base_url"`
	// Engine is the retrieval backend: "bedrock" or "langchain".
	Engine string `toml:"engine" json:"engine"`
	// TimeoutSecs bounds each completion request.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// Timeout returns the request timeout as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// AuthConfig describes where credentials come from.
type AuthConfig struct {
	// TokenEnv is the environment variable holding the bearer token.
	TokenEnv string `toml:"token_env" json:"token_env"`
	// UserID identifies the user to the history endpoints. Empty falls
	// back to the cached anonymous session.
	UserID string `toml:"user_id" json:"user_id"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
	// ShowTimestamps renders a timestamp under each message.
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// Markdown renders assistant replies as markdown.
	Markdown bool `toml:"markdown" json:"markdown"`
	// ExportFormat selects the transcript export format: "markdown" or
	// "json".
	ExportFormat string `toml:"export_format" json:"export_format"`
}

// LoggingConfig controls the debug log file.
type LoggingConfig struct {
	// Level is the zerolog level name; "disabled" turns logging off.
	Level string `toml:"level" json:"level"`
	// File is the log destination. Empty means ~/.ragdemon/debug.log.
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Backend: BackendConfig{
			BaseURL:     "http://127.0.0.1:8000",
			Engine:      "bedrock",
			TimeoutSecs: 10,
		},
		Auth: AuthConfig{
			TokenEnv: "RAGDEMON_TOKEN",
		},
		UI: UIConfig{
			Theme:          "dark",
			ShowTimestamps: true,
			Markdown:       true,
			ExportFormat:   "markdown",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// ConfigDir returns the ragdemon configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ragdemon"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD AND SAVE
// =============================================================================

// Load reads configuration from the default path. A missing file is not an
// error; defaults plus environment overrides are returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies RAGDEMON_* environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RAGDEMON_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("RAGDEMON_ENGINE"); v != "" {
		c.Backend.Engine = v
	}
	if v := os.Getenv("RAGDEMON_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Backend.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("RAGDEMON_USER_ID"); v != "" {
		c.Auth.UserID = v
	}
	if v := os.Getenv("RAGDEMON_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("RAGDEMON_EXPORT_FORMAT"); v != "" {
		c.UI.ExportFormat = v
	}
	if v := os.Getenv("RAGDEMON_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// SetDefaults fills zero values left by a sparse config file.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = d.Backend.BaseURL
	}
	if c.Backend.Engine == "" {
		c.Backend.Engine = d.Backend.Engine
	}
	if c.Backend.TimeoutSecs <= 0 {
		c.Backend.TimeoutSecs = d.Backend.TimeoutSecs
	}
	if c.Auth.TokenEnv == "" {
		c.Auth.TokenEnv = d.Auth.TokenEnv
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.ExportFormat == "" {
		c.UI.ExportFormat = d.UI.ExportFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

// Validate rejects configurations the client cannot run with.
func (c *Config) Validate() error {
	switch c.Backend.Engine {
	case "bedrock", "langchain":
	default:
		return fmt.Errorf("unknown backend engine %q", c.Backend.Engine)
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("unknown theme %q", c.UI.Theme)
	}
	switch c.UI.ExportFormat {
	case "markdown", "md", "json":
	default:
		return fmt.Errorf("unknown export format %q", c.UI.ExportFormat)
	}
	return nil
}

// Save writes the configuration atomically to the default path.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration atomically to an explicit path. Config
// files are 0600 since they may name credential sources.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu sync.RWMutex
	global   *Config
)

// Global returns the process-wide configuration, loading it on first use.
func Global() *Config {
	globalMu.RLock()
	if global != nil {
		defer globalMu.RUnlock()
		return global
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		global = cfg
	}
	return global
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = cfg
}
