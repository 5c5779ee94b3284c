// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and persists client configuration.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// DEFAULT AND VALIDATION TESTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.Engine != "bedrock" {
		t.Errorf("default engine = %q, want bedrock", cfg.Backend.Engine)
	}
	if cfg.Backend.TimeoutSecs != 10 {
		t.Errorf("default timeout = %d, want 10", cfg.Backend.TimeoutSecs)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("default theme = %q, want dark", cfg.UI.Theme)
	}
	if cfg.UI.ExportFormat != "markdown" {
		t.Errorf("default export format = %q, want markdown", cfg.UI.ExportFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"langchain engine", func(c *Config) { c.Backend.Engine = "langchain" }, false},
		{"unknown engine", func(c *Config) { c.Backend.Engine = "gpt9" }, true},
		{"light theme", func(c *Config) { c.UI.Theme = "light" }, false},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"json export format", func(c *Config) { c.UI.ExportFormat = "json" }, false},
		{"unknown export format", func(c *Config) { c.UI.ExportFormat = "pdf" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Backend.BaseURL != Default().Backend.BaseURL {
		t.Error("missing file should fall back to defaults")
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[backend]\nbase_url = \"https://rag.example.com\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Backend.BaseURL != "https://rag.example.com" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Engine != "bedrock" {
		t.Error("unset fields should keep their defaults")
	}
	if cfg.Backend.TimeoutSecs != 10 {
		t.Error("unset timeout should keep its default")
	}
}

func TestLoadFrom_EnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[backend]\nengine = \"bedrock\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RAGDEMON_ENGINE", "langchain")
	t.Setenv("RAGDEMON_TIMEOUT_SECS", "30")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Backend.Engine != "langchain" {
		t.Errorf("Engine = %q, env override should win", cfg.Backend.Engine)
	}
	if cfg.Backend.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want 30", cfg.Backend.TimeoutSecs)
	}
}

func TestLoadFrom_InvalidConfigRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[backend]\nengine = \"mystery\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("unknown engine should fail validation")
	}
}

// =============================================================================
// SAVE TESTS
// =============================================================================

func TestConfig_SaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Backend.BaseURL = "https://rag.example.com"
	cfg.UI.Theme = "light"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %o, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Backend.BaseURL != cfg.Backend.BaseURL || loaded.UI.Theme != "light" {
		t.Error("saved config did not round-trip")
	}
}
