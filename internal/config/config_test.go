// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, "chat", cfg.Backend.Protocol)
	assert.Equal(t, 5, cfg.Backend.K)
	assert.Equal(t, 0, cfg.Backend.TimeoutSecs)
	assert.True(t, cfg.Greeting.Enabled)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.True(t, cfg.UI.ShowFindings)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
version = "1.0.0"

[backend]
base_url = "http://risk.internal:9000"
protocol = "retrieve"
k = 10

[ui]
theme = "light"
compact_mode = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := Default()
	require.NoError(t, LoadTOML(cfg, path))

	assert.Equal(t, "http://risk.internal:9000", cfg.Backend.BaseURL)
	assert.Equal(t, "retrieve", cfg.Backend.Protocol)
	assert.Equal(t, 10, cfg.Backend.K)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.True(t, cfg.UI.CompactMode)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
  "backend": {"base_url": "http://10.0.0.5:8000", "k": 3},
  "seed": {"file": "/tmp/seed.json"}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := Default()
	require.NoError(t, LoadJSON(cfg, path))

	assert.Equal(t, "http://10.0.0.5:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 3, cfg.Backend.K)
	assert.Equal(t, "/tmp/seed.json", cfg.Seed.File)
}

func TestLoadFromPathValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[backend]
protocol = "stream"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.protocol")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "bad protocol",
			mutate:  func(c *Config) { c.Backend.Protocol = "grpc" },
			wantErr: "backend.protocol",
		},
		{
			name:    "bad url",
			mutate:  func(c *Config) { c.Backend.BaseURL = "not a url" },
			wantErr: "backend.base_url",
		},
		{
			name:    "k too small",
			mutate:  func(c *Config) { c.Backend.K = 0 },
			wantErr: "backend.k",
		},
		{
			name:    "k too large",
			mutate:  func(c *Config) { c.Backend.K = 100 },
			wantErr: "backend.k",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Backend.TimeoutSecs = -1 },
			wantErr: "backend.timeout_secs",
		},
		{
			name:    "watch without file",
			mutate:  func(c *Config) { c.Seed.Watch = true },
			wantErr: "seed.watch",
		},
		{
			name:    "bad theme",
			mutate:  func(c *Config) { c.UI.Theme = "solarized" },
			wantErr: "ui.theme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("RISKWATCH_BACKEND_URL", "http://override:8080")
	t.Setenv("RISKWATCH_PROTOCOL", "retrieve")
	t.Setenv("RISKWATCH_K", "7")
	t.Setenv("RISKWATCH_DEBUG", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://override:8080", cfg.Backend.BaseURL)
	assert.Equal(t, "retrieve", cfg.Backend.Protocol)
	assert.Equal(t, 7, cfg.Backend.K)
	assert.True(t, cfg.Logging.Enabled)
}

func TestApplyEnvOverridesIgnoresBadInt(t *testing.T) {
	t.Setenv("RISKWATCH_K", "many")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, 5, cfg.Backend.K)
}

func TestSetDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, "chat", cfg.Backend.Protocol)
	assert.Equal(t, 5, cfg.Backend.K)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestGreetingText(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultGreeting, cfg.GreetingText())

	cfg.Greeting.Text = "Welcome to the risk desk."
	assert.Equal(t, "Welcome to the risk desk.", cfg.GreetingText())

	cfg.Greeting.Enabled = false
	assert.Empty(t, cfg.GreetingText())
}

func TestSaveAndReloadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Backend.K = 8
	cfg.UI.Theme = "light"
	require.NoError(t, SaveTOML(cfg, path))

	loaded := Default()
	require.NoError(t, LoadTOML(loaded, path))
	assert.Equal(t, 8, loaded.Backend.K)
	assert.Equal(t, "light", loaded.UI.Theme)
}
