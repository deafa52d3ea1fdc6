// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// riskwatch.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.riskwatch/config.toml
//   - ~/.riskwatch/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete riskwatch configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Backend configuration
	Backend BackendConfig `toml:"backend" json:"backend"`

	// Greeting configuration (shown when no seed payload is given)
	Greeting GreetingConfig `toml:"greeting" json:"greeting"`

	// Seed configuration
	Seed SeedConfig `toml:"seed" json:"seed"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Logging configuration
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// BackendConfig contains retrieval backend configuration.
type BackendConfig struct {
	// BaseURL is the URL of the retrieval backend
	BaseURL string `toml:"base_url" json:"base_url"`
	// Protocol selects the request protocol: "chat" or "retrieve"
	Protocol string `toml:"protocol" json:"protocol"`
	// K is the number of context items to request per query
	K int `toml:"k" json:"k"`
	// TimeoutSecs is the per-request timeout in seconds (0 = no timeout)
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// Timeout returns the per-request timeout as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// GreetingConfig controls the startup greeting turn.
type GreetingConfig struct {
	// Enabled shows a greeting turn when no seed payload is present
	Enabled bool `toml:"enabled" json:"enabled"`
	// Text overrides the default greeting content
	Text string `toml:"text" json:"text"`
}

// SeedConfig configures the optional seed payload.
type SeedConfig struct {
	// File is the path to a JSON seed payload loaded at startup
	File string `toml:"file" json:"file"`
	// Watch reloads the conversation seed when the file changes
	Watch bool `toml:"watch" json:"watch"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// CompactMode collapses finding cards to one-line summaries
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// ShowFindings renders retrieved context under assistant turns
	ShowFindings bool `toml:"show_findings" json:"show_findings"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Enabled turns on debug logging to File
	Enabled bool `toml:"enabled" json:"enabled"`
	// File is the log file path (empty = ~/.riskwatch/riskwatch.log)
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// DefaultGreeting is shown as the first assistant turn when no seed payload
// is loaded.
const DefaultGreeting = "Hello! Ask me about company risk. I'll search the " +
	"latest findings and answer with supporting context."

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Backend: BackendConfig{
			BaseURL:     "http://localhost:8000",
			Protocol:    "chat",
			K:           5,
			TimeoutSecs: 0,
		},

		Greeting: GreetingConfig{
			Enabled: true,
			Text:    "",
		},

		Seed: SeedConfig{
			File:  "",
			Watch: false,
		},

		UI: UIConfig{
			Theme:        "dark",
			CompactMode:  false,
			ShowFindings: true,
		},

		Logging: LoggingConfig{
			Enabled: false,
			File:    "",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the riskwatch configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".riskwatch"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	cfg, err = finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// finishLoad applies env overrides, defaults, and validation.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# riskwatch configuration file")
	fmt.Fprintln(file, "# Generated by riskwatch - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Backend.BaseURL != "" {
		u, err := url.Parse(c.Backend.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "backend.base_url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Backend.BaseURL),
			})
		}
	}

	validProtocols := map[string]bool{"chat": true, "retrieve": true}
	if !validProtocols[strings.ToLower(c.Backend.Protocol)] {
		errs = append(errs, ValidationError{
			Field:   "backend.protocol",
			Message: fmt.Sprintf("invalid protocol '%s', must be one of: chat, retrieve", c.Backend.Protocol),
		})
	}

	if c.Backend.K < 1 || c.Backend.K > 50 {
		errs = append(errs, ValidationError{
			Field:   "backend.k",
			Message: fmt.Sprintf("k must be 1-50, got %d", c.Backend.K),
		})
	}

	if c.Backend.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "backend.timeout_secs",
			Message: "must be non-negative",
		})
	}

	if c.Seed.Watch && c.Seed.File == "" {
		errs = append(errs, ValidationError{
			Field:   "seed.watch",
			Message: "requires seed.file to be set",
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value configuration
// fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = defaults.Backend.BaseURL
	}
	if c.Backend.Protocol == "" {
		c.Backend.Protocol = defaults.Backend.Protocol
	}
	if c.Backend.K == 0 {
		c.Backend.K = defaults.Backend.K
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - RISKWATCH_BACKEND_URL: overrides backend.base_url
//   - RISKWATCH_PROTOCOL: overrides backend.protocol
//   - RISKWATCH_K: overrides backend.k
//   - RISKWATCH_TIMEOUT_SECS: overrides backend.timeout_secs
//   - RISKWATCH_SEED_FILE: overrides seed.file
//   - RISKWATCH_THEME: overrides ui.theme
//   - RISKWATCH_DEBUG: set to "1" or "true" to enable debug logging
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RISKWATCH_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("RISKWATCH_PROTOCOL"); v != "" {
		c.Backend.Protocol = v
	}
	if v := os.Getenv("RISKWATCH_K"); v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			c.Backend.K = k
		}
	}
	if v := os.Getenv("RISKWATCH_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Backend.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("RISKWATCH_SEED_FILE"); v != "" {
		c.Seed.File = v
	}
	if v := os.Getenv("RISKWATCH_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("RISKWATCH_DEBUG"); v != "" {
		c.Logging.Enabled = v == "1" || strings.ToLower(v) == "true"
	}
}

// GreetingText returns the configured greeting, falling back to the default.
// Returns the empty string when the greeting is disabled.
func (c *Config) GreetingText() string {
	if !c.Greeting.Enabled {
		return ""
	}
	if c.Greeting.Text != "" {
		return c.Greeting.Text
	}
	return DefaultGreeting
}

// LogFilePath returns the effective log file path.
func (c *Config) LogFilePath() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "riskwatch.log"), nil
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
