// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// regnav-tui.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.regnav/config.toml
//   - ~/.regnav/config.json
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
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/yabooung/regnav-tui/internal/ragapi"
	"github.com/yabooung/regnav-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete regnav configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// API holds backend connectivity settings.
	API APIConfig `toml:"api" json:"api"`

	// Chat holds the session toggles threaded into every request.
	Chat ChatConfig `toml:"chat" json:"chat"`

	// Model holds LLM tuning for the prompt stages.
	Model ModelConfig `toml:"model" json:"model"`

	// Retrieval holds vector-search tuning.
	Retrieval RetrievalConfig `toml:"retrieval" json:"retrieval"`

	// Stages holds per-stage enable flags and prompt overrides.
	Stages StagesConfig `toml:"stages" json:"stages"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// APIConfig contains backend connectivity settings.
type APIConfig struct {
	// BaseURL of the backend API.
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string `toml:"base_url" json:"base_url"`
	// Endpoint path of the chat route.
	Endpoint string `toml:"endpoint" json:"endpoint"`
	// TimeoutSecs bounds the whole request; the server-side pipeline runs
	// several LLM stages, so this is generous.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// ChatConfig contains the session toggles.
type ChatConfig struct {
	// UseMock routes sends through the mock engine.
	UseMock bool `toml:"use_mock" json:"use_mock"`
	// MockDelayMs is the artificial latency of the mock path.
	MockDelayMs int `toml:"mock_delay_ms" json:"mock_delay_ms"`
	// UseSimpleQuery sends the minimal {query} body.
	UseSimpleQuery bool `toml:"use_simple_query" json:"use_simple_query"`
	// UseAPIModel lets Model overrides reach the wire.
	UseAPIModel bool `toml:"use_api_model" json:"use_api_model"`
	// UseCustomPrompt lets Stages overrides reach the wire.
	UseCustomPrompt bool `toml:"use_custom_prompt" json:"use_custom_prompt"`
}

// ModelConfig contains LLM tuning for the prompt stages.
type ModelConfig struct {
	Name        string  `toml:"name" json:"name"`
	Temperature float64 `toml:"temperature" json:"temperature"`
	MaxTokens   int     `toml:"max_tokens" json:"max_tokens"`
	TopK        int     `toml:"top_k" json:"top_k"`
}

// RetrievalConfig contains vector-search tuning.
type RetrievalConfig struct {
	CollectionName  string  `toml:"collection_name" json:"collection_name"`
	FilterThreshold float64 `toml:"filter_threshold" json:"filter_threshold"`
	UseMMR          bool    `toml:"use_mmr" json:"use_mmr"`
	LambdaMult      float64 `toml:"lambda_mult" json:"lambda_mult"`
}

// StagesConfig contains per-stage enable flags and prompt overrides. Empty
// prompts fall back to the backend defaults at request-build time.
type StagesConfig struct {
	EnableClassification bool `toml:"enable_classification" json:"enable_classification"`
	EnableAmplification  bool `toml:"enable_amplification" json:"enable_amplification"`
	EnableValidation     bool `toml:"enable_validation" json:"enable_validation"`

	ClassificationPrompt string `toml:"classification_prompt" json:"classification_prompt"`
	AmplificationPrompt  string `toml:"amplification_prompt" json:"amplification_prompt"`
	GenerationPrompt     string `toml:"generation_prompt" json:"generation_prompt"`
	ValidationPrompt     string `toml:"validation_prompt" json:"validation_prompt"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme is "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
	// CompactMode tightens message spacing.
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// ShowTimestamps renders per-message times.
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values. The request-side
// defaults mirror the backend contract constants in ragapi.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		API: APIConfig{
			BaseURL:     "http://127.0.0.1:8002/api",
			Endpoint:    "/cot-rag",
			TimeoutSecs: 300,
		},

		Chat: ChatConfig{
			UseMock:         true,
			MockDelayMs:     1500,
			UseSimpleQuery:  true,
			UseAPIModel:     true,
			UseCustomPrompt: true,
		},

		Model: ModelConfig{
			Name:        ragapi.DefaultModelName,
			Temperature: ragapi.DefaultTemperature,
			MaxTokens:   ragapi.DefaultMaxTokens,
			TopK:        ragapi.DefaultTopK,
		},

		Retrieval: RetrievalConfig{
			CollectionName:  ragapi.DefaultCollectionName,
			FilterThreshold: ragapi.DefaultFilterThreshold,
			UseMMR:          true,
			LambdaMult:      ragapi.DefaultLambdaMult,
		},

		Stages: StagesConfig{
			EnableClassification: true,
			EnableAmplification:  true,
			EnableValidation:     false,
		},

		UI: UIConfig{
			Theme:          "dark",
			CompactMode:    false,
			ShowTimestamps: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the regnav configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".regnav"), nil
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

// HistoryPath returns the path of the REPL history file.
func HistoryPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// Config files should be 0600 (owner read/write only).
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides (including a .env file) are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				cfg.ApplyEnvOverrides()
				if err := cfg.Validate(); err != nil {
					return nil, fmt.Errorf("invalid config: %w", err)
				}
				return cfg, nil
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				cfg.ApplyEnvOverrides()
				if err := cfg.Validate(); err != nil {
					return nil, fmt.Errorf("invalid config: %w", err)
				}
				return cfg, nil
			}
		}
	}

	// Apply environment overrides to defaults
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file over the given config, so
// keys absent from the file keep their current values.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file over the given config.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The format follows the file extension, defaulting to TOML.
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

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// fillDefaults fills in any missing values with defaults. Booleans are not
// backfilled here: loading decodes over a Default() config, so absent keys
// already hold their default values.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.API.Endpoint == "" {
		cfg.API.Endpoint = defaults.API.Endpoint
	}
	if cfg.API.TimeoutSecs == 0 {
		cfg.API.TimeoutSecs = defaults.API.TimeoutSecs
	}

	if cfg.Chat.MockDelayMs == 0 {
		cfg.Chat.MockDelayMs = defaults.Chat.MockDelayMs
	}

	if cfg.Model.Name == "" {
		cfg.Model.Name = defaults.Model.Name
	}
	if cfg.Model.Temperature == 0 {
		cfg.Model.Temperature = defaults.Model.Temperature
	}
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = defaults.Model.MaxTokens
	}
	if cfg.Model.TopK == 0 {
		cfg.Model.TopK = defaults.Model.TopK
	}

	if cfg.Retrieval.CollectionName == "" {
		cfg.Retrieval.CollectionName = defaults.Retrieval.CollectionName
	}
	if cfg.Retrieval.FilterThreshold == 0 {
		cfg.Retrieval.FilterThreshold = defaults.Retrieval.FilterThreshold
	}
	if cfg.Retrieval.LambdaMult == 0 {
		cfg.Retrieval.LambdaMult = defaults.Retrieval.LambdaMult
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
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

// SaveTOML saves the configuration to a TOML file with 0600 permissions,
// written atomically.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("# regnav configuration file\n")
	buf.WriteString("# Generated by regnav - edit with care\n\n")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(buf.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file with 0600 permissions,
// written atomically.
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
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

	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, ValidationError{
				Field:   "api.base_url",
				Message: fmt.Sprintf("invalid URL '%s', must be http or https", c.API.BaseURL),
			})
		}
	}
	if c.API.Endpoint != "" && !strings.HasPrefix(c.API.Endpoint, "/") {
		errs = append(errs, ValidationError{
			Field:   "api.endpoint",
			Message: fmt.Sprintf("endpoint '%s' must start with /", c.API.Endpoint),
		})
	}
	if c.API.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: "timeout cannot be negative",
		})
	}

	if c.Chat.MockDelayMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "chat.mock_delay_ms",
			Message: "mock delay cannot be negative",
		})
	}

	if c.Model.Temperature < 0 || c.Model.Temperature > 1 {
		errs = append(errs, ValidationError{
			Field:   "model.temperature",
			Message: fmt.Sprintf("temperature %.2f out of range [0, 1]", c.Model.Temperature),
		})
	}
	if c.Model.MaxTokens < 0 {
		errs = append(errs, ValidationError{
			Field:   "model.max_tokens",
			Message: "max_tokens cannot be negative",
		})
	}
	if c.Model.TopK < 0 {
		errs = append(errs, ValidationError{
			Field:   "model.top_k",
			Message: "top_k cannot be negative",
		})
	}

	if c.Retrieval.FilterThreshold < 0 || c.Retrieval.FilterThreshold > 1 {
		errs = append(errs, ValidationError{
			Field:   "retrieval.filter_threshold",
			Message: fmt.Sprintf("filter_threshold %.2f out of range [0, 1]", c.Retrieval.FilterThreshold),
		})
	}
	if c.Retrieval.LambdaMult < 0 || c.Retrieval.LambdaMult > 1 {
		errs = append(errs, ValidationError{
			Field:   "retrieval.lambda_mult",
			Message: fmt.Sprintf("lambda_mult %.2f out of range [0, 1]", c.Retrieval.LambdaMult),
		})
	}

	if c.UI.Theme != "" && c.UI.Theme != "dark" && c.UI.Theme != "light" {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be dark or light", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
// A .env file in the working directory is loaded first, without clobbering
// variables already set in the environment.
//
// Supported environment variables:
//   - REGNAV_BASE_URL: overrides api.base_url
//   - REGNAV_ENDPOINT: overrides api.endpoint
//   - REGNAV_TIMEOUT_SECS: overrides api.timeout_secs
//   - REGNAV_MOCK: "1"/"true" or "0"/"false" overrides chat.use_mock
//   - REGNAV_SIMPLE_QUERY: same, overrides chat.use_simple_query
//   - REGNAV_MODEL: overrides model.name
//   - REGNAV_COLLECTION: overrides retrieval.collection_name
func (c *Config) ApplyEnvOverrides() {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv("REGNAV_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("REGNAV_ENDPOINT"); v != "" {
		c.API.Endpoint = v
	}
	if v := os.Getenv("REGNAV_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("REGNAV_MOCK"); v != "" {
		c.Chat.UseMock = parseBoolEnv(v)
	}
	if v := os.Getenv("REGNAV_SIMPLE_QUERY"); v != "" {
		c.Chat.UseSimpleQuery = parseBoolEnv(v)
	}
	if v := os.Getenv("REGNAV_MODEL"); v != "" {
		c.Model.Name = v
	}
	if v := os.Getenv("REGNAV_COLLECTION"); v != "" {
		c.Retrieval.CollectionName = v
	}
}

func parseBoolEnv(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

// =============================================================================
// REQUEST WIRING
// =============================================================================

// Options materializes the session settings as request options. The result
// is threaded explicitly into ChatWithAI; nothing reads this config
// ambiently at send time.
func (c *Config) Options() *ragapi.Options {
	return &ragapi.Options{
		UseSimpleQuery:  c.Chat.UseSimpleQuery,
		UseAPIModel:     ragapi.Bool(c.Chat.UseAPIModel),
		UseCustomPrompt: ragapi.Bool(c.Chat.UseCustomPrompt),

		ModelName:   c.Model.Name,
		Temperature: c.Model.Temperature,
		MaxTokens:   c.Model.MaxTokens,
		TopK:        c.Model.TopK,

		CollectionName:  c.Retrieval.CollectionName,
		FilterThreshold: c.Retrieval.FilterThreshold,
		UseMMR:          ragapi.Bool(c.Retrieval.UseMMR),
		LambdaMult:      c.Retrieval.LambdaMult,

		EnableClassification: ragapi.Bool(c.Stages.EnableClassification),
		EnableAmplification:  ragapi.Bool(c.Stages.EnableAmplification),
		EnableValidation:     ragapi.Bool(c.Stages.EnableValidation),

		ClassificationPrompt: c.Stages.ClassificationPrompt,
		AmplificationPrompt:  c.Stages.AmplificationPrompt,
		GenerationPrompt:     c.Stages.GenerationPrompt,
		ValidationPrompt:     c.Stages.ValidationPrompt,
	}
}

// ClientConfig materializes the backend client configuration.
func (c *Config) ClientConfig() *ragapi.ClientConfig {
	return &ragapi.ClientConfig{
		BaseURL:   c.API.BaseURL,
		Endpoint:  c.API.Endpoint,
		Timeout:   time.Duration(c.API.TimeoutSecs) * time.Second,
		MockDelay: time.Duration(c.Chat.MockDelayMs) * time.Millisecond,
		UseMock:   c.Chat.UseMock,
	}
}

// ResetAPIOptions restores the request-shaping settings to their defaults,
// re-enabling simple-query mode. Connectivity and UI settings are untouched.
func (c *Config) ResetAPIOptions() {
	defaults := Default()
	c.Chat.UseSimpleQuery = defaults.Chat.UseSimpleQuery
	c.Chat.UseAPIModel = defaults.Chat.UseAPIModel
	c.Chat.UseCustomPrompt = defaults.Chat.UseCustomPrompt
	c.Model = defaults.Model
	c.Retrieval = defaults.Retrieval
	c.Stages = defaults.Stages
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
