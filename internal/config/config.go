// Package config handles configuration loading for medilingua.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/diogo/medilingua/internal/models"
)

// Environment variables that override the config file
const (
	EnvBackendURL = "MEDILINGUA_BACKEND_URL"
	EnvLogLevel   = "MEDILINGUA_LOG_LEVEL"
	EnvTheme      = "MEDILINGUA_THEME"
	EnvConfigDir  = "MEDILINGUA_HOME"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`             // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
}

// SpeechConfig selects the external engines behind speech capture and playback
type SpeechConfig struct {
	// RecognizerCommand streams JSON lines {"text":..., "final":bool} on stdout.
	// The placeholder {locale} is replaced with the capture locale. Empty disables capture.
	RecognizerCommand []string `json:"recognizer_command,omitempty"`
	// SynthesizerCommand is the text-to-speech binary (espeak-ng compatible flags)
	SynthesizerCommand string `json:"synthesizer_command,omitempty"`
}

// LocationConfig configures the SOS hospital finder
type LocationConfig struct {
	Endpoint       string `json:"endpoint"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Config represents the user configuration
type Config struct {
	BackendURL string `json:"backend_url"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	// DetectDelayMs is the quiet period after the last keystroke before language detection runs
	DetectDelayMs int    `json:"detect_delay_ms"`
	TUITheme      string `json:"tui_theme,omitempty"`
	LogLevel      string `json:"log_level"`
	// CopyLinks copies external links (sign lookup, visual aid, SOS) to the clipboard
	CopyLinks bool           `json:"copy_links"`
	Verbose   bool           `json:"verbose"`
	Speech    SpeechConfig   `json:"speech"`
	Location  LocationConfig `json:"location"`
	Markdown  MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      false,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		BackendURL:    models.DefaultBackendURL,
		SourceLang:    models.DefaultSourceLang,
		TargetLang:    models.DefaultTargetLang,
		DetectDelayMs: 1000,
		TUITheme:      "tokyonight",
		LogLevel:      "info",
		CopyLinks:     true,
		Speech: SpeechConfig{
			SynthesizerCommand: "espeak-ng",
		},
		Location: LocationConfig{
			Endpoint:       "http://ip-api.com/json/",
			TimeoutSeconds: 5,
		},
		Markdown: DefaultMarkdownConfig(),
	}
}

// DetectDelay returns the debounce window as a duration
func (c Config) DetectDelay() time.Duration {
	if c.DetectDelayMs <= 0 {
		return time.Second
	}
	return time.Duration(c.DetectDelayMs) * time.Millisecond
}

// LocationTimeout returns the geolocation bound as a duration
func (c Config) LocationTimeout() time.Duration {
	if c.Location.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Location.TimeoutSeconds) * time.Second
}

// Validate checks that the configured languages are supported
func (c Config) Validate() error {
	if !models.IsSupportedLanguage(c.SourceLang) {
		return fmt.Errorf("unsupported source language: %s", c.SourceLang)
	}
	if !models.IsSupportedLanguage(c.TargetLang) {
		return fmt.Errorf("unsupported target language: %s", c.TargetLang)
	}
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url cannot be empty")
	}
	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".medilingua"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the path to the log file
func GetLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "medilingua.log"), nil
}

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat .env: %w", err)
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values from the environment
func ApplyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv(EnvBackendURL)); v != "" {
		cfg.BackendURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.TUITheme = v
	}
	if v := strings.TrimSpace(os.Getenv("GLAMOUR_STYLE")); v != "" {
		cfg.Markdown.Style = v
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	return cfg
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return ApplyEnv(cfg), err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ApplyEnv(cfg), nil
		}
		return ApplyEnv(cfg), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return ApplyEnv(DefaultConfig()), fmt.Errorf("failed to parse config file: %w", err)
	}

	return ApplyEnv(cfg), nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
