package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BackendURL != "http://localhost:5001" {
		t.Errorf("BackendURL = %s", cfg.BackendURL)
	}
	if cfg.SourceLang != "en" || cfg.TargetLang != "hi" {
		t.Errorf("languages = %s -> %s", cfg.SourceLang, cfg.TargetLang)
	}
	if cfg.DetectDelay() != time.Second {
		t.Errorf("DetectDelay() = %v", cfg.DetectDelay())
	}
	if cfg.LocationTimeout() != 5*time.Second {
		t.Errorf("LocationTimeout() = %v", cfg.LocationTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestConfigDurationsFallback(t *testing.T) {
	cfg := Config{}
	if cfg.DetectDelay() != time.Second {
		t.Errorf("DetectDelay() = %v", cfg.DetectDelay())
	}
	if cfg.LocationTimeout() != 5*time.Second {
		t.Errorf("LocationTimeout() = %v", cfg.LocationTimeout())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad source", func(c *Config) { c.SourceLang = "xx" }, true},
		{"bad target", func(c *Config) { c.TargetLang = "" }, true},
		{"empty backend", func(c *Config) { c.BackendURL = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetConfigDir_EnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvConfigDir, tmp)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir != tmp {
		t.Errorf("GetConfigDir() = %s, want %s", dir, tmp)
	}

	logPath, err := GetLogPath()
	if err != nil {
		t.Fatal(err)
	}
	if logPath != filepath.Join(tmp, "medilingua.log") {
		t.Errorf("GetLogPath() = %s", logPath)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvConfigDir, tmp)
	t.Setenv(EnvBackendURL, "")

	cfg := DefaultConfig()
	cfg.TargetLang = "es"
	cfg.DetectDelayMs = 500

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(tmp, "config.json"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.TargetLang != "es" || loaded.DetectDelayMs != 500 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	t.Setenv(EnvBackendURL, "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BackendURL != DefaultConfig().BackendURL {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvConfigDir, tmp)
	if err := os.WriteFile(filepath.Join(tmp, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.SourceLang != "en" {
		t.Error("expected defaults on parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvBackendURL, "http://backend:9000/")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvTheme, "nord")
	t.Setenv("GLAMOUR_STYLE", "light")

	cfg := ApplyEnv(DefaultConfig())

	if cfg.BackendURL != "http://backend:9000" {
		t.Errorf("BackendURL = %s", cfg.BackendURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
	if cfg.TUITheme != "nord" {
		t.Errorf("TUITheme = %s", cfg.TUITheme)
	}
	if cfg.Markdown.Style != "light" {
		t.Errorf("Markdown.Style = %s", cfg.Markdown.Style)
	}
}

func TestLoadDotEnv(t *testing.T) {
	tmp := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	// No .env present is not an error
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() without file = %v", err)
	}

	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)
	if err := os.WriteFile(".env", []byte(EnvLogLevel+"=warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() = %v", err)
	}
	if got := os.Getenv(EnvLogLevel); got != "warn" {
		t.Errorf("%s = %q, want warn", EnvLogLevel, got)
	}
}
