package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	cfg := DefaultSettings()
	if cfg.ServerBaseURL() != "http://127.0.0.1:8000" {
		t.Fatalf("unexpected default base url: %s", cfg.ServerBaseURL())
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("unexpected default log level: %s", cfg.LogLevel())
	}
	if !cfg.MarkdownEnabled() {
		t.Fatalf("expected markdown enabled by default")
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[server]\naddress = \"https://docs.example.com/\"\n\n[logging]\nlevel = \"debug\"\n\n[ui]\nmarkdown = false\n\n[export]\ndir = \"" + filepath.Join(dir, "out") + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	cfg, err := loadSettingsFromPath(path)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if cfg.ServerBaseURL() != "https://docs.example.com" {
		t.Fatalf("unexpected base url: %s", cfg.ServerBaseURL())
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel())
	}
	if cfg.MarkdownEnabled() {
		t.Fatalf("expected markdown disabled")
	}
	exportDir, err := cfg.ExportDir()
	if err != nil {
		t.Fatalf("export dir: %v", err)
	}
	if exportDir != filepath.Join(dir, "out") {
		t.Fatalf("unexpected export dir: %s", exportDir)
	}
}

func TestMissingSettingsFileUsesDefaults(t *testing.T) {
	cfg, err := loadSettingsFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if cfg.ServerBaseURL() != "http://127.0.0.1:8000" {
		t.Fatalf("expected defaults, got %s", cfg.ServerBaseURL())
	}
}

func TestServerBaseURLNormalization(t *testing.T) {
	cfg := DefaultSettings()
	cfg.Server.Address = "localhost:9000/"
	if cfg.ServerBaseURL() != "http://localhost:9000" {
		t.Fatalf("unexpected base url: %s", cfg.ServerBaseURL())
	}
	cfg.Server.Address = "   "
	if cfg.ServerBaseURL() != "http://127.0.0.1:8000" {
		t.Fatalf("expected fallback, got %s", cfg.ServerBaseURL())
	}
}
