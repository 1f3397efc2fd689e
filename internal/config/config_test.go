package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("server url = %q", cfg.ServerURL)
	}
	if cfg.Timeout() != time.Duration(DefaultTimeoutSeconds)*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout())
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("theme = %q", cfg.Theme)
	}
	if cfg.Speech.Locale != "en-US" {
		t.Errorf("locale = %q", cfg.Speech.Locale)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
server_url = "http://todos.example.com"
timeout_seconds = 3
theme = "neon"

[speech]
command = "hear"
args = ["--once"]
locale = "fr-FR"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "http://todos.example.com" {
		t.Errorf("server url = %q", cfg.ServerURL)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout())
	}
	if cfg.Speech.Command != "hear" || cfg.Speech.Locale != "fr-FR" {
		t.Errorf("speech = %+v", cfg.Speech)
	}
	if len(cfg.Speech.Args) != 1 || cfg.Speech.Args[0] != "--once" {
		t.Errorf("speech args = %v", cfg.Speech.Args)
	}
}

func TestEnvOverridesServerURL(t *testing.T) {
	t.Setenv("TUDU_SERVER", "http://other:9000")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "http://other:9000" {
		t.Errorf("server url = %q", cfg.ServerURL)
	}
}

func TestBadTomlFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("server_url = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
