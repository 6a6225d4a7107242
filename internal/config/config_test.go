package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 {
		t.Fatalf("expected zero dimensions, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.ShowFooter {
		t.Fatalf("footer should default to disabled")
	}
	if cfg.App.PollInterval != 5*time.Second {
		t.Fatalf("expected default poll interval, got %s", cfg.App.PollInterval)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		"MOODIO_AGENT_BACKEND_URL=https://env.example",
		"MOODIO_AGENT_WIDTH=100",
	}
	cfg, err := LoadArgs([]string{"-backend-url", "https://flag.example", "-width", "80"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.BackendURL != "https://flag.example" {
		t.Fatalf("flag should win over env, got %q", cfg.App.BackendURL)
	}
	if cfg.App.Width != 80 {
		t.Fatalf("expected width 80, got %d", cfg.App.Width)
	}
}

func TestLoadArgsReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
draft_dir = "/tmp/moodio-drafts"
menu_config = "/tmp/menu.toml"
poll_interval = "10s"

[backend]
url = "https://file.example"
api_key = "sk-file"

[ui]
width = 120
footer = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadArgs(nil, []string{"MOODIO_AGENT_CONFIG=" + path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.BackendURL != "https://file.example" {
		t.Fatalf("expected file backend URL, got %q", cfg.App.BackendURL)
	}
	if cfg.App.APIKey != "sk-file" {
		t.Fatalf("expected file API key, got %q", cfg.App.APIKey)
	}
	if cfg.App.Width != 120 || !cfg.App.ShowFooter {
		t.Fatalf("file UI settings not applied: %+v", cfg.App)
	}
	if cfg.App.PollInterval != 10*time.Second {
		t.Fatalf("expected 10s poll interval, got %s", cfg.App.PollInterval)
	}
	if cfg.App.DraftDir != "/tmp/moodio-drafts" {
		t.Fatalf("expected file draft dir, got %q", cfg.App.DraftDir)
	}
	if cfg.App.MenuConfig != "/tmp/menu.toml" {
		t.Fatalf("expected file menu config path, got %q", cfg.App.MenuConfig)
	}
	if cfg.FilePath != path {
		t.Fatalf("expected file path recorded, got %q", cfg.FilePath)
	}
}

func TestLoadArgsMissingExplicitFileFails(t *testing.T) {
	_, err := LoadArgs(nil, []string{"MOODIO_AGENT_CONFIG=/does/not/exist.toml"})
	if err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoadArgsRejectsNegativeDimensions(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative width")
	}
	if _, err := LoadArgs([]string{"-height", "-5"}, nil); err == nil {
		t.Fatalf("expected error for negative height")
	}
}

func TestValidateRequiresBackendURL(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error without backend URL")
	}
	cfg.App.BackendURL = "https://api.moodio.example"
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
