package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moodio/moodio-agent/internal/menu"
)

func TestLoadMenuConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadMenuConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := menu.ValidateConfig(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.DefaultMode == "" {
		t.Fatalf("default mode missing")
	}
}

func TestLoadMenuConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.toml")
	content := `
default_mode = "draw"

[modes.draw]
label = "Draw"

[modes.talk]
label = "Talk"

[categories.model]
label = "Model"
default = "small"

[categories.model.options.small]
label = "Small"

[categories.model.options.large]
label = "Large"

[categories.expertise]
label = "Expertise"
default = "basic"

[categories.expertise.options.basic]
label = "Basic"

[categories.aspect_ratio]
label = "Aspect ratio"
default = "1:1"

[categories.aspect_ratio.options."1:1"]
label = "Square"

[contexts.draw]
defaults = { model = "large" }

[contexts.draw.availability.model]
enabled = true
allowed = ["small", "large"]

[contexts.draw.availability.aspect_ratio]
enabled = true
allowed = ["1:1"]

[contexts.talk.availability.model]
enabled = true
allowed = ["small"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write menu config: %v", err)
	}

	cfg, err := LoadMenuConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultMode != "draw" {
		t.Fatalf("expected default mode draw, got %q", cfg.DefaultMode)
	}
	ctx, ok := cfg.Contexts["draw"]
	if !ok {
		t.Fatalf("draw context missing")
	}
	if ctx.Defaults[menu.CategoryModel] != "large" {
		t.Fatalf("expected draw model default large, got %q", ctx.Defaults[menu.CategoryModel])
	}
	if ctx.Availability[menu.CategoryExpertise].Enabled {
		t.Fatalf("expertise should be disabled in draw")
	}

	state := menu.Resolve(cfg, menu.InitialState(cfg), "")
	if state.Mode != "draw" || state.Model != "large" {
		t.Fatalf("unexpected resolved state: %+v", state)
	}
}

func TestLoadMenuConfigRejectsUnknownCategory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.toml")
	content := `
default_mode = "draw"

[modes.draw]
label = "Draw"

[categories.flavor]
label = "Flavor"
default = "sweet"

[categories.flavor.options.sweet]
label = "Sweet"

[contexts.draw.availability.flavor]
enabled = true
allowed = ["sweet"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write menu config: %v", err)
	}
	if _, err := LoadMenuConfig(path); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestLoadMenuConfigRejectsInvalidTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.toml")
	content := `
default_mode = "missing"

[modes.draw]
label = "Draw"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write menu config: %v", err)
	}
	if _, err := LoadMenuConfig(path); err == nil {
		t.Fatalf("expected validation error for unregistered default mode")
	}
}
