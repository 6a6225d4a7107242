package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/moodio/moodio-agent/internal/menu"
)

// menuFile is the TOML schema for a mode-table overlay. Category keys use
// snake case in the file ("aspect_ratio") and map onto menu.Category values.
type menuFile struct {
	DefaultMode string                         `toml:"default_mode"`
	Modes       map[string]menuFileMode        `toml:"modes"`
	Categories  map[string]menuFileCategory    `toml:"categories"`
	Contexts    map[string]menuFileModeContext `toml:"contexts"`
}

type menuFileMode struct {
	Label       string `toml:"label"`
	Description string `toml:"description"`
}

type menuFileCategory struct {
	Label   string                    `toml:"label"`
	Default string                    `toml:"default"`
	Options map[string]menuFileOption `toml:"options"`
}

type menuFileOption struct {
	Label string `toml:"label"`
	Icon  string `toml:"icon"`
}

type menuFileModeContext struct {
	Defaults     map[string]string               `toml:"defaults"`
	Availability map[string]menuFileAvailability `toml:"availability"`
}

type menuFileAvailability struct {
	Enabled bool     `toml:"enabled"`
	Allowed []string `toml:"allowed"`
}

var fileCategories = map[string]menu.Category{
	"model":        menu.CategoryModel,
	"expertise":    menu.CategoryExpertise,
	"aspect_ratio": menu.CategoryAspectRatio,
}

// LoadMenuConfig reads a complete mode table from the TOML file at path and
// validates it. An empty path yields the built-in tables.
func LoadMenuConfig(path string) (menu.Config, error) {
	if strings.TrimSpace(path) == "" {
		return menu.DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return menu.Config{}, fmt.Errorf("menu config %s: %w", path, err)
	}
	var parsed menuFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return menu.Config{}, fmt.Errorf("parse menu config %s: %w", path, err)
	}
	cfg, err := parsed.toMenuConfig()
	if err != nil {
		return menu.Config{}, fmt.Errorf("menu config %s: %w", path, err)
	}
	if err := menu.ValidateConfig(cfg); err != nil {
		return menu.Config{}, fmt.Errorf("menu config %s: %w", path, err)
	}
	return cfg, nil
}

func (f menuFile) toMenuConfig() (menu.Config, error) {
	cfg := menu.Config{
		DefaultMode: f.DefaultMode,
		Modes:       make(map[string]menu.ModeInfo, len(f.Modes)),
		Categories:  make(map[menu.Category]menu.CategoryInfo, len(f.Categories)),
		Contexts:    make(map[string]menu.ModeContext, len(f.Contexts)),
	}
	for key, mode := range f.Modes {
		cfg.Modes[key] = menu.ModeInfo{Label: mode.Label, Description: mode.Description}
	}
	for key, cat := range f.Categories {
		mapped, ok := fileCategories[key]
		if !ok {
			return menu.Config{}, fmt.Errorf("unknown category %q", key)
		}
		options := make(map[string]menu.OptionInfo, len(cat.Options))
		for optKey, opt := range cat.Options {
			options[optKey] = menu.OptionInfo{Label: opt.Label, Icon: opt.Icon}
		}
		cfg.Categories[mapped] = menu.CategoryInfo{
			Label:   cat.Label,
			Options: options,
			Default: cat.Default,
		}
	}
	for mode, ctx := range f.Contexts {
		converted := menu.ModeContext{
			Defaults:     make(map[menu.Category]string, len(ctx.Defaults)),
			Availability: make(map[menu.Category]menu.Availability, len(ctx.Availability)),
		}
		for key, def := range ctx.Defaults {
			mapped, ok := fileCategories[key]
			if !ok {
				return menu.Config{}, fmt.Errorf("mode %s: unknown default category %q", mode, key)
			}
			converted.Defaults[mapped] = def
		}
		for key, avail := range ctx.Availability {
			mapped, ok := fileCategories[key]
			if !ok {
				return menu.Config{}, fmt.Errorf("mode %s: unknown availability category %q", mode, key)
			}
			converted.Availability[mapped] = menu.Availability{
				Enabled: avail.Enabled,
				Allowed: append([]string(nil), avail.Allowed...),
			}
		}
		cfg.Contexts[mode] = converted
	}
	return cfg, nil
}
