package menu

import (
	"fmt"
	"sort"
)

// ModeInfo describes a top-level operating mode for the composer.
type ModeInfo struct {
	Label       string
	Description string
}

// OptionInfo describes a single selectable option within a category.
type OptionInfo struct {
	Label string
	Icon  string
}

// CategoryInfo describes one selector group and its full option table.
// Default is the global fallback applied when a mode defines no default of
// its own.
type CategoryInfo struct {
	Label   string
	Options map[string]OptionInfo
	Default string
}

// Availability states whether a category is offered in a mode and which
// option keys it may take there.
type Availability struct {
	Enabled bool
	Allowed []string
}

// ModeContext carries the per-mode defaults and allow-lists consumed by
// Resolve.
type ModeContext struct {
	Defaults     map[Category]string
	Availability map[Category]Availability
}

// Config is the static configuration table the resolver operates on. It is
// injected rather than read from package state so Resolve stays a pure
// function of its arguments.
type Config struct {
	DefaultMode string
	Modes       map[string]ModeInfo
	Categories  map[Category]CategoryInfo
	Contexts    map[string]ModeContext
}

// DefaultConfig returns the built-in mode tables. A TOML overlay loaded by
// internal/config may replace individual modes at startup or at runtime.
func DefaultConfig() Config {
	return Config{
		DefaultMode: "chat",
		Modes: map[string]ModeInfo{
			"chat":   {Label: "Chat", Description: "talk with the agent"},
			"create": {Label: "Create", Description: "generate new images"},
			"edit":   {Label: "Edit", Description: "rework an existing image"},
			"video":  {Label: "Video", Description: "generate short clips"},
		},
		Categories: map[Category]CategoryInfo{
			CategoryModel: {
				Label:   "Model",
				Default: "fast",
				Options: map[string]OptionInfo{
					"fast":    {Label: "Fast", Icon: "⚡"},
					"quality": {Label: "Quality", Icon: "◆"},
					"ultra":   {Label: "Ultra", Icon: "✦"},
				},
			},
			CategoryExpertise: {
				Label:   "Expertise",
				Default: "beginner",
				Options: map[string]OptionInfo{
					"beginner": {Label: "Beginner"},
					"advanced": {Label: "Advanced"},
					"pro":      {Label: "Pro"},
				},
			},
			CategoryAspectRatio: {
				Label:   "Aspect ratio",
				Default: "1:1",
				Options: map[string]OptionInfo{
					"1:1":  {Label: "Square"},
					"4:3":  {Label: "Classic"},
					"16:9": {Label: "Wide"},
					"9:16": {Label: "Portrait"},
				},
			},
		},
		Contexts: map[string]ModeContext{
			"chat": {
				Defaults: map[Category]string{
					CategoryModel: "fast",
				},
				Availability: map[Category]Availability{
					CategoryModel:       {Enabled: true, Allowed: []string{"fast", "quality"}},
					CategoryExpertise:   {Enabled: false},
					CategoryAspectRatio: {Enabled: false},
				},
			},
			"create": {
				Defaults: map[Category]string{
					CategoryModel:       "quality",
					CategoryExpertise:   "beginner",
					CategoryAspectRatio: "1:1",
				},
				Availability: map[Category]Availability{
					CategoryModel:       {Enabled: true, Allowed: []string{"fast", "quality", "ultra"}},
					CategoryExpertise:   {Enabled: true, Allowed: []string{"beginner", "advanced", "pro"}},
					CategoryAspectRatio: {Enabled: true, Allowed: []string{"1:1", "4:3", "16:9", "9:16"}},
				},
			},
			"edit": {
				Defaults: map[Category]string{
					CategoryModel:     "quality",
					CategoryExpertise: "beginner",
				},
				Availability: map[Category]Availability{
					CategoryModel:       {Enabled: true, Allowed: []string{"quality", "ultra"}},
					CategoryExpertise:   {Enabled: true, Allowed: []string{"beginner", "advanced", "pro"}},
					CategoryAspectRatio: {Enabled: false},
				},
			},
			"video": {
				Defaults: map[Category]string{
					CategoryModel:       "fast",
					CategoryAspectRatio: "16:9",
				},
				Availability: map[Category]Availability{
					CategoryModel:       {Enabled: true, Allowed: []string{"fast", "quality"}},
					CategoryExpertise:   {Enabled: false},
					CategoryAspectRatio: {Enabled: true, Allowed: []string{"16:9", "9:16", "1:1"}},
				},
			},
		},
	}
}

// InitialState returns the resolved state a fresh composer starts from.
func InitialState(cfg Config) State {
	return Resolve(cfg, State{Mode: cfg.DefaultMode}, "")
}

// ValidateConfig checks the static tables for internal consistency so that
// Resolve never has to clamp at runtime: the default mode must be registered,
// every allowed option must exist in its category's option table, and every
// configured default must be allowed wherever its category is enabled.
func ValidateConfig(cfg Config) error {
	if cfg.DefaultMode == "" {
		return fmt.Errorf("default mode is required")
	}
	if _, ok := cfg.Contexts[cfg.DefaultMode]; !ok {
		return fmt.Errorf("default mode %q has no context entry", cfg.DefaultMode)
	}
	for _, cat := range Categories() {
		info, ok := cfg.Categories[cat]
		if !ok {
			return fmt.Errorf("category %s missing from category table", cat)
		}
		if info.Default != "" {
			if _, ok := info.Options[info.Default]; !ok {
				return fmt.Errorf("category %s: global default %q is not an option", cat, info.Default)
			}
		}
	}
	for _, mode := range sortedModeKeys(cfg.Contexts) {
		ctx := cfg.Contexts[mode]
		for _, cat := range Categories() {
			avail := ctx.Availability[cat]
			if !avail.Enabled {
				continue
			}
			if len(avail.Allowed) == 0 {
				return fmt.Errorf("mode %s: category %s is enabled with an empty allow-list", mode, cat)
			}
			options := cfg.Categories[cat].Options
			for _, key := range avail.Allowed {
				if _, ok := options[key]; !ok {
					return fmt.Errorf("mode %s: category %s allows unknown option %q", mode, cat, key)
				}
			}
			if def, ok := ctx.Defaults[cat]; ok && !containsOption(avail.Allowed, def) {
				return fmt.Errorf("mode %s: category %s default %q is not in the allow-list", mode, cat, def)
			}
		}
	}
	return nil
}

func sortedModeKeys(contexts map[string]ModeContext) []string {
	keys := make([]string, 0, len(contexts))
	for k := range contexts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
