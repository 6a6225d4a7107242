package menu

import (
	"strings"
	"testing"
)

func TestValidateConfigAcceptsBuiltin(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateConfigRejectsMissingDefaultMode(t *testing.T) {
	cfg := twoModeConfig()
	cfg.DefaultMode = "missing"
	err := ValidateConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), "default mode") {
		t.Fatalf("expected default mode error, got %v", err)
	}
}

func TestValidateConfigRejectsEmptyAllowList(t *testing.T) {
	cfg := twoModeConfig()
	ctx := cfg.Contexts["create"]
	ctx.Availability[CategoryModel] = Availability{Enabled: true}
	cfg.Contexts["create"] = ctx
	err := ValidateConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), "empty allow-list") {
		t.Fatalf("expected allow-list error, got %v", err)
	}
}

func TestValidateConfigRejectsUnknownAllowedOption(t *testing.T) {
	cfg := twoModeConfig()
	ctx := cfg.Contexts["create"]
	ctx.Availability[CategoryModel] = Availability{Enabled: true, Allowed: []string{"fast", "turbo"}}
	cfg.Contexts["create"] = ctx
	err := ValidateConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), `unknown option "turbo"`) {
		t.Fatalf("expected unknown option error, got %v", err)
	}
}

func TestValidateConfigRejectsDefaultOutsideAllowList(t *testing.T) {
	cfg := twoModeConfig()
	ctx := cfg.Contexts["edit"]
	ctx.Defaults[CategoryModel] = "fast" // edit only allows quality
	cfg.Contexts["edit"] = ctx
	err := ValidateConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), "not in the allow-list") {
		t.Fatalf("expected default/allow-list error, got %v", err)
	}
}

func TestValidateConfigRejectsBadGlobalDefault(t *testing.T) {
	cfg := twoModeConfig()
	info := cfg.Categories[CategoryModel]
	info.Default = "turbo"
	cfg.Categories[CategoryModel] = info
	err := ValidateConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), "global default") {
		t.Fatalf("expected global default error, got %v", err)
	}
}
