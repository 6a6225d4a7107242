package menu

import (
	"strings"
	"testing"
)

func pickerContext() Context {
	cfg := DefaultConfig()
	return Context{
		Config: cfg,
		Menu:   Resolve(cfg, InitialState(cfg), ""),
	}
}

func TestLoadModeMenuMarksCurrent(t *testing.T) {
	ctx := pickerContext()
	items, err := loadModeMenu(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != len(ctx.Config.Modes) {
		t.Fatalf("expected %d modes, got %d", len(ctx.Config.Modes), len(items))
	}
	found := false
	for _, item := range items {
		if item.ID == ctx.Menu.Mode {
			found = true
			if !strings.HasPrefix(item.Label, "[ current ]") {
				t.Fatalf("current mode not marked: %q", item.Label)
			}
		} else if strings.HasPrefix(item.Label, "[ current ]") {
			t.Fatalf("non-current mode marked: %q", item.Label)
		}
	}
	if !found {
		t.Fatalf("current mode %q missing from items", ctx.Menu.Mode)
	}
}

func TestCategoryItemsFollowAllowList(t *testing.T) {
	ctx := pickerContext()
	items, err := loadModelMenu(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	allowed := ctx.Config.Contexts[ctx.Menu.Mode].Availability[CategoryModel].Allowed
	if len(items) != len(allowed) {
		t.Fatalf("expected %d items, got %d", len(allowed), len(items))
	}
	for i, id := range allowed {
		if items[i].ID != id {
			t.Fatalf("allow-list order broken at %d: got %s want %s", i, items[i].ID, id)
		}
	}
}

func TestCategoryItemsDisabledCategoryErrors(t *testing.T) {
	ctx := pickerContext()
	ctx.Menu = Resolve(ctx.Config, ctx.Menu, "edit")
	if _, err := loadAspectRatioMenu(ctx); err == nil {
		t.Fatalf("expected error for disabled category")
	}
}

func TestModePickActionEmitsModeSelected(t *testing.T) {
	ctx := pickerContext()
	cmd := ModePickAction(ctx, Item{ID: "video", Label: "video"})
	if cmd == nil {
		t.Fatalf("expected command")
	}
	msg := cmd()
	selected, ok := msg.(ModeSelected)
	if !ok {
		t.Fatalf("expected ModeSelected, got %T", msg)
	}
	if selected.Mode != "video" {
		t.Fatalf("expected video, got %q", selected.Mode)
	}
}

func TestOptionPickActionEmitsOptionSelected(t *testing.T) {
	cmd := ModelPickAction(Context{}, Item{ID: "ultra", Label: "ultra"})
	msg := cmd()
	selected, ok := msg.(OptionSelected)
	if !ok {
		t.Fatalf("expected OptionSelected, got %T", msg)
	}
	if selected.Category != CategoryModel || selected.Option != "ultra" {
		t.Fatalf("unexpected selection: %+v", selected)
	}
}

func TestOptionPickActionRejectsEmptyID(t *testing.T) {
	cmd := ExpertisePickAction(Context{}, Item{ID: "  "})
	msg := cmd()
	result, ok := msg.(ActionResult)
	if !ok {
		t.Fatalf("expected ActionResult, got %T", msg)
	}
	if result.Err == nil {
		t.Fatalf("expected error for blank selection")
	}
}

func TestComposeActionEmitsComposeRequested(t *testing.T) {
	cmd := ComposeAction(Context{}, Item{ID: "compose"})
	if _, ok := cmd().(ComposeRequested); !ok {
		t.Fatalf("expected ComposeRequested")
	}
}
