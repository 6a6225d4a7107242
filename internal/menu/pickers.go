package menu

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodio/moodio-agent/internal/logging/events"
)

func loadModeMenu(ctx Context) ([]Item, error) {
	keys := make([]string, 0, len(ctx.Config.Modes))
	for key := range ctx.Config.Modes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	items := make([]Item, 0, len(keys))
	for _, key := range keys {
		label := ctx.Config.Modes[key].Label
		if label == "" {
			label = prettyLabel(key)
		}
		if key == ctx.Menu.Mode {
			label = "[ current ] " + label
		}
		items = append(items, Item{ID: key, Label: label})
	}
	return items, nil
}

func loadModelMenu(ctx Context) ([]Item, error) {
	return categoryItems(ctx, CategoryModel)
}

func loadExpertiseMenu(ctx Context) ([]Item, error) {
	return categoryItems(ctx, CategoryExpertise)
}

func loadAspectRatioMenu(ctx Context) ([]Item, error) {
	return categoryItems(ctx, CategoryAspectRatio)
}

// categoryItems lists the options the current mode allows for a category.
// The allow-list order from the mode table is preserved.
func categoryItems(ctx Context, category Category) ([]Item, error) {
	modeCtx, ok := ctx.Config.Contexts[ctx.Menu.Mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", ctx.Menu.Mode)
	}
	avail := modeCtx.Availability[category]
	if !avail.Enabled {
		name := ctx.Config.Categories[category].Label
		if name == "" {
			name = string(category)
		}
		return nil, fmt.Errorf("%s is not available in %s mode", strings.ToLower(name), ctx.Menu.Mode)
	}
	info := ctx.Config.Categories[category]
	current := ctx.Menu.Value(category)
	items := make([]Item, 0, len(avail.Allowed))
	for _, id := range avail.Allowed {
		label := info.Options[id].Label
		if label == "" {
			label = prettyLabel(id)
		}
		if id == current {
			label = "[ current ] " + label
		}
		items = append(items, Item{ID: id, Label: label})
	}
	return items, nil
}

func ModePickAction(ctx Context, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	if target == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid mode selection")} }
	}
	return func() tea.Msg {
		events.Menu.ModeSwitch(ctx.Menu.Mode, target)
		return ModeSelected{Mode: target}
	}
}

func ModelPickAction(ctx Context, item Item) tea.Cmd {
	return optionPickAction(CategoryModel, item)
}

func ExpertisePickAction(ctx Context, item Item) tea.Cmd {
	return optionPickAction(CategoryExpertise, item)
}

func AspectRatioPickAction(ctx Context, item Item) tea.Cmd {
	return optionPickAction(CategoryAspectRatio, item)
}

func optionPickAction(category Category, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	if target == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid %s selection", category)} }
	}
	return func() tea.Msg {
		events.Menu.Pick(string(category), target)
		return OptionSelected{Category: category, Option: target}
	}
}

func ComposeAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg { return ComposeRequested{} }
}
