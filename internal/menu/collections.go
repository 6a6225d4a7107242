package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodio/moodio-agent/internal/api"
	"github.com/moodio/moodio-agent/internal/format/table"
)

func loadCollectionsMenu(ctx Context) ([]Item, error) {
	items := []Item{{ID: "new", Label: "[ new collection ]"}}
	if len(ctx.Collections) == 0 {
		return items, nil
	}
	rows := make([][]string, 0, len(ctx.Collections))
	ids := make([]string, 0, len(ctx.Collections))
	for _, coll := range ctx.Collections {
		rows = append(rows, []string{coll.Name, fmt.Sprintf("%d assets", coll.AssetCount)})
		ids = append(ids, coll.ID)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})
	for i, label := range aligned {
		items = append(items, Item{ID: ids[i], Label: label})
	}
	return items, nil
}

func CollectionAction(ctx Context, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	if target == "new" {
		return CollectionNewAction(ctx, item)
	}
	return func() tea.Msg {
		for _, coll := range ctx.Collections {
			if coll.ID != target {
				continue
			}
			return ActionResult{Info: fmt.Sprintf("%s holds %d assets", coll.Name, coll.AssetCount)}
		}
		return ActionResult{Err: fmt.Errorf("unknown collection %q", target)}
	}
}

func CollectionNewAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		return CollectionPrompt{Context: ctx}
	}
}

// CollectionCreateCommand performs the backend call for a submitted name.
func CollectionCreateCommand(ctx Context, name string) tea.Cmd {
	return func() tea.Msg {
		if ctx.Client == nil {
			return ActionResult{Err: fmt.Errorf("backend client not configured")}
		}
		coll, err := ctx.Client.CreateCollection(context.Background(), name)
		if err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: fmt.Sprintf("Created collection %s", coll.Name)}
	}
}

// CollectionForm gathers a name for a new collection.
type CollectionForm struct {
	input    textinput.Model
	existing map[string]struct{}
	ctx      Context
	err      string
}

func NewCollectionForm(prompt CollectionPrompt) *CollectionForm {
	ti := textinput.New()
	ti.Placeholder = "collection-name"
	ti.CharLimit = 64
	ti.Focus()
	if prompt.Initial != "" {
		ti.SetValue(prompt.Initial)
	}
	form := &CollectionForm{
		input:    ti,
		existing: map[string]struct{}{},
		ctx:      prompt.Context,
	}
	form.SetCollections(prompt.Context.Collections)
	form.err = form.validate()
	return form
}

func (f *CollectionForm) Context() Context  { return f.ctx }
func (f *CollectionForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *CollectionForm) InputView() string { return f.input.View() }
func (f *CollectionForm) Error() string     { return f.err }
func (f *CollectionForm) Title() string     { return "Create Collection" }
func (f *CollectionForm) Help() string      { return "Press Enter to create. Esc to cancel." }

func (f *CollectionForm) PendingLabel() string {
	if name := f.Value(); name != "" {
		return name
	}
	return "collections:new"
}

// Update feeds a message to the form. It returns a command to run, whether
// the form submitted, and whether it was cancelled.
func (f *CollectionForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
				f.err = f.validate()
			}
			return nil, false, false
		}
		switch m.Type {
		case tea.KeyEsc:
			return nil, false, true
		case tea.KeyEnter:
			value := f.Value()
			if err := f.validateName(value); err != "" {
				f.err = err
				return nil, false, false
			}
			f.err = ""
			return CollectionCreateCommand(f.ctx, value), true, false
		}
	}

	updated, cmd := f.input.Update(msg)
	f.input = updated
	f.err = f.validate()
	return cmd, false, false
}

func (f *CollectionForm) SetCollections(collections []api.Collection) {
	f.existing = make(map[string]struct{}, len(collections))
	for _, coll := range collections {
		trim := strings.ToLower(strings.TrimSpace(coll.Name))
		if trim == "" {
			continue
		}
		f.existing[trim] = struct{}{}
	}
	f.err = f.validate()
}

func (f *CollectionForm) validate() string {
	return f.validateName(f.Value())
}

func (f *CollectionForm) validateName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "Collection name required"
	}
	if _, exists := f.existing[strings.ToLower(trimmed)]; exists {
		return "Collection already exists"
	}
	return ""
}
