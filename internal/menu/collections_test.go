package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodio/moodio-agent/internal/api"
)

func TestLoadCollectionsMenuLeadsWithNew(t *testing.T) {
	ctx := Context{
		Collections: []api.Collection{
			{ID: "c1", Name: "portraits", AssetCount: 4},
			{ID: "c2", Name: "landscapes", AssetCount: 12},
		},
	}
	items, err := loadCollectionsMenu(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != "new" {
		t.Fatalf("expected new entry first, got %q", items[0].ID)
	}
	if !strings.Contains(items[1].Label, "4 assets") {
		t.Fatalf("missing asset count: %q", items[1].Label)
	}
}

func TestCollectionActionNewEmitsPrompt(t *testing.T) {
	msg := CollectionAction(Context{}, Item{ID: "new"})()
	if _, ok := msg.(CollectionPrompt); !ok {
		t.Fatalf("expected CollectionPrompt, got %T", msg)
	}
}

func TestCollectionFormValidatesDuplicates(t *testing.T) {
	prompt := CollectionPrompt{Context: Context{
		Collections: []api.Collection{{ID: "c1", Name: "Portraits"}},
	}}
	form := NewCollectionForm(prompt)
	if form.Error() == "" {
		t.Fatalf("empty name should be invalid")
	}

	typeString(form, "portraits")
	if form.Error() != "Collection already exists" {
		t.Fatalf("expected duplicate error, got %q", form.Error())
	}

	cmd, submitted, cancelled := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || submitted || cancelled {
		t.Fatalf("duplicate name should not submit")
	}
}

func TestCollectionFormSubmitsValidName(t *testing.T) {
	form := NewCollectionForm(CollectionPrompt{})
	typeString(form, "fresh")
	if form.Error() != "" {
		t.Fatalf("unexpected validation error: %q", form.Error())
	}
	cmd, submitted, cancelled := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cancelled {
		t.Fatalf("unexpected cancel")
	}
	if !submitted || cmd == nil {
		t.Fatalf("expected submit with command")
	}
}

func TestCollectionFormEscCancels(t *testing.T) {
	form := NewCollectionForm(CollectionPrompt{})
	_, submitted, cancelled := form.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if submitted || !cancelled {
		t.Fatalf("expected cancel")
	}
}

func typeString(form *CollectionForm, text string) {
	for _, r := range text {
		form.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}
