package menu

import (
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodio/moodio-agent/internal/api"
	"github.com/moodio/moodio-agent/internal/deck"
)

// Item represents a selectable menu entry.
type Item struct {
	ID    string
	Label string
}

// Level describes a breadcrumb component for display purposes.
type Level struct {
	ID    string
	Title string
	Items []Item
}

// Context carries runtime data needed by loader functions.
type Context struct {
	Client      *api.Client
	Config      Config
	Menu        State
	Decks       []deck.Deck
	Videos      []api.PendingVideo
	Assets      []api.Asset
	Collections []api.Collection
	Drafts      []DraftEntry
	Attached    map[string]bool
}

// DraftEntry summarises a saved composer draft for menu loaders.
type DraftEntry struct {
	ID        string
	Prompt    string
	Mode      string
	UpdatedAt time.Time
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info string
	Err  error
}

// ModeSelected reports a mode switch chosen from the mode picker.
type ModeSelected struct {
	Mode string
}

// OptionSelected reports a category option chosen from a picker.
type OptionSelected struct {
	Category Category
	Option   string
}

// ComposeRequested asks the UI to open the prompt composer.
type ComposeRequested struct{}

// AssetToggled flips an asset's attachment to the next generation request.
type AssetToggled struct {
	ID string
}

// DraftPicked asks the UI to restore the named composer draft.
type DraftPicked struct {
	ID string
}

// ChatCleared asks the UI to wipe the current transcript.
type ChatCleared struct{}

// ChatStarted asks the UI to begin a fresh conversation.
type ChatStarted struct{}

// CollectionPrompt requests interactive input for creating a collection.
type CollectionPrompt struct {
	Context Context
	Initial string
}

// RootItems returns the top-level menu entries.
func RootItems() []Item {
	return []Item{
		{ID: "compose", Label: "compose"},
		{ID: "mode", Label: "mode"},
		{ID: "model", Label: "model"},
		{ID: "expertise", Label: "expertise"},
		{ID: "aspect-ratio", Label: "aspect ratio"},
		{ID: "pending", Label: "pending"},
		{ID: "assets", Label: "assets"},
		{ID: "collections", Label: "collections"},
		{ID: "drafts", Label: "drafts"},
		{ID: "chat", Label: "chat"},
	}
}

// CategoryLoaders lists submenu loaders keyed by root item ID.
func CategoryLoaders() map[string]Loader {
	return map[string]Loader{
		"mode":         loadModeMenu,
		"model":        loadModelMenu,
		"expertise":    loadExpertiseMenu,
		"aspect-ratio": loadAspectRatioMenu,
		"pending":      loadPendingMenu,
		"assets":       loadAssetsMenu,
		"collections":  loadCollectionsMenu,
		"drafts":       loadDraftsMenu,
		"chat":         loadChatMenu,
	}
}

// ActionHandlers maps submenu identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		"compose":         ComposeAction,
		"mode":            ModePickAction,
		"model":           ModelPickAction,
		"expertise":       ExpertisePickAction,
		"aspect-ratio":    AspectRatioPickAction,
		"pending:images":  PendingImageAction,
		"pending:videos":  PendingVideoAction,
		"assets":          AssetToggleAction,
		"collections":     CollectionAction,
		"collections:new": CollectionNewAction,
		"drafts":          DraftRestoreAction,
		"chat:new":        ChatNewAction,
		"chat:clear":      ChatClearAction,
	}
}

// ActionLoaders enumerates loaders for nested submenu actions.
func ActionLoaders() map[string]Loader {
	return map[string]Loader{
		"pending:images": loadPendingImagesMenu,
		"pending:videos": loadPendingVideosMenu,
	}
}

func menuItemsFromIDs(ids []string) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{ID: id, Label: prettyLabel(id)})
	}
	return items
}

func prettyLabel(id string) string {
	if id == "" {
		return id
	}
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
