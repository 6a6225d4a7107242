package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodio/moodio-agent/internal/api"
	"github.com/moodio/moodio-agent/internal/backend"
	"github.com/moodio/moodio-agent/internal/data/dispatcher"
	"github.com/moodio/moodio-agent/internal/draft"
	"github.com/moodio/moodio-agent/internal/menu"
	"github.com/moodio/moodio-agent/internal/state"
	"github.com/moodio/moodio-agent/internal/theme"
	"github.com/moodio/moodio-agent/internal/ui/command"
	uistate "github.com/moodio/moodio-agent/internal/ui/state"
)

type level = uistate.Level

type Mode int

const (
	ModeMenu Mode = iota
	ModeCompose
	ModeCollectionForm
)

const (
	menuHeaderSeparator = "→"
	defaultRootTitle    = "moodio"
)

var styles = theme.Default()

var headerSegmentCleaner = strings.NewReplacer("_", " ", "-", " ")

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// Model implements the Bubble Tea model for the chat and menu screens.
type Model struct {
	stack             []*level
	loading           bool
	pendingID         string
	pendingLabel      string
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	backend           *backend.Watcher
	backendState      map[backend.Kind]error
	backendLastErr    string
	showFooter        bool
	verbose           bool
	collectionForm    *menu.CollectionForm
	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	registry   *menu.Registry
	bus        *command.Bus
	mode       Mode
	rootTitle  string
	client     *api.Client
	menuCfg    menu.Config
	menuState  menu.State
	attached   map[string]bool
	composer   textarea.Model
	composing  bool
	drafts     *draft.Store
	draftID    string
	chat       state.ChatStore
	images     state.ImageStore
	videos     state.VideoStore
	assets     state.AssetStore
	collection state.CollectionStore
	dispatch   *dispatcher.Dispatcher
	markdown   *markdownRenderer
	reloadMenu func() (menu.Config, error)
}

// Options configures a Model beyond the required collaborators.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Drafts     *draft.Store
	ReloadMenu func() (menu.Config, error)
}

// NewModel initialises the UI state with the root menu and configuration.
func NewModel(client *api.Client, menuCfg menu.Config, watcher *backend.Watcher, opts Options) *Model {
	registry := menu.BuildRegistry()
	chat := state.NewChatStore()
	images := state.NewImageStore()
	videos := state.NewVideoStore()
	assets := state.NewAssetStore()
	collections := state.NewCollectionStore()
	root := newLevel("root", "Main Menu", menu.RootItems(), registry.Root())

	composer := textarea.New()
	composer.Placeholder = "Describe what you want…"
	composer.CharLimit = 4000
	composer.ShowLineNumbers = false

	m := &Model{
		stack:        []*level{root},
		registry:     registry,
		bus:          command.New(),
		backend:      watcher,
		backendState: map[backend.Kind]error{},
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		mode:         ModeMenu,
		rootTitle:    defaultRootTitle,
		client:       client,
		menuCfg:      menuCfg,
		menuState:    menu.Resolve(menuCfg, menu.InitialState(menuCfg), ""),
		attached:     map[string]bool{},
		composer:     composer,
		drafts:       opts.Drafts,
		chat:         chat,
		images:       images,
		videos:       videos,
		assets:       assets,
		collection:   collections,
		dispatch:     dispatcher.New(images, videos, assets, collections),
		markdown:     newMarkdownRenderer(),
		reloadMenu:   opts.ReloadMenu,
	}
	m.applyNodeSettings(root)
	m.syncViewport(root)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActiveInput(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveInput(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModeCompose:
		return m.handleComposer(msg)
	case ModeCollectionForm:
		return m.handleCollectionForm(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):            m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):     m.handleWindowSizeMsg,
		reflect.TypeOf(categoryLoadedMsg{}):     m.handleCategoryLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}):     m.handleActionResultMsg,
		reflect.TypeOf(menu.ModeSelected{}):     m.handleModeSelectedMsg,
		reflect.TypeOf(menu.OptionSelected{}):   m.handleOptionSelectedMsg,
		reflect.TypeOf(menu.ComposeRequested{}): m.handleComposeRequestedMsg,
		reflect.TypeOf(menu.AssetToggled{}):     m.handleAssetToggledMsg,
		reflect.TypeOf(menu.DraftPicked{}):      m.handleDraftPickedMsg,
		reflect.TypeOf(menu.ChatStarted{}):      m.handleChatStartedMsg,
		reflect.TypeOf(menu.ChatCleared{}):      m.handleChatClearedMsg,
		reflect.TypeOf(menu.CollectionPrompt{}): m.handleCollectionPromptMsg,
		reflect.TypeOf(chatReplyMsg{}):          m.handleChatReplyMsg,
		reflect.TypeOf(generationQueuedMsg{}):   m.handleGenerationQueuedMsg,
		reflect.TypeOf(draftSavedMsg{}):         m.handleDraftSavedMsg,
		reflect.TypeOf(menuConfigReloadMsg{}):   m.handleMenuConfigReloadMsg,
		reflect.TypeOf(backendEventMsg{}):       m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):        m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		// Batching a lone command would wrap it in a tea.BatchMsg;
		// hand it back bare so callers see the command itself.
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// MenuState exposes the resolved menu selections.
func (m *Model) MenuState() menu.State {
	return m.menuState
}
