package ui

import (
	"github.com/moodio/moodio-agent/internal/logging"
	"github.com/moodio/moodio-agent/internal/logging/events"
	"github.com/moodio/moodio-agent/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}

func (m *Model) loadMenuCmd(id, title string, loader menu.Loader) tea.Cmd {
	ctx := m.menuContext()
	return func() tea.Msg {
		items, err := loader(ctx)
		if err != nil {
			logging.Error(err)
		}
		return categoryLoadedMsg{id: id, title: title, items: items, err: err}
	}
}

// categoryLoadedMsg mirrors the async loader response.
type categoryLoadedMsg struct {
	id    string
	title string
	items []menu.Item
	err   error
}

func (m *Model) menuContext() menu.Context {
	ctx := menu.Context{
		Client:      m.client,
		Config:      m.menuCfg,
		Menu:        m.menuState,
		Decks:       m.images.Decks(),
		Videos:      m.videos.Videos(),
		Assets:      m.assets.Assets(),
		Collections: m.collection.Collections(),
		Attached:    m.attachedCopy(),
	}
	if m.drafts != nil {
		saved, err := m.drafts.List()
		if err != nil {
			logging.Error(err)
		}
		entries := make([]menu.DraftEntry, 0, len(saved))
		for _, d := range saved {
			entries = append(entries, menu.DraftEntry{
				ID:        d.ID,
				Prompt:    d.Prompt,
				Mode:      d.Menu.Mode,
				UpdatedAt: d.UpdatedAt,
			})
		}
		ctx.Drafts = entries
	}
	return ctx
}

func (m *Model) attachedCopy() map[string]bool {
	out := make(map[string]bool, len(m.attached))
	for id, on := range m.attached {
		if on {
			out[id] = true
		}
	}
	return out
}

func (m *Model) attachedIDs() []string {
	ids := make([]string, 0, len(m.attached))
	for _, asset := range m.assets.Assets() {
		if m.attached[asset.ID] {
			ids = append(ids, asset.ID)
		}
	}
	return ids
}
