package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodio/moodio-agent/internal/logging"
	"github.com/moodio/moodio-agent/internal/logging/events"
	"github.com/moodio/moodio-agent/internal/menu"
)

// MenuConfigReloadMsg carries a freshly loaded mode table. The running
// program receives one whenever the menu config file changes on disk.
type MenuConfigReloadMsg struct {
	Config menu.Config
	Err    error
}

type menuConfigReloadMsg = MenuConfigReloadMsg

func (m *Model) handleModeSelectedMsg(msg tea.Msg) tea.Cmd {
	selected, ok := msg.(menu.ModeSelected)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	m.applyMenuState(menu.Resolve(m.menuCfg, m.menuState, selected.Mode))
	m.popToRoot()
	label := m.menuCfg.Modes[m.menuState.Mode].Label
	if label == "" {
		label = m.menuState.Mode
	}
	m.setInfo(fmt.Sprintf("Switched to %s mode", label))
	return nil
}

func (m *Model) handleOptionSelectedMsg(msg tea.Msg) tea.Cmd {
	selected, ok := msg.(menu.OptionSelected)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	next := m.menuState
	next.SetValue(selected.Category, selected.Option)
	// Refresh keeps the explicit pick when the mode allows it and falls
	// back to defaults otherwise, so a stale picker cannot plant an
	// out-of-range value.
	m.applyMenuState(menu.Resolve(m.menuCfg, next, ""))
	m.popToRoot()
	kept := m.menuState.Value(selected.Category)
	if kept == selected.Option {
		m.setInfo(fmt.Sprintf("Set %s to %s", selected.Category, m.optionLabel(selected.Category, kept)))
	} else {
		m.errMsg = fmt.Sprintf("%s %q is not available in %s mode", selected.Category, selected.Option, m.menuState.Mode)
	}
	return nil
}

func (m *Model) handleMenuConfigReloadMsg(msg tea.Msg) tea.Cmd {
	reload, ok := msg.(MenuConfigReloadMsg)
	if !ok {
		return nil
	}
	if reload.Err != nil {
		logging.Error(reload.Err)
		m.errMsg = fmt.Sprintf("Menu config reload failed: %v", reload.Err)
		return nil
	}
	m.menuCfg = reload.Config
	// A same-mode refresh: selections still allowed under the new tables
	// survive, the rest fall back to defaults.
	m.applyMenuState(menu.Resolve(m.menuCfg, m.menuState, ""))
	if lvl := m.currentLevel(); lvl != nil {
		m.refreshLevel(lvl, m.menuContext())
	}
	m.setInfo("Menu configuration reloaded")
	return nil
}

func (m *Model) applyMenuState(next menu.State) {
	m.menuState = next
	events.Menu.Resolve(next.Mode, map[string]string{
		string(menu.CategoryModel):       next.Model,
		string(menu.CategoryExpertise):   next.Expertise,
		string(menu.CategoryAspectRatio): next.AspectRatio,
	})
}

func (m *Model) optionLabel(category menu.Category, id string) string {
	if info, ok := m.menuCfg.Categories[category]; ok {
		if opt, ok := info.Options[id]; ok && opt.Label != "" {
			return opt.Label
		}
	}
	return id
}

func (m *Model) handleAssetToggledMsg(msg tea.Msg) tea.Cmd {
	toggled, ok := msg.(menu.AssetToggled)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	// Multi-select joins the chosen IDs with newlines.
	attachedCount, detachedCount := 0, 0
	for _, id := range strings.Split(toggled.ID, "\n") {
		if id == "" {
			continue
		}
		if m.attached[id] {
			delete(m.attached, id)
			detachedCount++
		} else {
			m.attached[id] = true
			attachedCount++
		}
	}
	switch {
	case attachedCount > 0 && detachedCount > 0:
		m.setInfo(fmt.Sprintf("Attached %d, detached %d assets", attachedCount, detachedCount))
	case attachedCount > 1:
		m.setInfo(fmt.Sprintf("Attached %d assets", attachedCount))
	case attachedCount == 1:
		m.setInfo("Attached asset")
	case detachedCount > 1:
		m.setInfo(fmt.Sprintf("Detached %d assets", detachedCount))
	case detachedCount == 1:
		m.setInfo("Detached asset")
	}
	if lvl := m.findLevelByID("assets"); lvl != nil {
		m.refreshLevel(lvl, m.menuContext())
	}
	return nil
}

func (m *Model) handleChatStartedMsg(msg tea.Msg) tea.Cmd {
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	m.chat.Clear()
	m.chat.SetChatID("")
	m.draftID = ""
	m.popToRoot()
	m.setInfo("Started a new conversation")
	return nil
}

func (m *Model) handleChatClearedMsg(msg tea.Msg) tea.Cmd {
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	events.Chat.Clear(m.chat.ChatID())
	m.chat.Clear()
	m.popToRoot()
	m.setInfo("Cleared transcript")
	return nil
}

func (m *Model) handleCollectionPromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.CollectionPrompt)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	prompt.Context = m.menuContext()
	m.collectionForm = menu.NewCollectionForm(prompt)
	m.mode = ModeCollectionForm
	return nil
}
