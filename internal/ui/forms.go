package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleCollectionForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.collectionForm == nil {
		return false, nil
	}
	cmd, done, cancel := m.collectionForm.Update(msg)
	if cancel {
		m.collectionForm = nil
		m.mode = ModeMenu
		return true, cmd
	}
	if done {
		pendingLabel := m.collectionForm.PendingLabel()
		m.collectionForm = nil
		m.mode = ModeMenu
		m.loading = true
		m.pendingID = "collections:new"
		m.pendingLabel = pendingLabel
		return true, cmd
	}
	if cmd != nil {
		return true, cmd
	}
	return true, nil
}

func (m *Model) viewCollectionFormWithHeader(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, header)
	}
	lines = append(lines, m.collectionForm.Title(), "", m.collectionForm.InputView())
	if err := m.collectionForm.Error(); err != "" {
		lines = append(lines, "", styles.Error.Render(err))
	}
	lines = append(lines, "", m.collectionForm.Help())
	return strings.Join(lines, "\n")
}
