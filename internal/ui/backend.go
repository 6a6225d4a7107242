package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodio/moodio-agent/internal/backend"
	"github.com/moodio/moodio-agent/internal/logging"
	"github.com/moodio/moodio-agent/internal/logging/events"
	"github.com/moodio/moodio-agent/internal/menu"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		events.Backend.Error(kindName(evt.Kind), evt.Err)
		return
	}

	res := m.dispatch.Handle(evt)
	ctx := m.menuContext()
	events.Backend.Snapshot(kindName(evt.Kind), snapshotSize(evt.Kind, ctx))

	if res.ImagesUpdated {
		if lvl := m.findLevelByID("pending:images"); lvl != nil {
			m.refreshLevel(lvl, ctx)
		}
	}
	if res.VideosUpdated {
		if lvl := m.findLevelByID("pending:videos"); lvl != nil {
			m.refreshLevel(lvl, ctx)
		}
	}
	if res.AssetsUpdated {
		// Drop attachments for assets that no longer exist.
		known := make(map[string]struct{}, len(ctx.Assets))
		for _, asset := range ctx.Assets {
			known[asset.ID] = struct{}{}
		}
		for id := range m.attached {
			if _, ok := known[id]; !ok {
				delete(m.attached, id)
			}
		}
		if lvl := m.findLevelByID("assets"); lvl != nil {
			m.refreshLevel(lvl, m.menuContext())
		}
	}
	if res.CollectionsUpdated {
		if lvl := m.findLevelByID("collections"); lvl != nil {
			m.refreshLevel(lvl, ctx)
		}
		if m.collectionForm != nil {
			m.collectionForm.SetCollections(ctx.Collections)
		}
	}

	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
}

// refreshLevel reruns a level's loader against fresh store data so an open
// menu reflects the latest snapshot.
func (m *Model) refreshLevel(lvl *level, ctx menu.Context) {
	node := lvl.Node
	if node == nil {
		node, _ = m.registry.Find(lvl.ID)
	}
	if node == nil || node.Loader == nil {
		return
	}
	items, err := node.Loader(ctx)
	if err != nil {
		logging.Error(err)
		return
	}
	lvl.UpdateItems(items)
	if len(lvl.Items) > 0 {
		m.clearInfo()
	}
	m.applyNodeSettings(lvl)
	m.syncViewport(lvl)
}

func kindName(kind backend.Kind) string {
	switch kind {
	case backend.KindImages:
		return "images"
	case backend.KindVideos:
		return "videos"
	case backend.KindAssets:
		return "assets"
	case backend.KindCollections:
		return "collections"
	}
	return "unknown"
}

func snapshotSize(kind backend.Kind, ctx menu.Context) int {
	switch kind {
	case backend.KindImages:
		return len(ctx.Decks)
	case backend.KindVideos:
		return len(ctx.Videos)
	case backend.KindAssets:
		return len(ctx.Assets)
	case backend.KindCollections:
		return len(ctx.Collections)
	}
	return 0
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}
