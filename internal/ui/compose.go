package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/moodio/moodio-agent/internal/api"
	"github.com/moodio/moodio-agent/internal/draft"
	"github.com/moodio/moodio-agent/internal/logging"
	"github.com/moodio/moodio-agent/internal/logging/events"
	"github.com/moodio/moodio-agent/internal/menu"
	"github.com/moodio/moodio-agent/internal/state"
)

// chatReplyMsg carries the backend's answer to a chat turn.
type chatReplyMsg struct {
	placeholderID string
	chatID        string
	content       string
	err           error
}

// generationQueuedMsg reports an accepted image or video generation.
type generationQueuedMsg struct {
	kind string // "image" or "video"
	id   string
	err  error
}

func (m *Model) handleComposeRequestedMsg(msg tea.Msg) tea.Cmd {
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	return m.openComposer("")
}

func (m *Model) handleDraftPickedMsg(msg tea.Msg) tea.Cmd {
	picked, ok := msg.(menu.DraftPicked)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if m.drafts == nil {
		m.errMsg = "Draft storage is not configured"
		return nil
	}
	d, err := m.drafts.Load(picked.ID)
	if err != nil {
		logging.Error(err)
		m.errMsg = fmt.Sprintf("Draft restore failed: %v", err)
		return nil
	}
	events.Draft.Restore(d.ID, d.ChatID)
	m.draftID = d.ID
	if d.ChatID != "" {
		m.chat.SetChatID(d.ChatID)
	}
	m.attached = map[string]bool{}
	for _, id := range d.AssetIDs {
		m.attached[id] = true
	}
	// Saved selections pass through a refresh so stale options degrade to
	// the current tables' defaults.
	m.applyMenuState(menu.Resolve(m.menuCfg, d.Menu, ""))
	return m.openComposer(d.Prompt)
}

func (m *Model) openComposer(initial string) tea.Cmd {
	m.mode = ModeCompose
	m.composing = true
	m.errMsg = ""
	m.forceClearInfo()
	m.composer.SetValue(initial)
	m.composer.CursorEnd()
	return m.composer.Focus()
}

func (m *Model) closeComposer() {
	m.mode = ModeMenu
	m.composing = false
	m.composer.Blur()
	m.composer.SetValue("")
}

func (m *Model) handleComposer(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch keyMsg.String() {
		case "esc":
			cmd := m.saveDraftCmd()
			m.closeComposer()
			if cmd != nil {
				m.setInfo("Draft saved")
			}
			return true, cmd
		case "ctrl+c":
			return true, tea.Quit
		case "ctrl+s":
			if cmd := m.saveDraftCmd(); cmd != nil {
				m.setInfo("Draft saved")
				return true, cmd
			}
			return true, nil
		case "enter":
			return true, m.submitComposer()
		}
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return true, cmd
}

func (m *Model) submitComposer() tea.Cmd {
	prompt := strings.TrimSpace(m.composer.Value())
	if prompt == "" {
		m.errMsg = "Nothing to send"
		return nil
	}
	m.errMsg = ""
	st := m.menuState
	deleteCmd := m.deleteDraftCmd()
	m.closeComposer()

	var cmd tea.Cmd
	switch st.Mode {
	case "chat":
		cmd = m.sendChatCmd(prompt, st)
	case "create", "edit":
		cmd = m.generateImageCmd(prompt, st)
	case "video":
		cmd = m.generateVideoCmd(prompt, st)
	default:
		cmd = m.sendChatCmd(prompt, st)
	}
	if deleteCmd != nil {
		return tea.Batch(cmd, deleteCmd)
	}
	return cmd
}

func (m *Model) sendChatCmd(prompt string, st menu.State) tea.Cmd {
	chatID := m.chat.ChatID()
	now := time.Now()
	m.chat.Append(state.ChatEntry{
		ID:        uuid.NewString(),
		Role:      "user",
		Content:   prompt,
		CreatedAt: now,
	})
	placeholder := uuid.NewString()
	m.chat.Append(state.ChatEntry{
		ID:        placeholder,
		Role:      "assistant",
		CreatedAt: now,
		Pending:   true,
	})
	history := m.chat.Messages()
	messages := make([]api.ChatMessage, 0, len(history))
	for _, entry := range history {
		if entry.Pending {
			continue
		}
		messages = append(messages, api.ChatMessage{Role: entry.Role, Content: entry.Content})
	}
	client := m.client
	events.Chat.Send(chatID, len(prompt))
	return func() tea.Msg {
		resp, err := client.SendChat(context.Background(), api.ChatRequest{
			ChatID:    chatID,
			Messages:  messages,
			Model:     st.Model,
			Expertise: st.Expertise,
		})
		if err != nil {
			return chatReplyMsg{placeholderID: placeholder, err: err}
		}
		return chatReplyMsg{
			placeholderID: placeholder,
			chatID:        resp.ChatID,
			content:       resp.Message.Content,
		}
	}
}

func (m *Model) generateImageCmd(prompt string, st menu.State) tea.Cmd {
	req := api.GenerationRequest{
		ChatID:      m.chat.ChatID(),
		Prompt:      prompt,
		Model:       st.Model,
		Expertise:   st.Expertise,
		AspectRatio: st.AspectRatio,
		AssetIDs:    m.attachedIDs(),
	}
	client := m.client
	events.Generation.Image(req.ChatID, req.Model, req.AspectRatio)
	return func() tea.Msg {
		gen, err := client.GenerateImage(context.Background(), req)
		if err != nil {
			return generationQueuedMsg{kind: "image", err: err}
		}
		return generationQueuedMsg{kind: "image", id: gen.ID}
	}
}

func (m *Model) generateVideoCmd(prompt string, st menu.State) tea.Cmd {
	req := api.GenerationRequest{
		ChatID:    m.chat.ChatID(),
		Prompt:    prompt,
		Model:     st.Model,
		Expertise: st.Expertise,
		AssetIDs:  m.attachedIDs(),
	}
	client := m.client
	events.Generation.Video(req.ChatID, req.Model)
	return func() tea.Msg {
		gen, err := client.GenerateVideo(context.Background(), req)
		if err != nil {
			return generationQueuedMsg{kind: "video", err: err}
		}
		return generationQueuedMsg{kind: "video", id: gen.ID}
	}
}

func (m *Model) handleChatReplyMsg(msg tea.Msg) tea.Cmd {
	reply, ok := msg.(chatReplyMsg)
	if !ok {
		return nil
	}
	if reply.err != nil {
		m.chat.FailPending(reply.placeholderID)
		m.errMsg = reply.err.Error()
		events.Chat.Error(m.chat.ChatID(), reply.err)
		return nil
	}
	if reply.chatID != "" {
		m.chat.SetChatID(reply.chatID)
	}
	m.chat.ResolvePending(reply.placeholderID, reply.content, time.Now())
	events.Chat.Reply(reply.chatID, reply.placeholderID)
	return nil
}

func (m *Model) handleGenerationQueuedMsg(msg tea.Msg) tea.Cmd {
	queued, ok := msg.(generationQueuedMsg)
	if !ok {
		return nil
	}
	if queued.err != nil {
		m.errMsg = queued.err.Error()
		events.Generation.Error(queued.kind, queued.err)
		return nil
	}
	events.Generation.Accepted(queued.id, queued.kind)
	m.attached = map[string]bool{}
	m.setInfo(fmt.Sprintf("Queued %s generation %s", queued.kind, queued.id))
	return nil
}

// saveDraftCmd snapshots the composer. Returns nil when there is nothing
// worth saving.
func (m *Model) saveDraftCmd() tea.Cmd {
	if m.drafts == nil {
		return nil
	}
	prompt := strings.TrimSpace(m.composer.Value())
	if prompt == "" {
		return nil
	}
	d := draft.Draft{
		ID:       m.draftID,
		ChatID:   m.chat.ChatID(),
		Prompt:   prompt,
		Menu:     m.menuState,
		AssetIDs: m.attachedIDs(),
	}
	store := m.drafts
	return func() tea.Msg {
		saved, err := store.Save(d)
		if err != nil {
			return menu.ActionResult{Err: fmt.Errorf("draft save failed: %w", err)}
		}
		events.Draft.Save(saved.ID, saved.ChatID)
		return draftSavedMsg{id: saved.ID}
	}
}

func (m *Model) deleteDraftCmd() tea.Cmd {
	if m.drafts == nil || m.draftID == "" {
		return nil
	}
	id := m.draftID
	m.draftID = ""
	store := m.drafts
	return func() tea.Msg {
		if err := store.Delete(id); err != nil {
			logging.Error(err)
		}
		events.Draft.Delete(id)
		return nil
	}
}

type draftSavedMsg struct {
	id string
}

func (m *Model) handleDraftSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(draftSavedMsg)
	if !ok {
		return nil
	}
	m.draftID = saved.id
	return nil
}
