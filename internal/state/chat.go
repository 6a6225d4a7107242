// Package state holds the client-side snapshots of backend data that the UI
// and menu loaders read. Stores return defensive copies so callers can hold
// slices across updates.
package state

import "time"

// ChatEntry is one rendered turn of the transcript.
type ChatEntry struct {
	ID        string
	Role      string // "user" or "assistant"
	Content   string
	CreatedAt time.Time
	Pending   bool // true while the backend reply is outstanding
}

// ChatStore tracks the active conversation.
type ChatStore interface {
	ChatID() string
	SetChatID(string)
	Messages() []ChatEntry
	Append(ChatEntry)
	ResolvePending(id, content string, at time.Time)
	FailPending(id string)
	Clear()
}

type chatStore struct {
	chatID   string
	messages []ChatEntry
}

// NewChatStore returns an empty conversation store.
func NewChatStore() ChatStore {
	return &chatStore{}
}

func (s *chatStore) ChatID() string      { return s.chatID }
func (s *chatStore) SetChatID(id string) { s.chatID = id }

func (s *chatStore) Messages() []ChatEntry {
	return cloneChatEntries(s.messages)
}

func (s *chatStore) Append(entry ChatEntry) {
	s.messages = append(s.messages, entry)
}

// ResolvePending fills in the placeholder entry created when a request was
// sent. Unknown IDs are ignored; the reply may race a Clear.
func (s *chatStore) ResolvePending(id, content string, at time.Time) {
	for i := range s.messages {
		if s.messages[i].ID == id && s.messages[i].Pending {
			s.messages[i].Content = content
			s.messages[i].CreatedAt = at
			s.messages[i].Pending = false
			return
		}
	}
}

// FailPending drops a placeholder whose request errored.
func (s *chatStore) FailPending(id string) {
	for i := range s.messages {
		if s.messages[i].ID == id && s.messages[i].Pending {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return
		}
	}
}

func (s *chatStore) Clear() {
	s.chatID = ""
	s.messages = nil
}

func cloneChatEntries(entries []ChatEntry) []ChatEntry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]ChatEntry, len(entries))
	copy(dup, entries)
	return dup
}
