// Package draft persists composer drafts between sessions: the prompt text,
// the resolved menu state, and any attached assets. Each draft is a single
// JSON document on disk, mirroring the per-chat drafts the web client keeps
// in browser storage.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/moodio/moodio-agent/internal/menu"
)

// ErrNotFound is returned when no draft exists for the requested ID.
var ErrNotFound = errors.New("draft not found")

// Draft is one saved composer state.
type Draft struct {
	ID        string     `json:"id"`
	ChatID    string     `json:"chat_id,omitempty"`
	Prompt    string     `json:"prompt"`
	Menu      menu.State `json:"menu"`
	AssetIDs  []string   `json:"asset_ids,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Store reads and writes drafts under a single directory.
type Store struct {
	// Dir is the draft directory; created on demand.
	Dir string

	// MaxDrafts bounds how many drafts are kept (0 = unlimited). The oldest
	// drafts by update time are pruned after each save.
	MaxDrafts int
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".moodio-agent", "drafts")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir, MaxDrafts: 50}, nil
}

// Save writes the draft, assigning an ID and timestamps as needed, and
// returns the stored value.
func (s *Store) Save(d Draft) (Draft, error) {
	now := time.Now().UTC()
	if d.ID == "" {
		d.ID = uuid.NewString()
		d.CreatedAt = now
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return Draft{}, fmt.Errorf("encode draft: %w", err)
	}
	path := s.path(d.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return Draft{}, fmt.Errorf("write draft: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return Draft{}, fmt.Errorf("write draft: %w", err)
	}
	if err := s.prune(); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Load reads a draft by ID.
func (s *Store) Load(id string) (Draft, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Draft{}, ErrNotFound
		}
		return Draft{}, err
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return Draft{}, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return d, nil
}

// Delete removes a draft. Deleting a missing draft is not an error.
func (s *Store) Delete(id string) error {
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns all drafts, most recently updated first. Unreadable files are
// skipped rather than failing the listing.
func (s *Store) List() ([]Draft, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	drafts := make([]Draft, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		d, err := s.Load(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		drafts = append(drafts, d)
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
	})
	return drafts, nil
}

// Latest returns the most recently updated draft for a chat, or ErrNotFound.
// An empty chatID matches drafts not bound to any chat.
func (s *Store) Latest(chatID string) (Draft, error) {
	drafts, err := s.List()
	if err != nil {
		return Draft{}, err
	}
	for _, d := range drafts {
		if d.ChatID == chatID {
			return d, nil
		}
	}
	return Draft{}, ErrNotFound
}

func (s *Store) prune() error {
	if s.MaxDrafts <= 0 {
		return nil
	}
	drafts, err := s.List()
	if err != nil {
		return err
	}
	for _, d := range drafts[min(len(drafts), s.MaxDrafts):] {
		if err := s.Delete(d.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.Dir, id+".json")
}
