package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodio/moodio-agent/internal/menu"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveAssignsIDAndTimestamps(t *testing.T) {
	s := newTestStore(t)
	saved, err := s.Save(Draft{
		Prompt: "a fox in the snow",
		Menu:   menu.State{Mode: "create", Model: "quality", AspectRatio: "16:9"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.False(t, saved.UpdatedAt.IsZero())
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	saved, err := s.Save(Draft{
		ChatID:   "chat-9",
		Prompt:   "remove the power lines",
		Menu:     menu.State{Mode: "edit", Model: "ultra", Expertise: "pro"},
		AssetIDs: []string{"asset-1"},
	})
	require.NoError(t, err)

	loaded, err := s.Load(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Prompt, loaded.Prompt)
	assert.Equal(t, saved.Menu, loaded.Menu)
	assert.Equal(t, saved.AssetIDs, loaded.AssetIDs)
	assert.Equal(t, "chat-9", loaded.ChatID)
}

func TestLoadMissingDraft(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	saved, err := s.Save(Draft{Prompt: "x"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(saved.ID))
	require.NoError(t, s.Delete(saved.ID))
	_, err = s.Load(saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersByUpdateTime(t *testing.T) {
	s := newTestStore(t)
	first, err := s.Save(Draft{Prompt: "first"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.Save(Draft{Prompt: "second"})
	require.NoError(t, err)

	drafts, err := s.List()
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, second.ID, drafts[0].ID)
	assert.Equal(t, first.ID, drafts[1].ID)

	// Re-saving the older draft moves it to the front.
	time.Sleep(5 * time.Millisecond)
	_, err = s.Save(first)
	require.NoError(t, err)
	drafts, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, first.ID, drafts[0].ID)
}

func TestPruneKeepsNewestDrafts(t *testing.T) {
	s := newTestStore(t)
	s.MaxDrafts = 2
	var ids []string
	for _, prompt := range []string{"a", "b", "c"} {
		d, err := s.Save(Draft{Prompt: prompt})
		require.NoError(t, err)
		ids = append(ids, d.ID)
		time.Sleep(5 * time.Millisecond)
	}
	drafts, err := s.List()
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, ids[2], drafts[0].ID)
	assert.Equal(t, ids[1], drafts[1].ID)
}

func TestLatestFiltersOnChatID(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Save(Draft{ChatID: "chat-1", Prompt: "one"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	want, err := s.Save(Draft{ChatID: "chat-1", Prompt: "two"})
	require.NoError(t, err)

	got, err := s.Latest("chat-1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)

	_, err = s.Latest("chat-2")
	assert.ErrorIs(t, err, ErrNotFound)
}
