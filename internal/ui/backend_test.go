package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/moodio/moodio-agent/internal/api"
	"github.com/moodio/moodio-agent/internal/backend"
)

func testAssets(ids ...string) []api.Asset {
	assets := make([]api.Asset, 0, len(ids))
	for _, id := range ids {
		assets = append(assets, api.Asset{
			ID:   id,
			Name: "asset " + id,
			Kind: "image",
		})
	}
	return assets
}

func TestBackendEventGroupsImagePairs(t *testing.T) {
	m := newTestModel(t, Options{})
	now := time.Now()
	m.applyBackendEvent(backend.Event{
		Kind: backend.KindImages,
		Data: []api.PendingImage{
			{ID: "img-1", PairID: "pair-1", Role: "original", Prompt: "a fox", Status: "ready", CreatedAt: now},
			{ID: "img-2", PairID: "pair-1", Role: "marked", Prompt: "a fox", Status: "processing", CreatedAt: now.Add(time.Second)},
			{ID: "img-3", Prompt: "a crow", Status: "queued", CreatedAt: now.Add(2 * time.Second)},
		},
	})

	decks := m.images.Decks()
	if len(decks) != 2 {
		t.Fatalf("expected pair plus single deck, got %d", len(decks))
	}
	if decks[0].ID != "pair-1" || len(decks[0].Cards) != 2 {
		t.Fatalf("unexpected first deck %#v", decks[0])
	}
	if decks[1].ID != "img-3" || len(decks[1].Cards) != 1 {
		t.Fatalf("unexpected second deck %#v", decks[1])
	}
}

func TestBackendEventRefreshesOpenLevel(t *testing.T) {
	m := newTestModel(t, Options{})
	node, _ := m.registry.Find("pending:images")
	lvl := newLevel("pending:images", "images", nil, node)
	m.stack = append(m.stack, newLevel("pending", "pending", nil, nil), lvl)

	m.applyBackendEvent(backend.Event{
		Kind: backend.KindImages,
		Data: []api.PendingImage{
			{ID: "img-1", Prompt: "a fox", Status: "ready", CreatedAt: time.Now()},
		},
	})

	if len(lvl.Items) != 1 || lvl.Items[0].ID != "img-1" {
		t.Fatalf("expected open level refreshed, got %#v", lvl.Items)
	}
}

func TestBackendEventPrunesDanglingAttachments(t *testing.T) {
	m := newTestModel(t, Options{})
	m.attached["gone"] = true
	m.attached["a1"] = true

	m.applyBackendEvent(backend.Event{
		Kind: backend.KindAssets,
		Data: testAssets("a1"),
	})

	if m.attached["gone"] {
		t.Fatalf("expected dangling attachment pruned")
	}
	if !m.attached["a1"] {
		t.Fatalf("expected surviving asset to stay attached")
	}
}

func TestBackendErrorSurfacesInView(t *testing.T) {
	m := newTestModel(t, Options{})
	m.applyBackendEvent(backend.Event{
		Kind: backend.KindVideos,
		Err:  errTest("connection refused"),
	})

	warn, issue := m.hasBackendIssue()
	if !warn {
		t.Fatalf("expected backend issue flagged")
	}
	if issue != "connection refused" {
		t.Fatalf("unexpected issue %q", issue)
	}
	if view := m.View(); !strings.Contains(view, "Backend: connection refused") {
		t.Fatalf("expected backend issue in view, got:\n%s", view)
	}
}

func TestBackendRecoveryClearsIssue(t *testing.T) {
	m := newTestModel(t, Options{})
	m.applyBackendEvent(backend.Event{Kind: backend.KindVideos, Err: errTest("connection refused")})
	m.applyBackendEvent(backend.Event{Kind: backend.KindVideos, Data: []api.PendingVideo{}})

	if warn, _ := m.hasBackendIssue(); warn {
		t.Fatalf("expected issue cleared after successful poll")
	}
	if m.backendLastErr != "" {
		t.Fatalf("expected last error cleared, got %q", m.backendLastErr)
	}
}

func TestBackendDoneStopsWaiting(t *testing.T) {
	m := newTestModel(t, Options{})
	m.backend = backend.NewWatcher(stubSource{}, time.Hour)
	m.backend.Stop()
	m.handleBackendDoneMsg(backendDoneMsg{})
	if m.backend != nil {
		t.Fatalf("expected watcher reference dropped")
	}
}

type stubSource struct{}

func (stubSource) PendingImages(context.Context) ([]api.PendingImage, error) { return nil, nil }
func (stubSource) PendingVideos(context.Context) ([]api.PendingVideo, error) { return nil, nil }
func (stubSource) ListAssets(context.Context) ([]api.Asset, error)           { return nil, nil }
func (stubSource) ListCollections(context.Context) ([]api.Collection, error) { return nil, nil }
