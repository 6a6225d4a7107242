package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moodio/moodio-agent/internal/api"
)

type stubSource struct {
	images      []api.PendingImage
	videos      []api.PendingVideo
	assets      []api.Asset
	collections []api.Collection
	assetsErr   error
}

func (s *stubSource) PendingImages(context.Context) ([]api.PendingImage, error) {
	return s.images, nil
}

func (s *stubSource) PendingVideos(context.Context) ([]api.PendingVideo, error) {
	return s.videos, nil
}

func (s *stubSource) ListAssets(context.Context) ([]api.Asset, error) {
	return s.assets, s.assetsErr
}

func (s *stubSource) ListCollections(context.Context) ([]api.Collection, error) {
	return s.collections, nil
}

func collectInitialEvents(t *testing.T, w *Watcher) map[Kind]Event {
	t.Helper()
	events := make(map[Kind]Event)
	timeout := time.After(2 * time.Second)
	for len(events) < 4 {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed after %d events", len(events))
			}
			if _, seen := events[evt.Kind]; !seen {
				events[evt.Kind] = evt
			}
		case <-timeout:
			t.Fatalf("timed out waiting for initial events, got %d", len(events))
		}
	}
	return events
}

func TestWatcherEmitsInitialSnapshotPerKind(t *testing.T) {
	src := &stubSource{
		images: []api.PendingImage{{ID: "img-1"}},
		videos: []api.PendingVideo{{ID: "vid-1"}},
		assets: []api.Asset{{ID: "asset-1"}},
	}
	w := NewWatcher(src, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	events := collectInitialEvents(t, w)
	images, ok := events[KindImages].Data.([]api.PendingImage)
	if !ok || len(images) != 1 || images[0].ID != "img-1" {
		t.Fatalf("unexpected image event: %+v", events[KindImages])
	}
	videos, ok := events[KindVideos].Data.([]api.PendingVideo)
	if !ok || len(videos) != 1 {
		t.Fatalf("unexpected video event: %+v", events[KindVideos])
	}
	if events[KindCollections].Err != nil {
		t.Fatalf("unexpected collections error: %v", events[KindCollections].Err)
	}
}

func TestWatcherPropagatesErrors(t *testing.T) {
	wantErr := errors.New("backend down")
	src := &stubSource{assetsErr: wantErr}
	w := NewWatcher(src, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	events := collectInitialEvents(t, w)
	if !errors.Is(events[KindAssets].Err, wantErr) {
		t.Fatalf("expected assets error, got %v", events[KindAssets].Err)
	}
	if events[KindImages].Err != nil {
		t.Fatalf("image poll should succeed, got %v", events[KindImages].Err)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	w := NewWatcher(&stubSource{}, time.Hour)
	w.Stop()
	w.Wait()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("events channel never closed")
		}
	}
}
