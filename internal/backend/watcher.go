// Package backend polls the Moodio API for data the UI mirrors locally:
// pending generations and the asset library. Poll results are published as
// events the dispatcher folds into the stores.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/moodio/moodio-agent/internal/api"
)

// Kind represents the type of data emitted by a backend poll.
type Kind int

const (
	KindImages Kind = iota
	KindVideos
	KindAssets
	KindCollections
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Source is the slice of the API client the watcher needs. Tests substitute
// a stub.
type Source interface {
	PendingImages(ctx context.Context) ([]api.PendingImage, error)
	PendingVideos(ctx context.Context) ([]api.PendingVideo, error)
	ListAssets(ctx context.Context) ([]api.Asset, error)
	ListCollections(ctx context.Context) ([]api.Collection, error)
}

// Watcher polls the backend at a fixed interval and publishes events.
// Request pacing across pollers is handled by the API client's rate limiter.
type Watcher struct {
	source   Source
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that polls every interval.
func NewWatcher(source Source, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startPoller(KindImages, func(ctx context.Context) (interface{}, error) {
		return source.PendingImages(ctx)
	})
	w.startPoller(KindVideos, func(ctx context.Context) (interface{}, error) {
		return source.PendingVideos(ctx)
	})
	w.startPoller(KindAssets, func(ctx context.Context) (interface{}, error) {
		return source.ListAssets(ctx)
	})
	w.startPoller(KindCollections, func(ctx context.Context) (interface{}, error) {
		return source.ListCollections(ctx)
	})

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns the channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait when a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startPoller(kind Kind, fetch func(context.Context) (interface{}, error)) {
	w.wg.Add(1)
	go w.poll(kind, fetch)
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
