// Package dispatcher folds backend watcher events into the client-side
// stores, grouping pending images into gallery decks along the way.
package dispatcher

import (
	"github.com/moodio/moodio-agent/internal/api"
	"github.com/moodio/moodio-agent/internal/backend"
	"github.com/moodio/moodio-agent/internal/deck"
	"github.com/moodio/moodio-agent/internal/state"
)

// Result reports which stores an event changed so the UI can refresh only the
// affected menus.
type Result struct {
	ImagesUpdated      bool
	VideosUpdated      bool
	AssetsUpdated      bool
	CollectionsUpdated bool
}

// Dispatcher routes backend events to the stores.
type Dispatcher struct {
	images      state.ImageStore
	videos      state.VideoStore
	assets      state.AssetStore
	collections state.CollectionStore
}

// New creates a dispatcher over the provided stores.
func New(images state.ImageStore, videos state.VideoStore, assets state.AssetStore, collections state.CollectionStore) *Dispatcher {
	return &Dispatcher{
		images:      images,
		videos:      videos,
		assets:      assets,
		collections: collections,
	}
}

// Handle applies a single backend event. Events carrying errors leave the
// stores untouched; the UI surfaces the failure separately.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindImages:
		if images, ok := evt.Data.([]api.PendingImage); ok {
			d.images.SetDecks(deck.Group(cardsFromPending(images)))
			res.ImagesUpdated = true
		}
	case backend.KindVideos:
		if videos, ok := evt.Data.([]api.PendingVideo); ok {
			d.videos.SetVideos(videos)
			res.VideosUpdated = true
		}
	case backend.KindAssets:
		if assets, ok := evt.Data.([]api.Asset); ok {
			d.assets.SetAssets(assets)
			res.AssetsUpdated = true
		}
	case backend.KindCollections:
		if collections, ok := evt.Data.([]api.Collection); ok {
			d.collections.SetCollections(collections)
			res.CollectionsUpdated = true
		}
	}
	return res
}

func cardsFromPending(images []api.PendingImage) []deck.Card {
	cards := make([]deck.Card, 0, len(images))
	for _, img := range images {
		cards = append(cards, deck.Card{
			ID:        img.ID,
			PairID:    img.PairID,
			Role:      deck.Role(img.Role),
			Prompt:    img.Prompt,
			Status:    img.Status,
			URL:       img.URL,
			CreatedAt: img.CreatedAt,
		})
	}
	return cards
}
