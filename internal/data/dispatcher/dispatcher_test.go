package dispatcher

import (
	"errors"
	"testing"

	"github.com/moodio/moodio-agent/internal/api"
	"github.com/moodio/moodio-agent/internal/backend"
	"github.com/moodio/moodio-agent/internal/state"
)

func newDispatcher() (*Dispatcher, state.ImageStore, state.VideoStore, state.AssetStore, state.CollectionStore) {
	images := state.NewImageStore()
	videos := state.NewVideoStore()
	assets := state.NewAssetStore()
	collections := state.NewCollectionStore()
	return New(images, videos, assets, collections), images, videos, assets, collections
}

func TestHandleGroupsImagesIntoDecks(t *testing.T) {
	d, images, _, _, _ := newDispatcher()
	res := d.Handle(backend.Event{Kind: backend.KindImages, Data: []api.PendingImage{
		{ID: "m1", PairID: "p1", Role: "marked", Status: "ready"},
		{ID: "o1", PairID: "p1", Role: "original", Status: "ready"},
		{ID: "solo", Status: "processing"},
	}})
	if !res.ImagesUpdated {
		t.Fatalf("expected ImagesUpdated")
	}
	decks := images.Decks()
	if len(decks) != 2 {
		t.Fatalf("expected 2 decks, got %d", len(decks))
	}
	if decks[0].ID != "p1" || len(decks[0].Cards) != 2 {
		t.Fatalf("unexpected pair deck: %+v", decks[0])
	}
}

func TestHandleUpdatesVideosAssetsCollections(t *testing.T) {
	d, _, videos, assets, collections := newDispatcher()

	res := d.Handle(backend.Event{Kind: backend.KindVideos, Data: []api.PendingVideo{{ID: "v1"}}})
	if !res.VideosUpdated || len(videos.Videos()) != 1 {
		t.Fatalf("video event not applied: %+v", res)
	}

	res = d.Handle(backend.Event{Kind: backend.KindAssets, Data: []api.Asset{{ID: "a1"}, {ID: "a2"}}})
	if !res.AssetsUpdated || len(assets.Assets()) != 2 {
		t.Fatalf("asset event not applied: %+v", res)
	}

	res = d.Handle(backend.Event{Kind: backend.KindCollections, Data: []api.Collection{{ID: "c1"}}})
	if !res.CollectionsUpdated || len(collections.Collections()) != 1 {
		t.Fatalf("collection event not applied: %+v", res)
	}
}

func TestHandleIgnoresErrorEvents(t *testing.T) {
	d, images, _, _, _ := newDispatcher()
	d.Handle(backend.Event{Kind: backend.KindImages, Data: []api.PendingImage{{ID: "img"}}})

	res := d.Handle(backend.Event{Kind: backend.KindImages, Err: errors.New("poll failed")})
	if res.ImagesUpdated {
		t.Fatalf("error event must not report an update")
	}
	if len(images.Decks()) != 1 {
		t.Fatalf("error event must leave the store untouched")
	}
}

func TestHandleIgnoresMismatchedPayload(t *testing.T) {
	d, images, _, _, _ := newDispatcher()
	res := d.Handle(backend.Event{Kind: backend.KindImages, Data: "garbage"})
	if res.ImagesUpdated || len(images.Decks()) != 0 {
		t.Fatalf("mismatched payload must be ignored")
	}
}
