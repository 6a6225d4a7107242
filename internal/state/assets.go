package state

import "github.com/moodio/moodio-agent/internal/api"

// AssetStore tracks the user's asset library.
type AssetStore interface {
	Assets() []api.Asset
	SetAssets([]api.Asset)
}

type assetStore struct {
	assets []api.Asset
}

// NewAssetStore returns an empty asset store.
func NewAssetStore() AssetStore {
	return &assetStore{}
}

func (s *assetStore) Assets() []api.Asset {
	return cloneAssets(s.assets)
}

func (s *assetStore) SetAssets(assets []api.Asset) {
	s.assets = cloneAssets(assets)
}

// CollectionStore tracks the user's collections.
type CollectionStore interface {
	Collections() []api.Collection
	SetCollections([]api.Collection)
}

type collectionStore struct {
	collections []api.Collection
}

// NewCollectionStore returns an empty collection store.
func NewCollectionStore() CollectionStore {
	return &collectionStore{}
}

func (s *collectionStore) Collections() []api.Collection {
	return cloneCollections(s.collections)
}

func (s *collectionStore) SetCollections(collections []api.Collection) {
	s.collections = cloneCollections(collections)
}

func cloneAssets(assets []api.Asset) []api.Asset {
	if len(assets) == 0 {
		return nil
	}
	dup := make([]api.Asset, len(assets))
	copy(dup, assets)
	return dup
}

func cloneCollections(collections []api.Collection) []api.Collection {
	if len(collections) == 0 {
		return nil
	}
	dup := make([]api.Collection, len(collections))
	copy(dup, collections)
	return dup
}
