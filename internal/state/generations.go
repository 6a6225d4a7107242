package state

import (
	"github.com/moodio/moodio-agent/internal/api"
	"github.com/moodio/moodio-agent/internal/deck"
)

// ImageStore tracks pending image generations, already grouped into decks.
type ImageStore interface {
	Decks() []deck.Deck
	SetDecks([]deck.Deck)
}

type imageStore struct {
	decks []deck.Deck
}

// NewImageStore returns an empty image generation store.
func NewImageStore() ImageStore {
	return &imageStore{}
}

func (s *imageStore) Decks() []deck.Deck {
	return cloneDecks(s.decks)
}

func (s *imageStore) SetDecks(decks []deck.Deck) {
	s.decks = cloneDecks(decks)
}

// VideoStore tracks pending video generations.
type VideoStore interface {
	Videos() []api.PendingVideo
	SetVideos([]api.PendingVideo)
}

type videoStore struct {
	videos []api.PendingVideo
}

// NewVideoStore returns an empty video generation store.
func NewVideoStore() VideoStore {
	return &videoStore{}
}

func (s *videoStore) Videos() []api.PendingVideo {
	return cloneVideos(s.videos)
}

func (s *videoStore) SetVideos(videos []api.PendingVideo) {
	s.videos = cloneVideos(videos)
}

func cloneDecks(decks []deck.Deck) []deck.Deck {
	if len(decks) == 0 {
		return nil
	}
	dup := make([]deck.Deck, len(decks))
	copy(dup, decks)
	for i := range dup {
		if len(dup[i].Cards) == 0 {
			continue
		}
		cards := make([]deck.Card, len(dup[i].Cards))
		copy(cards, dup[i].Cards)
		dup[i].Cards = cards
	}
	return dup
}

func cloneVideos(videos []api.PendingVideo) []api.PendingVideo {
	if len(videos) == 0 {
		return nil
	}
	dup := make([]api.PendingVideo, len(videos))
	copy(dup, videos)
	return dup
}
