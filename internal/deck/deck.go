// Package deck groups pending generation images into display decks. Marked
// edits arrive paired with the original they were drawn on; the gallery shows
// each pair as a single deck with the original underneath.
package deck

import "time"

// Role distinguishes the two halves of an edit pair.
type Role string

const (
	RoleOriginal Role = "original"
	RoleMarked   Role = "marked"
)

// Card is one pending image as reported by the backend.
type Card struct {
	ID        string
	PairID    string
	Role      Role
	Prompt    string
	Status    string
	URL       string
	CreatedAt time.Time
}

// Deck is a display group of one or two cards. Paired cards share the
// backend-assigned pair ID; a card without a pair forms a deck of its own.
type Deck struct {
	ID        string
	Prompt    string
	Status    string
	Cards     []Card
	CreatedAt time.Time
}

// Original returns the original card when the deck holds a pair.
func (d Deck) Original() (Card, bool) {
	for _, c := range d.Cards {
		if c.Role == RoleOriginal {
			return c, true
		}
	}
	return Card{}, false
}

// Marked returns the marked overlay card when present.
func (d Deck) Marked() (Card, bool) {
	for _, c := range d.Cards {
		if c.Role == RoleMarked {
			return c, true
		}
	}
	return Card{}, false
}

// Group collapses cards into decks in a single pass. Cards sharing a pair ID
// merge into one deck with the original ordered first; unpaired cards become
// single-card decks keyed by their own ID. Deck order follows the first
// appearance of each deck's earliest member, so newly arriving halves of a
// pair never reshuffle the gallery.
func Group(cards []Card) []Deck {
	if len(cards) == 0 {
		return nil
	}
	decks := make([]Deck, 0, len(cards))
	index := make(map[string]int, len(cards))
	for _, card := range cards {
		key := card.PairID
		if key == "" {
			key = card.ID
		}
		i, ok := index[key]
		if !ok {
			index[key] = len(decks)
			decks = append(decks, Deck{
				ID:        key,
				Prompt:    card.Prompt,
				Status:    card.Status,
				Cards:     []Card{card},
				CreatedAt: card.CreatedAt,
			})
			continue
		}
		decks[i].Cards = insertCard(decks[i].Cards, card)
		decks[i].Status = combineStatus(decks[i].Status, card.Status)
		if decks[i].Prompt == "" {
			decks[i].Prompt = card.Prompt
		}
		if card.CreatedAt.Before(decks[i].CreatedAt) {
			decks[i].CreatedAt = card.CreatedAt
		}
	}
	return decks
}

// insertCard keeps the original ahead of its marked overlay regardless of
// arrival order.
func insertCard(cards []Card, card Card) []Card {
	if card.Role == RoleOriginal {
		return append([]Card{card}, cards...)
	}
	return append(cards, card)
}

// combineStatus reports the deck status for a pair: any failure wins, then
// any still-running half, then ready.
func combineStatus(a, b string) string {
	switch {
	case a == "failed" || b == "failed":
		return "failed"
	case a == "queued" || b == "queued":
		return "queued"
	case a == "processing" || b == "processing":
		return "processing"
	}
	return b
}
