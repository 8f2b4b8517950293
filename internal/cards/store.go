// Package cards exposes the session's payment cards to the cards view.
// The core never mutates them; freezing, limits and new cards are
// managed elsewhere.
package cards

import (
	"github.com/shopspring/decimal"

	"github.com/aalves77/banco/internal/domain"
)

// Store is a read-only card list for one session.
type Store struct {
	cards []domain.Card
}

// NewStore creates a card store from the seeded cards.
func NewStore(seed ...domain.Card) *Store {
	cards := make([]domain.Card, len(seed))
	copy(cards, seed)
	return &Store{cards: cards}
}

// All returns a snapshot copy of the cards in display order.
func (s *Store) All() []domain.Card {
	out := make([]domain.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Available returns the unspent limit of a card.
func Available(c domain.Card) decimal.Decimal {
	return c.Limit.Sub(c.Used)
}
