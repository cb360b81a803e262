// Package storage defines persistence contracts for player profiles,
// card collections and saved decks.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
)

// Profile is a player's persistent progress.
type Profile struct {
	PlayerID          string
	Coins             int
	Wins              int
	EmergenciesSolved int
	Level             int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Collection maps owned card ids to quantities.
type Collection struct {
	PlayerID string
	Cards    map[string]int
}

// Total returns the number of owned cards.
func (c Collection) Total() int {
	n := 0
	for _, q := range c.Cards {
		n += q
	}
	return n
}

// DeckRecord is a saved deck. Cards keeps deck order and duplicates.
type DeckRecord struct {
	ID        string
	PlayerID  string
	Name      string
	Cards     []string
	UpdatedAt time.Time
}

// ProfileStore persists player profiles.
type ProfileStore interface {
	GetProfile(ctx context.Context, playerID string) (Profile, error)
	SaveProfile(ctx context.Context, profile Profile) error
}

// CollectionStore persists owned cards.
type CollectionStore interface {
	GetCollection(ctx context.Context, playerID string) (Collection, error)
	SaveCollection(ctx context.Context, collection Collection) error
}

// DeckStore persists saved decks.
type DeckStore interface {
	ListDecks(ctx context.Context, playerID string) ([]DeckRecord, error)
	GetDeck(ctx context.Context, playerID, deckID string) (DeckRecord, error)
	SaveDeck(ctx context.Context, deck DeckRecord) error
	DeleteDeck(ctx context.Context, playerID, deckID string) error
}

// Store is the full persistence port.
type Store interface {
	ProfileStore
	CollectionStore
	DeckStore
	Close() error
}
