// Package memory provides an in-process storage.Store.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/peterkuimelis/plumbers/internal/storage"
)

// Store keeps every record in maps guarded by one mutex. Values are copied in
// and out so callers never share slices or maps with the store.
type Store struct {
	mu          sync.Mutex
	profiles    map[string]storage.Profile
	collections map[string]map[string]int
	decks       map[string]map[string]storage.DeckRecord // player -> deck id -> deck
	now         func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		profiles:    make(map[string]storage.Profile),
		collections: make(map[string]map[string]int),
		decks:       make(map[string]map[string]storage.DeckRecord),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *Store) GetProfile(ctx context.Context, playerID string) (storage.Profile, error) {
	if err := ctx.Err(); err != nil {
		return storage.Profile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[playerID]
	if !ok {
		return storage.Profile{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) SaveProfile(ctx context.Context, profile storage.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(profile.PlayerID) == "" {
		return fmt.Errorf("player id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if prev, ok := s.profiles[profile.PlayerID]; ok {
		profile.CreatedAt = prev.CreatedAt
	} else if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	s.profiles[profile.PlayerID] = profile
	return nil
}

func (s *Store) GetCollection(ctx context.Context, playerID string) (storage.Collection, error) {
	if err := ctx.Err(); err != nil {
		return storage.Collection{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cards, ok := s.collections[playerID]
	if !ok || len(cards) == 0 {
		return storage.Collection{}, storage.ErrNotFound
	}
	return storage.Collection{PlayerID: playerID, Cards: maps.Clone(cards)}, nil
}

func (s *Store) SaveCollection(ctx context.Context, collection storage.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(collection.PlayerID) == "" {
		return fmt.Errorf("player id is required")
	}
	cards := make(map[string]int, len(collection.Cards))
	for id, q := range collection.Cards {
		if q > 0 {
			cards[id] = q
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection.PlayerID] = cards
	return nil
}

func (s *Store) ListDecks(ctx context.Context, playerID string) ([]storage.DeckRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.DeckRecord, 0, len(s.decks[playerID]))
	for _, d := range s.decks[playerID] {
		d.Cards = slices.Clone(d.Cards)
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetDeck(ctx context.Context, playerID, deckID string) (storage.DeckRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.DeckRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.decks[playerID][deckID]
	if !ok {
		return storage.DeckRecord{}, storage.ErrNotFound
	}
	d.Cards = slices.Clone(d.Cards)
	return d, nil
}

func (s *Store) SaveDeck(ctx context.Context, deck storage.DeckRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(deck.PlayerID) == "" || strings.TrimSpace(deck.ID) == "" {
		return fmt.Errorf("player id and deck id are required")
	}
	deck.Cards = slices.Clone(deck.Cards)
	s.mu.Lock()
	defer s.mu.Unlock()
	deck.UpdatedAt = s.now()
	if s.decks[deck.PlayerID] == nil {
		s.decks[deck.PlayerID] = make(map[string]storage.DeckRecord)
	}
	s.decks[deck.PlayerID][deck.ID] = deck
	return nil
}

func (s *Store) DeleteDeck(ctx context.Context, playerID, deckID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.decks[playerID][deckID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.decks[playerID], deckID)
	return nil
}

var _ storage.Store = (*Store)(nil)
