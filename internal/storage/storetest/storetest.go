// Package storetest holds the behavior every storage.Store must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/plumbers/internal/storage"
)

// Run exercises a store built by open. open is called once per subtest.
func Run(t *testing.T, open func(t *testing.T) storage.Store) {
	t.Run("profile round trip", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		_, err := s.GetProfile(ctx, "p1")
		require.ErrorIs(t, err, storage.ErrNotFound)

		in := storage.Profile{PlayerID: "p1", Coins: 500, Level: 1}
		require.NoError(t, s.SaveProfile(ctx, in))

		got, err := s.GetProfile(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 500, got.Coins)
		assert.Equal(t, 1, got.Level)
		assert.False(t, got.CreatedAt.IsZero())

		got.Coins += 150
		got.Wins++
		got.EmergenciesSolved++
		require.NoError(t, s.SaveProfile(ctx, got))

		again, err := s.GetProfile(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 650, again.Coins)
		assert.Equal(t, 1, again.Wins)
		assert.Equal(t, 1, again.EmergenciesSolved)
		assert.True(t, again.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("profile requires id", func(t *testing.T) {
		s := open(t)
		assert.Error(t, s.SaveProfile(context.Background(), storage.Profile{Coins: 1}))
	})

	t.Run("collection replaces quantities", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		_, err := s.GetCollection(ctx, "p1")
		require.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, s.SaveCollection(ctx, storage.Collection{
			PlayerID: "p1",
			Cards:    map[string]int{"tool_mega_plunger": 2, "plumber_turbo_tony": 1},
		}))
		require.NoError(t, s.SaveCollection(ctx, storage.Collection{
			PlayerID: "p1",
			Cards:    map[string]int{"tool_mega_plunger": 3, "plumber_turbo_tony": 0},
		}))

		got, err := s.GetCollection(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"tool_mega_plunger": 3}, got.Cards)
		assert.Equal(t, 3, got.Total())
	})

	t.Run("decks keep order and duplicates", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		cards := []string{"tool_mega_plunger", "plumber_turbo_tony", "tool_mega_plunger"}
		require.NoError(t, s.SaveDeck(ctx, storage.DeckRecord{ID: "d2", PlayerID: "p1", Name: "Rush", Cards: cards}))
		require.NoError(t, s.SaveDeck(ctx, storage.DeckRecord{ID: "d1", PlayerID: "p1", Name: "Defense", Cards: []string{"sandwich_mega_blt"}}))
		require.NoError(t, s.SaveDeck(ctx, storage.DeckRecord{ID: "d3", PlayerID: "p2", Name: "Other", Cards: []string{"tool_mega_plunger"}}))

		got, err := s.GetDeck(ctx, "p1", "d2")
		require.NoError(t, err)
		assert.Equal(t, cards, got.Cards)
		assert.Equal(t, "Rush", got.Name)

		list, err := s.ListDecks(ctx, "p1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Defense", list[0].Name)
		assert.Equal(t, "Rush", list[1].Name)

		_, err = s.GetDeck(ctx, "p2", "d2")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("save deck overwrites", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		require.NoError(t, s.SaveDeck(ctx, storage.DeckRecord{ID: "d1", PlayerID: "p1", Name: "A", Cards: []string{"a", "b"}}))
		require.NoError(t, s.SaveDeck(ctx, storage.DeckRecord{ID: "d1", PlayerID: "p1", Name: "B", Cards: []string{"c"}}))

		got, err := s.GetDeck(ctx, "p1", "d1")
		require.NoError(t, err)
		assert.Equal(t, "B", got.Name)
		assert.Equal(t, []string{"c"}, got.Cards)
	})

	t.Run("delete deck", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		require.NoError(t, s.SaveDeck(ctx, storage.DeckRecord{ID: "d1", PlayerID: "p1", Name: "A", Cards: []string{"a"}}))
		require.NoError(t, s.DeleteDeck(ctx, "p1", "d1"))
		assert.ErrorIs(t, s.DeleteDeck(ctx, "p1", "d1"), storage.ErrNotFound)

		list, err := s.ListDecks(ctx, "p1")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("canceled context", func(t *testing.T) {
		s := open(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.GetProfile(ctx, "p1")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
