package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/plumbers/internal/config"
	"github.com/peterkuimelis/plumbers/internal/game"
	"github.com/peterkuimelis/plumbers/internal/storage/memory"
	"github.com/peterkuimelis/plumbers/internal/storage/sqlite"
)

func testConfig(t *testing.T) config.Config {
	return config.Config{
		DeckFile: filepath.Join(t.TempDir(), "decks.yaml"),
		PlayerID: "tester",
		LogLevel: "error",
	}
}

func TestNewInMemory(t *testing.T) {
	a, err := New(testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &memory.Store{}, a.Store)
	assert.Len(t, a.Catalog.Cards(), len(game.CardRegistry))

	h := a.Handler()
	assert.Equal(t, "tester", h.PlayerID)
	assert.Same(t, a.Service, h.Service)
}

func TestNewWithSQLite(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBPath = filepath.Join(t.TempDir(), "plumbers.db")
	cfg.Seed = 9

	a, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, a.Store)

	p, err := a.Service.EnsurePlayer(context.Background(), "tester")
	require.NoError(t, err)
	require.NoError(t, a.Close())

	again, err := New(cfg)
	require.NoError(t, err)
	defer again.Close()
	stored, err := again.Store.GetProfile(context.Background(), "tester")
	require.NoError(t, err)
	assert.Equal(t, p.Coins, stored.Coins)
}

func TestNewErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogLevel = "chatty"
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(cfg)
	assert.ErrorContains(t, err, "load catalog")
}
