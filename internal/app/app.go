// Package app wires configuration, storage and the battle service for the
// binaries.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/plumbers/internal/config"
	"github.com/peterkuimelis/plumbers/internal/game"
	"github.com/peterkuimelis/plumbers/internal/logging"
	plumbersnet "github.com/peterkuimelis/plumbers/internal/net"
	"github.com/peterkuimelis/plumbers/internal/service"
	"github.com/peterkuimelis/plumbers/internal/storage"
	"github.com/peterkuimelis/plumbers/internal/storage/memory"
	"github.com/peterkuimelis/plumbers/internal/storage/sqlite"
)

// App is a ready battle service with its dependencies.
type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Store   storage.Store
	Catalog *game.Catalog
	Service *service.Service
}

// New builds an App from cfg. Extra options are applied to the service after
// the configured ones. Close releases it.
func New(cfg config.Config, extra ...service.Option) (*App, error) {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	catalog := game.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = game.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	var store storage.Store
	if cfg.DBPath == "" {
		store = memory.New()
	} else {
		store, err = sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
	}

	opts := []service.Option{service.WithLogger(logger)}
	if cfg.Seed != 0 {
		opts = append(opts, service.WithSeed(cfg.Seed))
	}
	opts = append(opts, extra...)

	logger.Debug("app ready",
		zap.String("db", cfg.DBPath),
		zap.Int("cards", len(catalog.Cards())),
		zap.Int("emergencies", len(catalog.Emergencies())),
	)
	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Catalog: catalog,
		Service: service.New(store, catalog, opts...),
	}, nil
}

// Handler returns a protocol handler for the configured player.
func (a *App) Handler() *plumbersnet.Handler {
	return &plumbersnet.Handler{
		Service:  a.Service,
		DeckFile: a.Config.DeckFile,
		PlayerID: a.Config.PlayerID,
		Logger:   a.Logger,
	}
}

// Close closes the store and flushes the logger.
func (a *App) Close() error {
	err := a.Store.Close()
	// Sync fails on terminals; only the store error matters.
	_ = a.Logger.Sync()
	return err
}
