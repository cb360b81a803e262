// Package sqlite provides a SQLite-backed player storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/peterkuimelis/plumbers/internal/storage"
	"github.com/peterkuimelis/plumbers/internal/storage/sqlite/migrations"
)

// Store persists profiles, collections and decks in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// GetProfile returns one profile by player id.
func (s *Store) GetProfile(ctx context.Context, playerID string) (storage.Profile, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Profile{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT player_id, coins, wins, emergencies_solved, level, created_at, updated_at
		   FROM profiles
		  WHERE player_id = ?`,
		strings.TrimSpace(playerID),
	)

	var p storage.Profile
	var createdAt, updatedAt int64
	err := row.Scan(&p.PlayerID, &p.Coins, &p.Wins, &p.EmergenciesSolved, &p.Level, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Profile{}, storage.ErrNotFound
		}
		return storage.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

// SaveProfile inserts or updates a profile. CreatedAt is kept from the first save.
func (s *Store) SaveProfile(ctx context.Context, profile storage.Profile) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	playerID := strings.TrimSpace(profile.PlayerID)
	if playerID == "" {
		return fmt.Errorf("player id is required")
	}
	now := time.Now().UTC()
	createdAt := profile.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO profiles (player_id, coins, wins, emergencies_solved, level, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (player_id) DO UPDATE SET
		   coins = excluded.coins,
		   wins = excluded.wins,
		   emergencies_solved = excluded.emergencies_solved,
		   level = excluded.level,
		   updated_at = excluded.updated_at`,
		playerID,
		profile.Coins,
		profile.Wins,
		profile.EmergenciesSolved,
		profile.Level,
		toMillis(createdAt),
		toMillis(now),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// GetCollection returns a player's owned cards.
func (s *Store) GetCollection(ctx context.Context, playerID string) (storage.Collection, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Collection{}, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT card_id, quantity FROM collection_cards WHERE player_id = ?`,
		playerID,
	)
	if err != nil {
		return storage.Collection{}, fmt.Errorf("get collection: %w", err)
	}
	defer rows.Close()

	c := storage.Collection{PlayerID: playerID, Cards: make(map[string]int)}
	for rows.Next() {
		var cardID string
		var qty int
		if err := rows.Scan(&cardID, &qty); err != nil {
			return storage.Collection{}, fmt.Errorf("scan collection: %w", err)
		}
		c.Cards[cardID] = qty
	}
	if err := rows.Err(); err != nil {
		return storage.Collection{}, fmt.Errorf("iterate collection: %w", err)
	}
	if len(c.Cards) == 0 {
		return storage.Collection{}, storage.ErrNotFound
	}
	return c, nil
}

// SaveCollection replaces a player's owned cards. Zero quantities are dropped.
func (s *Store) SaveCollection(ctx context.Context, collection storage.Collection) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	playerID := strings.TrimSpace(collection.PlayerID)
	if playerID == "" {
		return fmt.Errorf("player id is required")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM collection_cards WHERE player_id = ?`, playerID); err != nil {
			return fmt.Errorf("clear collection: %w", err)
		}
		for cardID, qty := range collection.Cards {
			if qty <= 0 {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO collection_cards (player_id, card_id, quantity) VALUES (?, ?, ?)`,
				playerID, cardID, qty,
			); err != nil {
				return fmt.Errorf("insert collection card %s: %w", cardID, err)
			}
		}
		return nil
	})
}

// ListDecks returns a player's decks ordered by name.
func (s *Store) ListDecks(ctx context.Context, playerID string) ([]storage.DeckRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT deck_id, name, updated_at FROM decks WHERE player_id = ? ORDER BY name, deck_id`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}

	var decks []storage.DeckRecord
	for rows.Next() {
		d := storage.DeckRecord{PlayerID: playerID}
		var updatedAt int64
		if err := rows.Scan(&d.ID, &d.Name, &updatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		d.UpdatedAt = fromMillis(updatedAt)
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate decks: %w", err)
	}
	rows.Close()

	for i := range decks {
		cards, err := s.deckCards(ctx, playerID, decks[i].ID)
		if err != nil {
			return nil, err
		}
		decks[i].Cards = cards
	}
	if decks == nil {
		decks = []storage.DeckRecord{}
	}
	return decks, nil
}

// GetDeck returns one deck.
func (s *Store) GetDeck(ctx context.Context, playerID, deckID string) (storage.DeckRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.DeckRecord{}, err
	}
	d := storage.DeckRecord{PlayerID: playerID}
	var updatedAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT deck_id, name, updated_at FROM decks WHERE player_id = ? AND deck_id = ?`,
		playerID, deckID,
	).Scan(&d.ID, &d.Name, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.DeckRecord{}, storage.ErrNotFound
		}
		return storage.DeckRecord{}, fmt.Errorf("get deck: %w", err)
	}
	d.UpdatedAt = fromMillis(updatedAt)

	d.Cards, err = s.deckCards(ctx, playerID, deckID)
	if err != nil {
		return storage.DeckRecord{}, err
	}
	return d, nil
}

// SaveDeck inserts or replaces a deck and its card list.
func (s *Store) SaveDeck(ctx context.Context, deck storage.DeckRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	playerID := strings.TrimSpace(deck.PlayerID)
	deckID := strings.TrimSpace(deck.ID)
	if playerID == "" || deckID == "" {
		return fmt.Errorf("player id and deck id are required")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO decks (player_id, deck_id, name, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT (player_id, deck_id) DO UPDATE SET
			   name = excluded.name,
			   updated_at = excluded.updated_at`,
			playerID, deckID, deck.Name, toMillis(time.Now()),
		); err != nil {
			return fmt.Errorf("save deck: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM deck_cards WHERE player_id = ? AND deck_id = ?`, playerID, deckID,
		); err != nil {
			return fmt.Errorf("clear deck cards: %w", err)
		}
		for i, cardID := range deck.Cards {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO deck_cards (player_id, deck_id, position, card_id) VALUES (?, ?, ?, ?)`,
				playerID, deckID, i, cardID,
			); err != nil {
				return fmt.Errorf("insert deck card %d: %w", i, err)
			}
		}
		return nil
	})
}

// DeleteDeck removes a deck and its card list.
func (s *Store) DeleteDeck(ctx context.Context, playerID, deckID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM deck_cards WHERE player_id = ? AND deck_id = ?`, playerID, deckID,
		); err != nil {
			return fmt.Errorf("delete deck cards: %w", err)
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM decks WHERE player_id = ? AND deck_id = ?`, playerID, deckID,
		)
		if err != nil {
			return fmt.Errorf("delete deck: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete deck: %w", err)
		}
		if n == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

func (s *Store) deckCards(ctx context.Context, playerID, deckID string) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT card_id FROM deck_cards WHERE player_id = ? AND deck_id = ? ORDER BY position`,
		playerID, deckID,
	)
	if err != nil {
		return nil, fmt.Errorf("get deck cards: %w", err)
	}
	defer rows.Close()

	cards := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan deck card: %w", err)
		}
		cards = append(cards, id)
	}
	return cards, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ storage.Store = (*Store)(nil)
