package tracker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `CREATE TABLE IF NOT EXISTS tracker_entries (
	date TEXT PRIMARY KEY,
	roza BOOLEAN NOT NULL DEFAULT 0,
	taraweeh BOOLEAN NOT NULL DEFAULT 0
)`

const selectAll = `SELECT date, roza, taraweeh FROM tracker_entries ORDER BY rowid`

// Store persists the tracker list in SQLite.
type Store struct {
	db *sqlx.DB
	mu sync.Mutex // serialises read-modify-write transactions
}

// DataDir returns the directory holding the tracker database.
// It respects $XDG_DATA_HOME if set, otherwise uses ~/.local/share/.
func DataDir(app string) string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, app)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", app)
	}
	return filepath.Join(home, ".local", "share", app)
}

// DefaultPath returns the database path inside dir, or inside DataDir when
// dir is empty.
func DefaultPath(dir string) string {
	if dir == "" {
		dir = DataDir("ramadan-pro")
	}
	return filepath.Join(dir, "tracker.db")
}

// Open opens (creating if needed) the tracker database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data directory: %w", err)
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open tracker db: %w", err)
	}
	// SQLite allows one writer; a single connection keeps writes serialised.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open tracker db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tracker schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// All returns every entry in the order they were last written.
func (s *Store) All(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := s.db.SelectContext(ctx, &entries, selectAll); err != nil {
		return nil, fmt.Errorf("load tracker entries: %w", err)
	}
	return entries, nil
}

// Load is All, but a read failure is logged and yields an empty list.
func (s *Store) Load(ctx context.Context) []Entry {
	entries, err := s.All(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("tracker data unreadable, starting empty")
		return []Entry{}
	}
	return entries
}

// Replace rewrites the whole list in one transaction. The date primary key
// rejects a list with duplicate dates and the previous list is kept.
func (s *Store) Replace(ctx context.Context, entries []Entry) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		return replaceAll(ctx, tx, entries)
	})
}

// Toggle flips field for dateKey and persists the list before returning the
// updated entry. The read and the rewrite share one transaction, so
// concurrent toggles are applied one after the other.
func (s *Store) Toggle(ctx context.Context, dateKey string, field Field) (Entry, error) {
	var e Entry
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var entries []Entry
		if err := tx.SelectContext(ctx, &entries, selectAll); err != nil {
			return fmt.Errorf("load tracker entries: %w", err)
		}
		next, err := Toggle(entries, dateKey, field)
		if err != nil {
			return err
		}
		if err := replaceAll(ctx, tx, next); err != nil {
			return err
		}
		e, _ = Find(next, dateKey)
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tracker write: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tracker write: %w", err)
	}
	return nil
}

func replaceAll(ctx context.Context, tx *sqlx.Tx, entries []Entry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tracker_entries`); err != nil {
		return fmt.Errorf("clear tracker entries: %w", err)
	}
	for _, e := range entries {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO tracker_entries (date, roza, taraweeh) VALUES (:date, :roza, :taraweeh)`, e); err != nil {
			return fmt.Errorf("write tracker entry %s: %w", e.Date, err)
		}
	}
	return nil
}
