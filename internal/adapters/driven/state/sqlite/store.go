// Package sqlite persists run state in a SQLite database, one row per
// collection. Suited to deployments where the state file would live on
// shared storage and atomic rename is not available.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
	"github.com/custodia-labs/firetap-cli/internal/core/ports/driven"
	"github.com/custodia-labs/firetap-cli/internal/logger"
)

// Ensure Store implements the state store port.
var _ driven.StateStore = (*Store)(nil)

// Store is a SQLite-backed state store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the state database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: state path must not be empty", domain.ErrInvalidConfig)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}

	// WAL mode keeps checkpoint writes cheap and crash-safe.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS collection_state (
			collection TEXT PRIMARY KEY,
			replication_key_value TEXT,
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating collection_state table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Load reads all persisted cursors. Row-level corruption is skipped with a
// warning; Load never fails the run for state problems.
func (s *Store) Load(ctx context.Context) (*domain.RunState, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT collection, replication_key_value FROM collection_state
	`)
	if err != nil {
		logger.Warn("state database %s unreadable, starting fresh: %v", s.path, err)
		return domain.NewRunState(), nil
	}
	defer rows.Close()

	state := domain.NewRunState()
	for rows.Next() {
		var collection string
		var value sql.NullString
		if err := rows.Scan(&collection, &value); err != nil {
			logger.Warn("skipping unreadable state row: %v", err)
			continue
		}
		state.Collections[collection] = domain.CollectionState{ReplicationKeyValue: value.String}
	}
	if err := rows.Err(); err != nil {
		logger.Warn("state database %s partially read: %v", s.path, err)
	}
	return state, nil
}

// Save upserts every collection's entry in one transaction, leaving rows for
// collections absent from this run untouched.
func (s *Store) Save(ctx context.Context, state *domain.RunState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin state transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for collection, cs := range state.Collections {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO collection_state (collection, replication_key_value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(collection) DO UPDATE SET
				replication_key_value = excluded.replication_key_value,
				updated_at = excluded.updated_at
		`, collection, nullString(cs.ReplicationKeyValue), now); err != nil {
			return fmt.Errorf("saving state for %s: %w", collection, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit state transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
