// Package file persists run state as a JSON file: a mapping from collection
// name to its last checkpointed replication key value.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
	"github.com/custodia-labs/firetap-cli/internal/core/ports/driven"
	"github.com/custodia-labs/firetap-cli/internal/logger"
)

// Ensure Store implements the state store port.
var _ driven.StateStore = (*Store)(nil)

// Store is a JSON-file state store.
type Store struct {
	path string
}

// NewStore creates a file state store at path. The parent directory is
// created if needed; the file itself is created on first Save.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: state path must not be empty", domain.ErrInvalidConfig)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}
	return &Store{path: path}, nil
}

// Load reads the persisted state. A missing or corrupt file yields a fresh
// RunState; corruption is logged, never fatal.
func (s *Store) Load(_ context.Context) (*domain.RunState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("state file %s unreadable, starting fresh: %v", s.path, err)
		}
		return domain.NewRunState(), nil
	}

	var collections map[string]domain.CollectionState
	if err := json.Unmarshal(data, &collections); err != nil {
		logger.Warn("state file %s corrupt, starting fresh: %v", s.path, err)
		return domain.NewRunState(), nil
	}
	if collections == nil {
		collections = make(map[string]domain.CollectionState)
	}
	return &domain.RunState{Collections: collections}, nil
}

// Save writes the state atomically: a temp file in the same directory is
// renamed over the target, so a crash mid-write never corrupts the previous
// checkpoint.
func (s *Store) Save(_ context.Context, state *domain.RunState) error {
	data, err := json.MarshalIndent(state.Collections, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *Store) Close() error {
	return nil
}
