package driven

import (
	"context"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
)

// StateStore persists per-collection cursors across runs.
type StateStore interface {
	// Load returns the persisted state. Absent or corrupt state yields a
	// fresh RunState with no cursors; Load is never fatal for that reason.
	Load(ctx context.Context) (*domain.RunState, error)

	// Save persists the full state. Called at every checkpoint boundary.
	Save(ctx context.Context, state *domain.RunState) error

	// Close releases store resources.
	Close() error
}
