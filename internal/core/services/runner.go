package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
	"github.com/custodia-labs/firetap-cli/internal/core/ports/driven"
	"github.com/custodia-labs/firetap-cli/internal/core/ports/driving"
	"github.com/custodia-labs/firetap-cli/internal/logger"
)

// Ensure RunCoordinator implements the driving port.
var _ driving.Extractor = (*RunCoordinator)(nil)

// RunCoordinator iterates the configured collections in order, drives each
// through the StreamExtractor and flushes state at page-boundary checkpoints.
// Collections run sequentially; their cursors are fully independent.
type RunCoordinator struct {
	specs      []domain.CollectionSpec
	pageSize   int
	fetcher    driven.DocumentFetcher
	stateStore driven.StateStore
	sink       driven.MessageSink
	extractor  *StreamExtractor
}

// NewRunCoordinator creates a coordinator. Specs must already be validated.
func NewRunCoordinator(
	specs []domain.CollectionSpec,
	pageSize int,
	fetcher driven.DocumentFetcher,
	stateStore driven.StateStore,
	sink driven.MessageSink,
) *RunCoordinator {
	return &RunCoordinator{
		specs:      specs,
		pageSize:   pageSize,
		fetcher:    fetcher,
		stateStore: stateStore,
		sink:       sink,
		extractor:  NewStreamExtractor(fetcher, sink),
	}
}

// Run extracts the named collection, or all collections when only is empty.
// A failed collection is reported and skipped; its cursor keeps the last
// checkpointed value so the next run resumes without skipping documents.
func (c *RunCoordinator) Run(ctx context.Context, only string) (*domain.RunResult, error) {
	specs, err := c.selectSpecs(only)
	if err != nil {
		return nil, err
	}

	state, err := c.stateStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	result := &domain.RunResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	logger.Info("run %s: extracting %d collections", result.RunID, len(specs))

	for i := range specs {
		spec := &specs[i]
		cursor := state.Cursor(spec)
		if cursor.HasValue() {
			logger.Info("%s: resuming where %s > %s", spec.Name, spec.ReplicationKey, cursor.Value())
		}

		checkpoint := func(cur *domain.ReplicationCursor) error {
			state.Merge(cur)
			if err := c.stateStore.Save(ctx, state); err != nil {
				return fmt.Errorf("save state: %w", err)
			}
			return c.sink.WriteState(state.Snapshot())
		}

		records, pages, err := c.extractor.Extract(ctx, spec, cursor, c.pageSize, checkpoint)
		cr := domain.CollectionResult{Name: spec.Name, Records: records, Pages: pages}
		if err != nil {
			if ctx.Err() != nil {
				result.Collections = append(result.Collections, cr)
				result.FinishedAt = time.Now()
				return result, err
			}
			cr.Error = err.Error()
			logger.Error("%s: aborted after %d records (last checkpoint: %q): %v",
				spec.Name, records, state.Snapshot()[spec.Name].ReplicationKeyValue, err)
			result.Collections = append(result.Collections, cr)
			continue
		}

		// Final checkpoint: also covers full-table collections, which emit
		// a state message even though their entry never changes.
		if err := checkpoint(cursor); err != nil {
			cr.Error = err.Error()
			result.Collections = append(result.Collections, cr)
			continue
		}

		cr.Completed = true
		result.Collections = append(result.Collections, cr)
		logger.Info("%s: extracted %d documents in %d pages", spec.Name, records, pages)
	}

	result.FinishedAt = time.Now()
	return result, nil
}

// Discover emits one schema message per configured collection.
func (c *RunCoordinator) Discover(ctx context.Context) error {
	for i := range c.specs {
		spec := &c.specs[i]
		schema := DiscoverSchema(ctx, c.fetcher, spec)
		if err := c.sink.WriteSchema(spec.Name, schema, []string{domain.FieldID}); err != nil {
			return fmt.Errorf("emit schema for %s: %w", spec.Name, err)
		}
	}
	return nil
}

// selectSpecs narrows the configured collections to the requested one.
func (c *RunCoordinator) selectSpecs(only string) ([]domain.CollectionSpec, error) {
	if only == "" {
		return c.specs, nil
	}
	for i := range c.specs {
		if c.specs[i].Name == only {
			return c.specs[i : i+1], nil
		}
	}
	return nil, fmt.Errorf("%w: collection %q", domain.ErrNotFound, only)
}
