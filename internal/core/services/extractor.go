package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/firetap-cli/internal/coerce"
	"github.com/custodia-labs/firetap-cli/internal/core/domain"
	"github.com/custodia-labs/firetap-cli/internal/core/ports/driven"
	"github.com/custodia-labs/firetap-cli/internal/logger"
)

// CheckpointFunc exposes the cursor's state to the coordinator after each
// converted page. Returning an error aborts the collection.
type CheckpointFunc func(cursor *domain.ReplicationCursor) error

// StreamExtractor drives one collection through fetch → convert → checkpoint
// until exhaustion. Pages are processed strictly in fetch order; a page is
// atomic, so a stop request only takes effect at a page boundary.
type StreamExtractor struct {
	fetcher driven.DocumentFetcher
	sink    driven.MessageSink

	// now is the wall clock for _extracted_at. Overridable in tests.
	now func() time.Time
}

// NewStreamExtractor creates an extractor over a fetcher and a record sink.
func NewStreamExtractor(fetcher driven.DocumentFetcher, sink driven.MessageSink) *StreamExtractor {
	return &StreamExtractor{
		fetcher: fetcher,
		sink:    sink,
		now:     time.Now,
	}
}

// Extract runs a collection to completion. Every fetched document is emitted
// exactly once; the cursor advances only through values it can order. The
// checkpoint callback fires after each page.
func (e *StreamExtractor) Extract(
	ctx context.Context,
	spec *domain.CollectionSpec,
	cursor *domain.ReplicationCursor,
	pageSize int,
	checkpoint CheckpointFunc,
) (records, pages int, err error) {
	planner := NewQueryPlanner(spec, cursor)

	for {
		if err := ctx.Err(); err != nil {
			return records, pages, err
		}

		limit := pageSize
		if spec.Limit > 0 {
			remaining := spec.Limit - records
			if remaining <= 0 {
				logger.Info("%s: extraction limit of %d reached", spec.Name, spec.Limit)
				return records, pages, nil
			}
			if remaining < limit {
				limit = remaining
			}
		}

		docs, err := e.fetcher.FetchPage(ctx, planner.Plan(limit))
		if err != nil {
			return records, pages, fmt.Errorf("%w: %s: %w", domain.ErrCollectionFailed, spec.Name, err)
		}
		if len(docs) == 0 {
			return records, pages, nil
		}

		logger.Debug("%s: processing page of %d documents (total: %d)",
			spec.Name, len(docs), records+len(docs))

		for i := range docs {
			rec := coerce.Document(&docs[i], e.now())
			if err := e.sink.WriteRecord(spec.Name, rec); err != nil {
				return records, pages, fmt.Errorf("%w: %s: emit record: %w",
					domain.ErrCollectionFailed, spec.Name, err)
			}
			records++
			e.observe(spec, cursor, docs[i].ID, rec)
		}
		pages++
		planner.Advance(&docs[len(docs)-1])

		if err := checkpoint(cursor); err != nil {
			return records, pages, fmt.Errorf("%w: %s: checkpoint: %w",
				domain.ErrCollectionFailed, spec.Name, err)
		}

		// A short page means the collection is exhausted.
		if len(docs) < limit {
			return records, pages, nil
		}
	}
}

// observe advances the cursor with a record's coerced replication key value.
// A missing key or an unorderable value is a soft condition: the record has
// already been emitted and the cursor stays put.
func (e *StreamExtractor) observe(spec *domain.CollectionSpec, cursor *domain.ReplicationCursor, docID string, rec domain.Record) {
	if !spec.Incremental() {
		return
	}
	value, ok := rec[spec.ReplicationKey]
	if !ok {
		logger.Warn("%s: document %s has no replication key %q", spec.Name, docID, spec.ReplicationKey)
		return
	}
	if err := cursor.Observe(value); err != nil {
		logger.Warn("%s: document %s: %v", spec.Name, docID, err)
	}
}
