package driven

import (
	"context"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
)

// DocumentFetcher executes one page query against the document database.
// Implementations are expected to retry transient failures internally and
// surface only terminal errors. The returned slice preserves query order and
// may be empty when the collection is exhausted.
type DocumentFetcher interface {
	// FetchPage runs the described query and returns at most req.Limit
	// documents.
	FetchPage(ctx context.Context, req domain.PageRequest) ([]domain.Document, error)

	// SampleDocuments returns up to n documents from a collection, in no
	// particular order. Used for schema discovery.
	SampleDocuments(ctx context.Context, collection string, n int) ([]domain.Document, error)

	// Close releases client resources.
	Close() error
}
