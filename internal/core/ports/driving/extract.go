// Package driving defines the inbound ports through which the CLI drives the
// extraction core.
package driving

import (
	"context"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
)

// Extractor runs extraction and discovery over the configured collections.
type Extractor interface {
	// Run extracts the named collection, or every configured collection when
	// only is empty. A collection-level failure does not abort the run; it
	// is reported in the result.
	Run(ctx context.Context, only string) (*domain.RunResult, error)

	// Discover emits a schema message per configured collection.
	Discover(ctx context.Context) error
}
