package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
	"github.com/custodia-labs/firetap-cli/internal/core/ports/driven"
	"github.com/custodia-labs/firetap-cli/internal/logger"
)

// Ensure Client implements the fetcher port.
var _ driven.DocumentFetcher = (*Client)(nil)

// fetchAttempts bounds retries of transient fetch failures before the error
// is surfaced as terminal.
const fetchAttempts = 3

// ClientConfig configures the Firestore connection.
type ClientConfig struct {
	// ProjectID is the GCP project. Required.
	ProjectID string
	// Credentials selects the service-account credential form.
	Credentials Credentials
	// RateLimit overrides the default fetch pacing when non-zero.
	RateLimit RateLimitConfig
}

// Client fetches document pages from Cloud Firestore.
type Client struct {
	fs      *firestore.Client
	limiter *RateLimiter
}

// NewClient connects to Firestore for the configured project.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("%w: project_id is required", domain.ErrInvalidConfig)
	}
	opts, err := cfg.Credentials.Options(ctx)
	if err != nil {
		return nil, err
	}
	fs, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect firestore: %w", WrapError(err))
	}
	return &Client{fs: fs, limiter: NewRateLimiter(cfg.RateLimit)}, nil
}

// FetchPage executes one page query, retrying transient failures before
// surfacing a terminal error.
func (c *Client) FetchPage(ctx context.Context, req domain.PageRequest) ([]domain.Document, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		docs, err := c.fetchPage(ctx, req)
		if err == nil {
			return docs, nil
		}
		if ctx.Err() != nil || !IsTransient(err) {
			return nil, WrapError(err)
		}
		lastErr = err
		if IsRateLimited(err) {
			c.limiter.RecordRateLimitError(0)
		}
		logger.Warn("%s: transient fetch failure (attempt %d/%d): %v",
			req.Collection, attempt, fetchAttempts, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return nil, fmt.Errorf("fetch page after %d attempts: %w", fetchAttempts, WrapError(lastErr))
}

func (c *Client) fetchPage(ctx context.Context, req domain.PageRequest) ([]domain.Document, error) {
	q := c.fs.Collection(req.Collection).Query

	// The document ID is always the final sort key, so pagination markers
	// are unambiguous even when replication key values repeat.
	if req.OrderBy != "" {
		q = q.OrderBy(req.OrderBy, firestore.Asc).OrderBy(firestore.DocumentID, firestore.Asc)
	} else {
		q = q.OrderBy(firestore.DocumentID, firestore.Asc)
	}

	if req.Filter != nil {
		q = q.Where(req.Filter.Field, ">", req.Filter.Value)
	}

	if m := req.StartAfter; m != nil {
		if req.OrderBy != "" {
			q = q.StartAfter(m.OrderValue, m.DocumentID)
		} else {
			q = q.StartAfter(m.DocumentID)
		}
	}

	return collect(q.Limit(req.Limit).Documents(ctx))
}

// SampleDocuments returns up to n documents for schema discovery.
func (c *Client) SampleDocuments(ctx context.Context, collection string, n int) ([]domain.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	docs, err := collect(c.fs.Collection(collection).Limit(n).Documents(ctx))
	if err != nil {
		return nil, WrapError(err)
	}
	return docs, nil
}

// Close releases the underlying client.
func (c *Client) Close() error {
	return c.fs.Close()
}

// collect drains a document iterator into domain documents, preserving order.
func collect(iter *firestore.DocumentIterator) ([]domain.Document, error) {
	defer iter.Stop()

	var docs []domain.Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, domain.Document{
			ID:     snap.Ref.ID,
			Fields: snap.Data(),
		})
	}
}
