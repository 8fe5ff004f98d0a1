package services

import (
	"github.com/custodia-labs/firetap-cli/internal/core/domain"
)

// QueryPlanner builds the ordered, filtered, paginated queries for one
// collection. The replication key filter is fixed when the planner is
// created; continuation pages advance only the start-after marker, so the
// strict ">" filter can never skip documents that share a key value.
type QueryPlanner struct {
	spec   *domain.CollectionSpec
	filter *domain.QueryFilter
	marker *domain.PageMarker
}

// NewQueryPlanner creates a planner for a collection. The cursor is consulted
// once: full-table collections (no replication key) never apply a filter and
// re-extract everything on every run, which is intentional.
func NewQueryPlanner(spec *domain.CollectionSpec, cursor *domain.ReplicationCursor) *QueryPlanner {
	p := &QueryPlanner{spec: spec}
	if spec.Incremental() && cursor != nil && cursor.HasValue() {
		p.filter = &domain.QueryFilter{
			Field: spec.ReplicationKey,
			Value: cursor.FilterValue(),
		}
	}
	return p
}

// Plan returns the next page request, bounded to limit documents.
func (p *QueryPlanner) Plan(limit int) domain.PageRequest {
	req := domain.PageRequest{
		Collection: p.spec.Name,
		Filter:     p.filter,
		StartAfter: p.marker,
		Limit:      limit,
	}
	if p.spec.Incremental() {
		req.OrderBy = p.spec.ReplicationKey
	}
	return req
}

// Advance records the last document of a fetched page so the next Plan
// starts strictly after it.
func (p *QueryPlanner) Advance(last *domain.Document) {
	marker := &domain.PageMarker{DocumentID: last.ID}
	if p.spec.Incremental() {
		marker.OrderValue = last.Fields[p.spec.ReplicationKey]
	}
	p.marker = marker
}
