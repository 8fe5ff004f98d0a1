package domain

// QueryFilter is a lower-bound filter on the replication key.
// The operator is always "strictly greater than".
type QueryFilter struct {
	// Field is the replication key field name.
	Field string
	// Value is the exclusive lower bound, in the key's native form
	// (time.Time for the timestamp discipline, string otherwise).
	Value any
}

// PageMarker identifies the last document of the previous page.
// Continuation queries start strictly after it, so pagination stays correct
// under concurrent inserts; offsets are never used.
type PageMarker struct {
	// DocumentID is the identifier of the last document seen.
	DocumentID string
	// OrderValue is that document's replication key value, present only when
	// the query orders by a replication key.
	OrderValue any
}

// PageRequest describes one ordered, filtered, bounded page query handed to
// the document client.
type PageRequest struct {
	// Collection is the target collection name.
	Collection string

	// OrderBy is the replication key to order ascending by; the document ID
	// is always the final tiebreak. Empty means order by document ID alone.
	OrderBy string

	// Filter is the optional replication key lower bound.
	Filter *QueryFilter

	// StartAfter is the continuation marker, nil for the first page.
	StartAfter *PageMarker

	// Limit bounds the page size. Always positive.
	Limit int
}
