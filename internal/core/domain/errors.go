package domain

import "errors"

// Domain errors represent extraction-level failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidConfig indicates a configuration error (empty collection
	// name, unknown replication key type). Fatal before extraction begins.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnorderableValue indicates a replication key value that cannot be
	// compared under the cursor's ordering discipline. Soft condition: the
	// record is still emitted, the cursor is unaffected.
	ErrUnorderableValue = errors.New("unorderable replication key value")

	// ErrCollectionFailed indicates a collection-level extraction error.
	// The collection's remaining pages are abandoned; other collections
	// still run.
	ErrCollectionFailed = errors.New("collection extraction failed")
)
