package driven

import (
	"github.com/custodia-labs/firetap-cli/internal/core/domain"
)

// MessageSink consumes the extraction output stream: one call per record in
// emission order, plus state snapshots at checkpoint boundaries and schema
// descriptions during discovery. Implementations frame each call as a
// structured output line.
type MessageSink interface {
	// WriteRecord emits one record for a collection.
	WriteRecord(collection string, rec domain.Record) error

	// WriteState emits a checkpoint snapshot of the run state.
	WriteState(state map[string]domain.CollectionState) error

	// WriteSchema emits a collection's discovered or configured schema.
	WriteSchema(collection string, schema map[string]any, keyProperties []string) error
}
