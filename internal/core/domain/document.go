package domain

import "time"

// Document is one record as retrieved from Firestore: an identifier unique
// within its collection plus a field mapping of native values. Documents are
// ephemeral; they exist only for the duration of one extraction batch.
type Document struct {
	// ID is the document identifier within its collection.
	ID string

	// Fields holds the native field values as the client returned them.
	// Values may be timestamps, nested maps, arrays, binary payloads or
	// cross-document references; the coercion layer flattens them.
	Fields map[string]any
}

// Record is the externally emitted unit: a JSON-serialisable mapping derived
// from a Document. Every value reachable from a Record is null, boolean,
// number, string, a sequence of such values, or a string-keyed mapping of
// such values.
type Record map[string]any

// Reserved record fields added to every emitted record.
const (
	// FieldID carries the document identifier.
	FieldID = "_id"
	// FieldExtractedAt carries the wall-clock instant of conversion.
	FieldExtractedAt = "_extracted_at"
)

// TimestampFormat is the layout for FieldExtractedAt and for all coerced
// temporal values: RFC 3339 UTC with microsecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

// FormatTimestamp renders a temporal instant in the record timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
