// Package coerce converts native Firestore field values into the
// JSON-serialisable shape records are emitted in. Conversion is total: every
// value the client can return maps to a record-safe value, and unknown types
// fall back to their string representation rather than failing.
package coerce

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/genproto/googleapis/type/latlng"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
)

// Value converts a single native value to its record-safe equivalent.
// Nested maps and arrays are converted depth-first; array order is preserved.
// Pure function of its input.
func Value(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case bool, string, int, int64, float64, float32:
		return t
	case time.Time:
		return domain.FormatTimestamp(t)
	case []byte:
		// Lossy UTF-8: invalid sequences become replacement runes, so
		// binary payloads still produce a deterministic string.
		return strings.ToValidUTF8(string(t), "�")
	case *firestore.DocumentRef:
		if t == nil {
			return nil
		}
		// The referenced document's path, never its contents.
		return t.Path
	case *latlng.LatLng:
		if t == nil {
			return nil
		}
		return map[string]any{
			"latitude":  t.GetLatitude(),
			"longitude": t.GetLongitude(),
		}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = Value(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = Value(child)
		}
		return out
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Document converts a Document into a Record: the coerced fields merged at
// the top level plus the _id and _extracted_at envelope. Document fields
// named like the envelope do not override it.
func Document(doc *domain.Document, extractedAt time.Time) domain.Record {
	rec := make(domain.Record, len(doc.Fields)+2)
	for k, v := range doc.Fields {
		rec[k] = Value(v)
	}
	rec[domain.FieldID] = doc.ID
	rec[domain.FieldExtractedAt] = domain.FormatTimestamp(extractedAt)
	return rec
}
