package services

import (
	"context"
	"time"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
	"github.com/custodia-labs/firetap-cli/internal/core/ports/driven"
	"github.com/custodia-labs/firetap-cli/internal/logger"
)

// discoverySampleSize is how many documents are sampled per collection when
// no schema is configured.
const discoverySampleSize = 10

// DiscoverSchema builds a JSON-schema description for a collection. A
// configured schema wins; otherwise up to ten documents are sampled and field
// types inferred. Sampling failures degrade to the minimal schema with a
// warning, never an error. The schema is always open: Firestore collections
// are schemaless, so additional properties stay allowed.
func DiscoverSchema(ctx context.Context, fetcher driven.DocumentFetcher, spec *domain.CollectionSpec) map[string]any {
	props := map[string]any{
		domain.FieldID:          typeSchema("string"),
		domain.FieldExtractedAt: typeSchema("datetime"),
	}
	if spec.Incremental() {
		if spec.ReplicationKeyType == domain.ReplicationKeyTimestamp {
			props[spec.ReplicationKey] = typeSchema("datetime")
		} else {
			props[spec.ReplicationKey] = typeSchema("string")
		}
	}

	switch {
	case len(spec.Schema) > 0:
		logger.Info("%s: using configured schema", spec.Name)
		for field, typ := range spec.Schema {
			props[field] = typeSchema(typ)
		}
	default:
		docs, err := fetcher.SampleDocuments(ctx, spec.Name, discoverySampleSize)
		if err != nil {
			logger.Warn("%s: schema discovery failed, using minimal schema: %v", spec.Name, err)
			break
		}
		logger.Info("%s: sampled %d documents for schema discovery", spec.Name, len(docs))
		for i := range docs {
			for field, value := range docs[i].Fields {
				if _, seen := props[field]; !seen {
					props[field] = typeSchema(inferType(value))
				}
			}
		}
	}

	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": true,
	}
}

// inferType maps a native value to a schema type string.
// Nulls default to string since the field's real type is unknown.
func inferType(v any) string {
	switch v.(type) {
	case nil:
		return "string"
	case bool:
		return "boolean"
	case int, int64:
		return "integer"
	case float32, float64:
		return "number"
	case time.Time:
		return "datetime"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "string"
	}
}

// typeSchema renders a type string as a nullable JSON-schema fragment.
func typeSchema(typ string) map[string]any {
	switch typ {
	case "datetime":
		return map[string]any{"type": []string{"string", "null"}, "format": "date-time"}
	case "integer", "number", "boolean", "object", "array":
		return map[string]any{"type": []string{typ, "null"}}
	default:
		return map[string]any{"type": []string{"string", "null"}}
	}
}
