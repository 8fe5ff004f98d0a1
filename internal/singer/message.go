// Package singer frames extraction output as Singer-style JSON lines:
// RECORD messages carry documents, STATE messages carry checkpoint
// snapshots, SCHEMA messages carry discovered collection schemas.
package singer

import (
	"time"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
)

// Message types.
const (
	TypeRecord = "RECORD"
	TypeState  = "STATE"
	TypeSchema = "SCHEMA"
)

// Message is one output line. Fields are populated per message type and
// omitted otherwise.
type Message struct {
	Type          string         `json:"type"`
	Stream        string         `json:"stream,omitempty"`
	Record        domain.Record  `json:"record,omitempty"`
	TimeExtracted *time.Time     `json:"time_extracted,omitempty"`
	Value         any            `json:"value,omitempty"`
	Schema        map[string]any `json:"schema,omitempty"`
	KeyProperties []string       `json:"key_properties,omitempty"`
}
