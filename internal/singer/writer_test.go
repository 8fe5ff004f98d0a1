package singer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
)

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var msg map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &msg))
	return msg
}

func TestWriter_Record(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.now = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }

	err := w.WriteRecord("orders", domain.Record{"_id": "o-1", "total": float64(3)})

	require.NoError(t, err)
	msg := decodeLine(t, buf.String())
	assert.Equal(t, "RECORD", msg["type"])
	assert.Equal(t, "orders", msg["stream"])
	assert.Equal(t, "2025-07-01T09:00:00Z", msg["time_extracted"])
	assert.Equal(t, map[string]any{"_id": "o-1", "total": float64(3)}, msg["record"])
}

func TestWriter_State(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	err := w.WriteState(map[string]domain.CollectionState{
		"orders": {ReplicationKeyValue: "2025-01-01T00:04:00.000000Z"},
	})

	require.NoError(t, err)
	msg := decodeLine(t, buf.String())
	assert.Equal(t, "STATE", msg["type"])
	assert.Equal(t, map[string]any{
		"orders": map[string]any{"replication_key_value": "2025-01-01T00:04:00.000000Z"},
	}, msg["value"])
	assert.NotContains(t, msg, "stream")
	assert.NotContains(t, msg, "record")
}

func TestWriter_Schema(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	err := w.WriteSchema("orders", map[string]any{"type": "object"}, []string{"_id"})

	require.NoError(t, err)
	msg := decodeLine(t, buf.String())
	assert.Equal(t, "SCHEMA", msg["type"])
	assert.Equal(t, "orders", msg["stream"])
	assert.Equal(t, map[string]any{"type": "object"}, msg["schema"])
	assert.Equal(t, []any{"_id"}, msg["key_properties"])
}

func TestWriter_OneLinePerMessage(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteRecord("orders", domain.Record{"_id": "o-1"}))
	require.NoError(t, w.WriteState(map[string]domain.CollectionState{}))
	require.NoError(t, w.WriteRecord("orders", domain.Record{"_id": "o-2"}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.NotContains(t, line, "\n")
		decodeLine(t, line)
	}
}
