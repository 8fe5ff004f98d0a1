package singer

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
	"github.com/custodia-labs/firetap-cli/internal/core/ports/driven"
)

// Ensure Writer implements the sink port.
var _ driven.MessageSink = (*Writer)(nil)

// Writer emits messages as JSON lines to a single stream, in call order.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder

	// now is the wall clock for time_extracted. Overridable in tests.
	now func() time.Time
}

// NewWriter creates a message writer over w, typically os.Stdout.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w), now: time.Now}
}

// WriteRecord emits a RECORD message for a collection.
func (w *Writer) WriteRecord(collection string, rec domain.Record) error {
	ts := w.now().UTC()
	return w.write(Message{
		Type:          TypeRecord,
		Stream:        collection,
		Record:        rec,
		TimeExtracted: &ts,
	})
}

// WriteState emits a STATE message wrapping the checkpoint snapshot.
func (w *Writer) WriteState(state map[string]domain.CollectionState) error {
	return w.write(Message{Type: TypeState, Value: state})
}

// WriteSchema emits a SCHEMA message for a collection.
func (w *Writer) WriteSchema(collection string, schema map[string]any, keyProperties []string) error {
	return w.write(Message{
		Type:          TypeSchema,
		Stream:        collection,
		Schema:        schema,
		KeyProperties: keyProperties,
	})
}

func (w *Writer) write(msg Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(msg); err != nil {
		return fmt.Errorf("encode %s message: %w", msg.Type, err)
	}
	return nil
}
