package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReplicationCursor tracks incremental progress for one collection: the
// last-seen replication key value under a fixed ordering discipline.
//
// Observe is monotonic: the cursor only ever advances to strictly greater
// values, regardless of the order values arrive in. This is the correctness
// backbone of incremental extraction.
type ReplicationCursor struct {
	// Collection is the collection this cursor belongs to.
	Collection string

	keyType ReplicationKeyType

	// set is false until the first successful Observe or a restore from state.
	set     bool
	lastStr string    // persisted form: RFC 3339 for timestamps, raw otherwise
	lastTS  time.Time // normalised instant, timestamp discipline only
}

// NewCursor creates an empty cursor for a collection.
// An invalid key type falls back to timestamp, matching the original
// default; Validate catches bad configuration before cursors are built.
func NewCursor(collection string, keyType ReplicationKeyType) *ReplicationCursor {
	if !keyType.Valid() {
		keyType = ReplicationKeyTimestamp
	}
	return &ReplicationCursor{Collection: collection, keyType: keyType}
}

// RestoreCursor builds a cursor from a persisted replication key value.
// An empty value yields a fresh cursor. A value that no longer parses under
// the configured discipline also yields a fresh cursor rather than failing
// the run; the collection is re-extracted from scratch.
func RestoreCursor(collection string, keyType ReplicationKeyType, value string) *ReplicationCursor {
	c := NewCursor(collection, keyType)
	if value == "" {
		return c
	}
	if err := c.Observe(value); err != nil {
		return NewCursor(collection, keyType)
	}
	return c
}

// KeyType returns the cursor's ordering discipline.
func (c *ReplicationCursor) KeyType() ReplicationKeyType {
	return c.keyType
}

// HasValue returns true once the cursor holds a replication key value.
func (c *ReplicationCursor) HasValue() bool {
	return c.set
}

// Value returns the persisted string form of the last observed value, or ""
// if the cursor is empty.
func (c *ReplicationCursor) Value() string {
	return c.lastStr
}

// FilterValue returns the value to use in a `key > cursor` query filter:
// a time.Time for the timestamp discipline, the raw string otherwise.
// Only meaningful when HasValue is true.
func (c *ReplicationCursor) FilterValue() any {
	if c.keyType == ReplicationKeyTimestamp {
		return c.lastTS
	}
	return c.lastStr
}

// Observe advances the cursor to v if v is strictly greater than the current
// value under the active ordering. Equal or smaller values are a no-op.
// Returns ErrUnorderableValue for values the discipline cannot compare;
// callers treat that as a soft condition.
func (c *ReplicationCursor) Observe(v any) error {
	switch c.keyType {
	case ReplicationKeyTimestamp:
		ts, err := parseInstant(v)
		if err != nil {
			return err
		}
		if !c.set || ts.After(c.lastTS) {
			c.set = true
			c.lastTS = ts
			c.lastStr = FormatTimestamp(ts)
		}
	case ReplicationKeyString:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrUnorderableValue, v)
		}
		if !c.set || s > c.lastStr {
			c.set = true
			c.lastStr = s
		}
	}
	return nil
}

// instantLayouts are the accepted textual timestamp forms, tried in order.
// Firestore itself returns time.Time; state files and string-typed document
// fields carry ISO-8601 text.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseInstant normalises a replication key value to a UTC instant.
func parseInstant(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range instantLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: cannot parse %q as timestamp", ErrUnorderableValue, s)
	default:
		return time.Time{}, fmt.Errorf("%w: expected timestamp, got %T", ErrUnorderableValue, v)
	}
}
