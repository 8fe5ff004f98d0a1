package domain

// CollectionState is the persisted progress for one collection.
type CollectionState struct {
	// ReplicationKeyValue is the last checkpointed replication key value.
	// Null/empty means no progress yet.
	ReplicationKeyValue string `json:"replication_key_value"`
}

// RunState is the full persisted state for a run: one entry per collection.
// A run owns exactly one RunState instance; it is passed explicitly through
// the coordinator rather than held as ambient global state.
type RunState struct {
	// Collections maps collection name to its checkpointed state.
	// Absence of an entry means "extract the full collection from scratch".
	Collections map[string]CollectionState `json:"-"`
}

// NewRunState creates an empty RunState.
func NewRunState() *RunState {
	return &RunState{Collections: make(map[string]CollectionState)}
}

// Cursor builds a ReplicationCursor for a collection from persisted state,
// or a fresh one if the collection has no entry.
func (s *RunState) Cursor(spec *CollectionSpec) *ReplicationCursor {
	cs, ok := s.Collections[spec.Name]
	if !ok {
		return NewCursor(spec.Name, spec.ReplicationKeyType)
	}
	return RestoreCursor(spec.Name, spec.ReplicationKeyType, cs.ReplicationKeyValue)
}

// Merge writes a cursor's current value into the state, touching only that
// collection's entry. Merging an empty cursor or a value that does not
// exceed the stored one is a no-op, consistent with cursor monotonicity.
func (s *RunState) Merge(cursor *ReplicationCursor) {
	if cursor == nil || !cursor.HasValue() {
		return
	}
	if s.Collections == nil {
		s.Collections = make(map[string]CollectionState)
	}
	if prev, ok := s.Collections[cursor.Collection]; ok && prev.ReplicationKeyValue != "" {
		// Re-order through a cursor so both disciplines compare correctly.
		check := RestoreCursor(cursor.Collection, cursor.KeyType(), prev.ReplicationKeyValue)
		if check.HasValue() {
			_ = check.Observe(cursor.FilterValue())
			if check.Value() == prev.ReplicationKeyValue {
				return
			}
		}
	}
	s.Collections[cursor.Collection] = CollectionState{ReplicationKeyValue: cursor.Value()}
}

// Snapshot returns a copy of the state map for emission at a checkpoint.
func (s *RunState) Snapshot() map[string]CollectionState {
	out := make(map[string]CollectionState, len(s.Collections))
	for name, cs := range s.Collections {
		out[name] = cs
	}
	return out
}
