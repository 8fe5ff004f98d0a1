package domain

import "fmt"

// ReplicationKeyType selects the ordering discipline for a replication key.
type ReplicationKeyType string

const (
	// ReplicationKeyTimestamp orders values as temporal instants.
	ReplicationKeyTimestamp ReplicationKeyType = "timestamp"
	// ReplicationKeyString orders values lexicographically.
	ReplicationKeyString ReplicationKeyType = "string"
)

// Valid reports whether the key type is a known discipline.
func (t ReplicationKeyType) Valid() bool {
	return t == ReplicationKeyTimestamp || t == ReplicationKeyString
}

// CollectionSpec is the static description of one collection to extract.
type CollectionSpec struct {
	// Name is the Firestore collection name.
	Name string

	// ReplicationKey is the field used for incremental extraction.
	// Empty means full-table: the whole collection is re-extracted each run.
	ReplicationKey string

	// ReplicationKeyType is the ordering discipline for the replication key.
	// Defaults to timestamp when a key is set but no type is configured.
	ReplicationKeyType ReplicationKeyType

	// Limit caps the number of records extracted per run. Zero means no cap.
	Limit int

	// Schema optionally maps field names to declared types, bypassing
	// sampling during discovery.
	Schema map[string]string
}

// Incremental reports whether the collection uses a replication key.
func (s *CollectionSpec) Incremental() bool {
	return s.ReplicationKey != ""
}

// Validate checks the spec for configuration errors.
func (s *CollectionSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: collection name is required", ErrInvalidConfig)
	}
	if s.ReplicationKeyType != "" && !s.ReplicationKeyType.Valid() {
		return fmt.Errorf("%w: collection %q: unknown replication key type %q",
			ErrInvalidConfig, s.Name, s.ReplicationKeyType)
	}
	if s.Limit < 0 {
		return fmt.Errorf("%w: collection %q: limit must not be negative", ErrInvalidConfig, s.Name)
	}
	return nil
}

// ValidateSpecs validates a set of specs and rejects duplicate names.
func ValidateSpecs(specs []CollectionSpec) error {
	seen := make(map[string]struct{}, len(specs))
	for i := range specs {
		if err := specs[i].Validate(); err != nil {
			return err
		}
		if _, dup := seen[specs[i].Name]; dup {
			return fmt.Errorf("%w: duplicate collection %q", ErrInvalidConfig, specs[i].Name)
		}
		seen[specs[i].Name] = struct{}{}
	}
	return nil
}
