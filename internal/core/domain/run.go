package domain

import "time"

// CollectionResult summarises one collection's extraction within a run.
type CollectionResult struct {
	// Name is the collection name.
	Name string
	// Records is the number of records emitted.
	Records int
	// Pages is the number of pages fetched.
	Pages int
	// Completed is true if the collection reached Done; false if it was
	// aborted by a collection-level error.
	Completed bool
	// Error is the failure message for an aborted collection.
	Error string
}

// RunResult is the overall outcome of one extraction run.
type RunResult struct {
	// RunID uniquely identifies the run in logs.
	RunID string
	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time
	// Collections holds per-collection outcomes in execution order.
	Collections []CollectionResult
}

// Failed returns the names of collections that did not complete.
func (r *RunResult) Failed() []string {
	var names []string
	for i := range r.Collections {
		if !r.Collections[i].Completed {
			names = append(names, r.Collections[i].Name)
		}
	}
	return names
}
