package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
	"github.com/custodia-labs/firetap-cli/internal/core/ports/driven"
)

// fakeFetcher serves pages from an in-memory document list, honouring the
// filter, the start-after marker and the limit the way the real client does.
// Documents must be stored in query order.
type fakeFetcher struct {
	collections map[string][]domain.Document

	// failOnCall makes the nth FetchPage call (1-based) return failErr.
	failOnCall int
	failErr    error

	sampleErr error

	fetchCalls  int
	sampleCalls int
	requests    []domain.PageRequest
}

var _ driven.DocumentFetcher = (*fakeFetcher)(nil)

func (f *fakeFetcher) FetchPage(_ context.Context, req domain.PageRequest) ([]domain.Document, error) {
	f.fetchCalls++
	f.requests = append(f.requests, req)
	if f.failOnCall > 0 && f.fetchCalls == f.failOnCall {
		if f.failErr != nil {
			return nil, f.failErr
		}
		return nil, errors.New("fetch failed")
	}

	docs := f.collections[req.Collection]
	var out []domain.Document
	started := req.StartAfter == nil
	for i := range docs {
		if !started {
			if docs[i].ID == req.StartAfter.DocumentID {
				started = true
			}
			continue
		}
		if req.Filter != nil && !greater(docs[i].Fields[req.Filter.Field], req.Filter.Value) {
			continue
		}
		out = append(out, docs[i])
		if len(out) == req.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeFetcher) SampleDocuments(_ context.Context, collection string, n int) ([]domain.Document, error) {
	f.sampleCalls++
	if f.sampleErr != nil {
		return nil, f.sampleErr
	}
	docs := f.collections[collection]
	if len(docs) > n {
		docs = docs[:n]
	}
	return docs, nil
}

func (f *fakeFetcher) Close() error { return nil }

// greater compares a document field value against a filter bound.
func greater(v, bound any) bool {
	switch b := bound.(type) {
	case time.Time:
		ts, ok := v.(time.Time)
		return ok && ts.After(b)
	case string:
		s, ok := v.(string)
		return ok && s > b
	default:
		return false
	}
}

// mockSink records every emitted message in order.
type mockSink struct {
	records []emittedRecord
	states  []map[string]domain.CollectionState
	schemas []emittedSchema

	recordErr error
	stateErr  error
	schemaErr error
}

type emittedRecord struct {
	collection string
	record     domain.Record
}

type emittedSchema struct {
	collection    string
	schema        map[string]any
	keyProperties []string
}

var _ driven.MessageSink = (*mockSink)(nil)

func (s *mockSink) WriteRecord(collection string, rec domain.Record) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.records = append(s.records, emittedRecord{collection: collection, record: rec})
	return nil
}

func (s *mockSink) WriteState(state map[string]domain.CollectionState) error {
	if s.stateErr != nil {
		return s.stateErr
	}
	s.states = append(s.states, state)
	return nil
}

func (s *mockSink) WriteSchema(collection string, schema map[string]any, keyProperties []string) error {
	if s.schemaErr != nil {
		return s.schemaErr
	}
	s.schemas = append(s.schemas, emittedSchema{collection: collection, schema: schema, keyProperties: keyProperties})
	return nil
}

// recordIDs extracts the _id of every record emitted for a collection.
func (s *mockSink) recordIDs(collection string) []string {
	var ids []string
	for _, r := range s.records {
		if r.collection == collection {
			ids = append(ids, r.record[domain.FieldID].(string))
		}
	}
	return ids
}

// mockStateStore keeps state in memory and counts saves.
type mockStateStore struct {
	state *domain.RunState

	loadErr error
	saveErr error

	// failSaveOn makes the nth Save call (1-based) return saveErr.
	failSaveOn int
	saveCalls  int

	// saved holds a snapshot of the state after each successful Save.
	saved []map[string]domain.CollectionState
}

var _ driven.StateStore = (*mockStateStore)(nil)

func (m *mockStateStore) Load(context.Context) (*domain.RunState, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.state == nil {
		m.state = domain.NewRunState()
	}
	return m.state, nil
}

func (m *mockStateStore) Save(_ context.Context, state *domain.RunState) error {
	m.saveCalls++
	if m.saveErr != nil && (m.failSaveOn == 0 || m.saveCalls == m.failSaveOn) {
		return m.saveErr
	}
	m.state = state
	m.saved = append(m.saved, state.Snapshot())
	return nil
}

func (m *mockStateStore) Close() error { return nil }

// lastSaved returns the most recent successfully saved snapshot.
func (m *mockStateStore) lastSaved() map[string]domain.CollectionState {
	if len(m.saved) == 0 {
		return nil
	}
	return m.saved[len(m.saved)-1]
}
