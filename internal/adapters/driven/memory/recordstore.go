// Package memory provides in-memory implementations of the driven ports.
// They honour the same contracts as the remote adapters and back the
// service tests and dry runs without live network access.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// It supports the "=" operator, which is all the importer uses.
type RecordStore struct {
	mu      sync.Mutex
	nextID  int64
	records map[string][]map[string]any

	// FailCreate makes Create return an error for the given model.
	// Used by tests to exercise remote-failure paths.
	FailCreate map[string]error

	// CreateCalls counts Create invocations per model.
	CreateCalls map[string]int
}

// NewRecordStore creates an empty in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		nextID:      1,
		records:     make(map[string][]map[string]any),
		FailCreate:  make(map[string]error),
		CreateCalls: make(map[string]int),
	}
}

// SearchRead returns records matching every filter condition.
func (s *RecordStore) SearchRead(_ context.Context, model string, filter []driven.Condition, fields []string, limit int) ([]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []map[string]any
	for _, record := range s.records[model] {
		if !matches(record, filter) {
			continue
		}
		results = append(results, project(record, fields))
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results, nil
}

// Create stores a record and returns its ID.
func (s *RecordStore) Create(_ context.Context, model string, values map[string]any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.CreateCalls[model]++
	if err := s.FailCreate[model]; err != nil {
		return 0, err
	}

	record := make(map[string]any, len(values)+1)
	for k, v := range values {
		record[k] = v
	}
	id := s.nextID
	s.nextID++
	record["id"] = id

	s.records[model] = append(s.records[model], record)
	return id, nil
}

// Write updates fields on an existing record.
func (s *RecordStore) Write(_ context.Context, model string, id int64, values map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records[model] {
		if record["id"] == id {
			for k, v := range values {
				record[k] = v
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s id %d", domain.ErrNotFound, model, id)
}

// Unlink deletes records by ID.
func (s *RecordStore) Unlink(_ context.Context, model string, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := s.records[model][:0]
	for _, record := range s.records[model] {
		if id, ok := record["id"].(int64); ok && drop[id] {
			continue
		}
		kept = append(kept, record)
	}
	s.records[model] = kept
	return nil
}

// FieldsGet returns a minimal schema: every field seen on the model.
func (s *RecordStore) FieldsGet(_ context.Context, model string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schema := make(map[string]any)
	for _, record := range s.records[model] {
		for field := range record {
			schema[field] = map[string]any{"type": "char"}
		}
	}
	return schema, nil
}

// Count returns how many records a model holds.
func (s *RecordStore) Count(model string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records[model])
}

// Get returns the record with the given ID, or nil.
func (s *RecordStore) Get(model string, id int64) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records[model] {
		if record["id"] == id {
			return project(record, nil)
		}
	}
	return nil
}

// matches checks every condition against a record. Only "=" is supported.
func matches(record map[string]any, filter []driven.Condition) bool {
	for _, cond := range filter {
		if cond.Op != "=" {
			return false
		}
		if fmt.Sprint(record[cond.Field]) != fmt.Sprint(cond.Value) {
			return false
		}
	}
	return true
}

// project copies the requested fields (all fields when nil).
func project(record map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		out := make(map[string]any, len(record))
		for k, v := range record {
			out[k] = v
		}
		return out
	}

	out := make(map[string]any, len(fields)+1)
	out["id"] = record["id"]
	for _, field := range fields {
		if v, ok := record[field]; ok {
			out[field] = v
		}
	}
	return out
}
