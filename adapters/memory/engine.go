// Package memory provides the in-memory storage engine.
package memory

import (
	"context"
	"sync"

	"github.com/gimlet2/metarest/core/resource"
	"github.com/gimlet2/metarest/errs"
	"github.com/gimlet2/metarest/ports"
)

// Engine stores records in a map keyed by id. Records are cloned on the way
// in and on the way out, so callers never share mutable data with the store.
// All operations are guarded by a RWMutex, making one instance safe to hand
// to multiple concurrent callers.
type Engine struct {
	mu      sync.RWMutex
	records map[string]resource.Record
}

// NewEngine creates an empty in-memory engine.
func NewEngine() *Engine {
	return &Engine{
		records: make(map[string]resource.Record),
	}
}

// Create stores a copy of the record and returns the record unchanged.
func (e *Engine) Create(ctx context.Context, rec resource.Record) (resource.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.records[rec.ID]; exists {
		return resource.Record{}, errs.InvalidOperationf("Resource with id '%s' already exists", rec.ID)
	}

	e.records[rec.ID] = rec.Clone()
	return rec, nil
}

// Get retrieves a record copy by id.
func (e *Engine) Get(ctx context.Context, id string) (resource.Record, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rec, ok := e.records[id]
	if !ok {
		return resource.Record{}, errs.NotFoundf("Resource with id '%s' not found", id)
	}
	return rec.Clone(), nil
}

// List returns copies of all records, in map iteration order.
func (e *Engine) List(ctx context.Context) ([]resource.Record, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]resource.Record, 0, len(e.records))
	for _, rec := range e.records {
		out = append(out, rec.Clone())
	}
	return out, nil
}

// Update replaces the record stored under id wholesale. The record is stored
// as given, keeping its own id field even when that differs from id.
func (e *Engine) Update(ctx context.Context, id string, rec resource.Record) (resource.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.records[id]; !ok {
		return resource.Record{}, errs.NotFoundf("Resource with id '%s' not found", id)
	}

	e.records[id] = rec.Clone()
	return rec, nil
}

// Delete removes a record by id.
func (e *Engine) Delete(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.records[id]; !ok {
		return errs.NotFoundf("Resource with id '%s' not found", id)
	}

	delete(e.records, id)
	return nil
}

// Filter returns copies of every record satisfying all predicates.
func (e *Engine) Filter(ctx context.Context, filters []resource.Filter) ([]resource.Record, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []resource.Record
	for _, rec := range e.records {
		if resource.MatchesAll(rec, filters) {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

// Len returns the number of stored records (for testing).
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

// Clear removes all records (for testing).
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.records = make(map[string]resource.Record)
}

// Ensure interface compliance.
var _ ports.Engine = (*Engine)(nil)
