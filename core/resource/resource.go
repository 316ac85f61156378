// Package resource provides the record type held by storage engines and the
// filter predicates used to query them.
package resource

import (
	"github.com/gimlet2/metarest/core/value"
)

// Record is one resource instance: an opaque caller-supplied id plus an open
// mapping from field name to dynamic value.
type Record struct {
	ID   string                 `json:"id"`
	Data map[string]value.Value `json:"data"`
}

// New creates an empty record with the given id.
func New(id string) Record {
	return Record{ID: id, Data: make(map[string]value.Value)}
}

// With sets a field and returns the record, for fluent construction.
func (r Record) With(name string, v value.Value) Record {
	if r.Data == nil {
		r.Data = make(map[string]value.Value)
	}
	r.Data[name] = v
	return r
}

// Get returns the value of a field.
func (r Record) Get(name string) (value.Value, bool) {
	v, ok := r.Data[name]
	return v, ok
}

// Clone returns a deep copy. Engines clone on every read and write so callers
// and the store never share mutable data.
func (r Record) Clone() Record {
	out := Record{ID: r.ID}
	if r.Data != nil {
		out.Data = make(map[string]value.Value, len(r.Data))
		for k, v := range r.Data {
			out.Data[k] = v.Clone()
		}
	}
	return out
}

// Equal reports whether two records have the same id and the same data.
func (r Record) Equal(other Record) bool {
	if r.ID != other.ID || len(r.Data) != len(other.Data) {
		return false
	}
	for k, v := range r.Data {
		ov, ok := other.Data[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
