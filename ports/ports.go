// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"

	"github.com/gimlet2/metarest/core/resource"
)

// Engine is the storage capability behind a resource manager. One engine
// owns one keyspace of records; ids are opaque and unique within it.
// Implementations must be safe for concurrent use.
type Engine interface {
	// Create stores a copy of the record and returns it unchanged.
	// Fails with an invalid-operation error if the id already exists.
	Create(ctx context.Context, rec resource.Record) (resource.Record, error)

	// Get retrieves a record copy by id. Fails with not-found if absent.
	Get(ctx context.Context, id string) (resource.Record, error)

	// List retrieves all records. No ordering guarantee.
	List(ctx context.Context) ([]resource.Record, error)

	// Update replaces the record stored under id wholesale; fields absent
	// from rec are dropped, not preserved, and rec is stored under id with
	// its own id field intact. Fails with not-found if absent.
	Update(ctx context.Context, id string, rec resource.Record) (resource.Record, error)

	// Delete removes a record. Fails with not-found if absent.
	Delete(ctx context.Context, id string) error

	// Filter returns every record satisfying all predicates.
	Filter(ctx context.Context, filters []resource.Filter) ([]resource.Record, error)
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}
