// Package app composes resource definitions with storage engines into
// managers, and manages collections of managers.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gimlet2/metarest/adapters/metrics"
	"github.com/gimlet2/metarest/core/resource"
	"github.com/gimlet2/metarest/core/schema"
	"github.com/gimlet2/metarest/core/validation"
	"github.com/gimlet2/metarest/errs"
	"github.com/gimlet2/metarest/ports"
)

// Manager binds one definition to one engine for its entire lifetime and
// validates every write before it reaches storage. Reads bypass validation.
// Errors surface verbatim from the validator or the engine; the manager adds
// no error kinds of its own and never retries.
type Manager struct {
	def     schema.ResourceDefinition
	engine  ports.Engine
	logger  zerolog.Logger
	metrics *metrics.Collector
	ids     ports.IDGenerator
}

// NewManager creates a manager over a definition and an engine.
func NewManager(def schema.ResourceDefinition, engine ports.Engine, logger zerolog.Logger) *Manager {
	return &Manager{
		def:    def,
		engine: engine,
		logger: logger.With().Str("resource", def.Name).Logger(),
	}
}

// Instrument attaches a metrics collector. Call before serving traffic.
func (m *Manager) Instrument(c *metrics.Collector) *Manager {
	m.metrics = c
	return m
}

// GenerateIDs attaches an id generator. Create mints an id for records that
// arrive without one; records carrying an id keep it.
func (m *Manager) GenerateIDs(g ports.IDGenerator) *Manager {
	m.ids = g
	return m
}

// Create validates the record and stores it. A validation failure
// short-circuits before storage is touched.
func (m *Manager) Create(ctx context.Context, rec resource.Record) (resource.Record, error) {
	start := time.Now()

	if rec.ID == "" && m.ids != nil {
		rec.ID = m.ids.New()
	}

	if err := validation.Validate(m.def, rec); err != nil {
		m.observe("create", start, err)
		return resource.Record{}, err
	}

	created, err := m.engine.Create(ctx, rec)
	m.observe("create", start, err)
	if err != nil {
		return resource.Record{}, err
	}

	m.logger.Debug().Str("id", created.ID).Msg("record created")
	return created, nil
}

// Get retrieves a record by id. Pure delegation; reads are unconstrained by
// the schema.
func (m *Manager) Get(ctx context.Context, id string) (resource.Record, error) {
	start := time.Now()
	rec, err := m.engine.Get(ctx, id)
	m.observe("get", start, err)
	return rec, err
}

// List retrieves all records.
func (m *Manager) List(ctx context.Context) ([]resource.Record, error) {
	start := time.Now()
	recs, err := m.engine.List(ctx)
	m.observe("list", start, err)
	if err == nil && m.metrics != nil {
		m.metrics.Records.WithLabelValues(m.def.Name).Set(float64(len(recs)))
	}
	return recs, err
}

// ListFiltered retrieves every record satisfying all filters.
func (m *Manager) ListFiltered(ctx context.Context, filters []resource.Filter) ([]resource.Record, error) {
	start := time.Now()
	recs, err := m.engine.Filter(ctx, filters)
	m.observe("filter", start, err)
	return recs, err
}

// Update validates the new full record and replaces the stored one.
func (m *Manager) Update(ctx context.Context, id string, rec resource.Record) (resource.Record, error) {
	start := time.Now()

	if err := validation.Validate(m.def, rec); err != nil {
		m.observe("update", start, err)
		return resource.Record{}, err
	}

	updated, err := m.engine.Update(ctx, id, rec)
	m.observe("update", start, err)
	if err != nil {
		return resource.Record{}, err
	}

	m.logger.Debug().Str("id", id).Msg("record updated")
	return updated, nil
}

// Delete removes a record by id. Pure delegation.
func (m *Manager) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.engine.Delete(ctx, id)
	m.observe("delete", start, err)
	if err == nil {
		m.logger.Debug().Str("id", id).Msg("record deleted")
	}
	return err
}

// Definition returns a copy of the definition. The manager's own copy is
// immutable for its lifetime.
func (m *Manager) Definition() schema.ResourceDefinition {
	return m.def.Clone()
}

func (m *Manager) observe(op string, start time.Time, err error) {
	if m.metrics == nil {
		return
	}
	m.metrics.OperationsTotal.WithLabelValues(m.def.Name, op, outcome(err)).Inc()
	m.metrics.OperationDuration.WithLabelValues(m.def.Name, op).Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	k, ok := errs.KindOf(err)
	if !ok {
		return "error"
	}
	switch k {
	case errs.KindValidation:
		return "validation_error"
	case errs.KindNotFound:
		return "not_found"
	case errs.KindInvalidOperation:
		return "conflict"
	case errs.KindStorage:
		return "storage_error"
	default:
		return "error"
	}
}
