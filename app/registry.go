package app

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gimlet2/metarest/errs"
)

// Registry holds managers by resource name so multiple declaratively-defined
// resources can live side by side.
type Registry struct {
	mu       sync.RWMutex
	managers map[string]*Manager
	logger   zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		managers: make(map[string]*Manager),
		logger:   logger,
	}
}

// Register adds a manager under its resource name. A duplicate name is
// rejected; a registered manager cannot be replaced (definitions are
// immutable for a manager's lifetime).
func (r *Registry) Register(m *Manager) error {
	name := m.def.Name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.managers[name]; exists {
		return errs.InvalidOperationf("resource '%s' is already registered", name)
	}

	r.managers[name] = m
	r.logger.Info().Str("resource", name).Msg("resource registered")
	return nil
}

// Get returns the manager for a resource name.
func (r *Registry) Get(name string) (*Manager, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.managers[name]
	return m, ok
}

// Names returns the registered resource names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.managers))
	for name := range r.managers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
