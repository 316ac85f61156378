package app

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/gimlet2/metarest/core/schema"
	"github.com/gimlet2/metarest/ports"
)

// EngineFactory produces a storage engine for a newly loaded definition.
type EngineFactory func(def schema.ResourceDefinition) ports.Engine

// Loader loads resource definitions from a directory and registers a manager
// for each. With Watch it also picks up definition files added while
// running. Definitions for already-registered resources are ignored:
// a manager's schema never changes once constructed.
type Loader struct {
	dir      string
	registry *Registry
	factory  EngineFactory
	logger   zerolog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// NewLoader creates a loader over a definitions directory.
func NewLoader(dir string, registry *Registry, factory EngineFactory, logger zerolog.Logger) *Loader {
	return &Loader{
		dir:      dir,
		registry: registry,
		factory:  factory,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// LoadAll parses every definition file in the directory and registers a
// manager for each. It fails on the first malformed file or duplicate name.
func (l *Loader) LoadAll() error {
	defs, err := schema.ParseDir(l.dir)
	if err != nil {
		return err
	}

	for _, def := range defs {
		if err := l.register(def); err != nil {
			return err
		}
	}

	return nil
}

func (l *Loader) register(def schema.ResourceDefinition) error {
	m := NewManager(def, l.factory(def), l.logger)
	if err := l.registry.Register(m); err != nil {
		return fmt.Errorf("register %q: %w", def.Name, err)
	}
	return nil
}

// Watch starts watching the definitions directory. New definition files are
// parsed and registered; files for known resources are logged and skipped.
// Parse failures are logged, not fatal: a broken file must not take down
// resources that are already serving.
func (l *Loader) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(l.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	l.mu.Lock()
	l.watcher = watcher
	l.mu.Unlock()

	go l.watchLoop(watcher)

	l.logger.Info().Str("dir", l.dir).Msg("watching definitions directory")
	return nil
}

func (l *Loader) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !schema.IsDefinitionFile(filepath.Base(event.Name)) {
				continue
			}
			l.handleFile(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.logger.Error().Err(err).Msg("definitions watcher error")

		case <-l.stopCh:
			return
		}
	}
}

func (l *Loader) handleFile(path string) {
	def, err := schema.ParseFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("skipping malformed definition")
		return
	}

	if _, exists := l.registry.Get(def.Name); exists {
		l.logger.Warn().Str("resource", def.Name).Str("file", path).
			Msg("definition change ignored; schemas are immutable once registered")
		return
	}

	if err := l.register(def); err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to register definition")
	}
}

// Close stops watching. Safe to call when Watch was never started.
func (l *Loader) Close() error {
	close(l.stopCh)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.watcher != nil {
		return l.watcher.Close()
	}
	return nil
}
