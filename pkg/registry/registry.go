package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/argtree/pkg/domain"
)

// Registry maps the names used in schema files to Go callbacks.
// Loaders resolve "execute", "exception", "help_func" and "parsers" references through it.
type Registry struct {
	mu         sync.RWMutex
	impls      map[string]domain.Implementation
	handlers   map[string]domain.ExceptionHandler
	helpers    map[string]domain.HelpFunc
	converters map[string]domain.Converter
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		impls:      make(map[string]domain.Implementation),
		handlers:   make(map[string]domain.ExceptionHandler),
		helpers:    make(map[string]domain.HelpFunc),
		converters: make(map[string]domain.Converter),
	}
}

// Register adds an implementation to the registry.
// If one with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn domain.Implementation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.impls[name] = fn
}

// RegisterHandler adds a named exception handler.
func (r *Registry) RegisterHandler(name string, fn domain.ExceptionHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = fn
}

// RegisterHelp adds a named help renderer.
func (r *Registry) RegisterHelp(name string, fn domain.HelpFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.helpers[name] = fn
}

// RegisterConverter adds a named converter.
func (r *Registry) RegisterConverter(name string, fn domain.Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[name] = fn
}

// Implementation looks up an implementation by name.
func (r *Registry) Implementation(name string) (domain.Implementation, error) {
	r.mu.RLock()
	fn, ok := r.impls[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoImplementation, name)
	}
	return fn, nil
}

// Handler looks up an exception handler by name.
func (r *Registry) Handler(name string) (domain.ExceptionHandler, error) {
	r.mu.RLock()
	fn, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: exception handler %s", domain.ErrNoImplementation, name)
	}
	return fn, nil
}

// Help looks up a help renderer by name.
func (r *Registry) Help(name string) (domain.HelpFunc, error) {
	r.mu.RLock()
	fn, ok := r.helpers[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: help renderer %s", domain.ErrNoImplementation, name)
	}
	return fn, nil
}

// Converter looks up a converter by name.
func (r *Registry) Converter(name string) (domain.Converter, error) {
	r.mu.RLock()
	fn, ok := r.converters[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: converter %s", domain.ErrNoImplementation, name)
	}
	return fn, nil
}

// Execute looks up an implementation by name and runs it against res.
func (r *Registry) Execute(ctx context.Context, name string, res *domain.Result) error {
	fn, err := r.Implementation(name)
	if err != nil {
		return err
	}
	return fn(ctx, res)
}

// Names returns the registered implementation names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.impls))
	for name := range r.impls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
