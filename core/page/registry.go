package page

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a specialized decoder from a raw page buffer. It receives
// the same buffer that was given to Parse and decodes it independently.
type Factory func(buf []byte) (Decoder, error)

// Registry maps page types to the factories of their specialized decoders.
// Registration normally happens from init functions before any Parse call;
// the lock also makes late registration safe.
type Registry struct {
	mu        sync.RWMutex
	factories map[PageType]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[PageType]Factory)}
}

// Register associates f with t. Each type may be registered once.
func (r *Registry) Register(t PageType, f Factory) error {
	if f == nil {
		return fmt.Errorf("%w: type %s", ErrNilFactory, t)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[t]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, t)
	}
	r.factories[t] = f
	return nil
}

// MustRegister is like Register but panics on error. Intended for init.
func (r *Registry) MustRegister(t PageType, f Factory) {
	if err := r.Register(t, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory for t, if any.
func (r *Registry) Lookup(t PageType) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[t]
	return f, ok
}

// Types lists the registered page types in ascending order.
func (r *Registry) Types() []PageType {
	r.mu.RLock()
	types := make([]PageType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	r.mu.RUnlock()
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Parse decodes the fil header of buf and returns the registered specialized
// decoder for its type. Pages whose type has no registration, including
// unknown type codes, are returned as a generic *Page.
func (r *Registry) Parse(buf []byte) (Decoder, error) {
	p, err := New(buf)
	if err != nil {
		return nil, err
	}
	f, ok := r.Lookup(p.Type())
	if !ok {
		return p, nil
	}
	d, err := f(buf)
	if err != nil {
		return nil, fmt.Errorf("decode %s page %d: %w", p.Type(), p.Offset(), err)
	}
	return d, nil
}

// --- Default registry ---

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by the package
// level functions.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register associates f with t in the default registry.
func Register(t PageType, f Factory) error { return defaultRegistry.Register(t, f) }

// MustRegister registers f for t in the default registry, panicking on error.
func MustRegister(t PageType, f Factory) { defaultRegistry.MustRegister(t, f) }

// Lookup returns the factory registered for t in the default registry.
func Lookup(t PageType) (Factory, bool) { return defaultRegistry.Lookup(t) }

// Parse is Registry.Parse on the default registry.
func Parse(buf []byte) (Decoder, error) { return defaultRegistry.Parse(buf) }
