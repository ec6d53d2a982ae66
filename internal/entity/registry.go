package entity

import (
	"fmt"
	"sort"
	"sync"

	"formwork/internal/host"
)

// ============================================================
// Kind Registry
// ============================================================

// Constructor builds an entity of one kind from a host element; el may be
// nil for a detached entity.
type Constructor func(el host.Element, opts ...Option) Instance

// Registry maps kind names to constructors.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{
		ctors: make(map[string]Constructor),
	}
}

// Register adds the constructor for kind, replacing any earlier one.
func (r *Registry) Register(kind string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ctors[kind] = ctor
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.ctors))
	for k := range r.ctors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Construct builds an entity of kind.
func (r *Registry) Construct(kind string, el host.Element, opts ...Option) (Instance, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[kind]
	r.mu.RUnlock()

	if !ok || ctor == nil {
		return nil, &DeclarationError{Kind: kind, Reason: "no constructor registered"}
	}
	return ctor(el, opts...), nil
}

// Clone duplicates src's host element through dup when src is bound,
// constructs a new entity of the same kind on the duplicate and copies every
// parameter value across by name. A detached src yields a detached clone.
func (r *Registry) Clone(src Instance, dup host.Duplicator, opts ...Option) (Instance, error) {
	base := src.Base()

	var el host.Element
	if base.Bound() {
		if dup == nil {
			return nil, fmt.Errorf("clone %s: no duplication service", base.Kind())
		}
		d, err := dup.Duplicate(base.Element())
		if err != nil {
			return nil, fmt.Errorf("clone %s: duplicate element %d: %w", base.Kind(), base.Element().ID(), err)
		}
		el = d
	}

	clone, err := r.Construct(base.Kind(), el, opts...)
	if err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	if err := CopyValues(clone.Base(), base); err != nil {
		return nil, fmt.Errorf("clone %s: %w", base.Kind(), err)
	}
	return clone, nil
}
