// Package factory maps host block names to block constructors.
//
// The default registry knows the two block families:
//
//	/comms/const_arithmetic(dtype, operation, constant)
//	/comms/angle(dtype)
//
// Parameters arrive as strings, the way a host passes them from its own
// configuration. Missing parameters take the defaults listed on each
// factory.
package factory

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/cwbudde/algo-blocks/block"
)

// Factory builds one block from its parameters.
type Factory func(p Params, opts ...block.Option) (block.Processor, error)

// Entry describes one registered factory.
type Entry struct {
	Name string

	// Args names the positional arguments in call order.
	Args []string

	// Defaults holds the value used for each missing argument.
	Defaults map[string]string

	Factory Factory
}

var (
	// ErrUnknownType is returned for unregistered block names.
	ErrUnknownType = errors.New("factory: unknown block type")

	// ErrBadParam is returned for malformed or invalid parameters.
	ErrBadParam = errors.New("factory: bad parameter")

	errDuplicateType = errors.New("factory: duplicate block type")
)

// Registry maps block names to their factories. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a factory entry.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" {
		return errors.New("factory: empty block type")
	}
	if e.Factory == nil {
		return errors.New("factory: nil factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.Name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateType, e.Name)
	}
	r.entries[e.Name] = e
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(e Entry) {
	if err := r.Register(e); err != nil {
		panic(err.Error())
	}
}

// Lookup returns the entry for name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	return e, ok
}

// Names returns the registered block names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the block named by p.Type.
func (r *Registry) Build(p Params, opts ...block.Option) (block.Processor, error) {
	e, ok := r.Lookup(p.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, p.Type)
	}

	merged := Params{ID: p.ID, Type: p.Type, Args: make(map[string]string, len(e.Defaults))}
	for k, v := range e.Defaults {
		merged.Args[k] = v
	}
	for k, v := range p.Args {
		if !slices.Contains(e.Args, k) {
			return nil, fmt.Errorf("%w: %s has no argument %q", ErrBadParam, p.Type, k)
		}
		if v != "" {
			merged.Args[k] = v
		}
	}

	return e.Factory(merged, opts...)
}

// BuildCall parses a call expression with ParseCall and builds it.
func (r *Registry) BuildCall(call string, opts ...block.Option) (block.Processor, error) {
	p, err := ParseCall(call, func(typ string) []string {
		e, _ := r.Lookup(typ)
		return e.Args
	})
	if err != nil {
		return nil, err
	}
	return r.Build(p, opts...)
}
