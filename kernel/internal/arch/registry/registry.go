// Package registry holds the kernel implementation registry.
//
// Every (operation, scalar kind, complex) triple may have several registered
// implementations at different SIMD levels. Architecture packages register
// their entries from init(); Lookup selects the highest-priority entry the
// given CPU supports. The generic package registers a priority 0 entry for
// every supported key, so a lookup for a supported key never comes back empty.
package registry

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Op identifies an elementwise operation.
type Op uint8

const (
	// OpInvalid is the zero Op.
	OpInvalid Op = iota
	// AddConst computes out = x + k.
	AddConst
	// SubConst computes out = x - k.
	SubConst
	// ConstSubX computes out = k - x.
	ConstSubX
	// MulConst computes out = x * k.
	MulConst
	// DivConst computes out = x / k.
	DivConst
	// ConstDivX computes out = k / x.
	ConstDivX
	// Angle computes the argument of a complex sample.
	Angle
)

var opNames = [...]string{
	OpInvalid: "invalid",
	AddConst:  "X+K",
	SubConst:  "X-K",
	ConstSubX: "K-X",
	MulConst:  "X*K",
	DivConst:  "X/K",
	ConstDivX: "K/X",
	Angle:     "angle",
}

// String returns the symbolic operation name, e.g. "X+K".
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "invalid"
}

// Key selects one kernel specialization.
type Key struct {
	Op      Op
	Kind    dtype.Kind
	Complex bool
}

// KeyOf builds the key for op on the scalar element type of dt.
func KeyOf(op Op, dt dtype.DType) Key {
	return Key{Op: op, Kind: dt.Kind, Complex: dt.Complex}
}

// ConstFn applies a binary-with-constant operation: dst[i] = src[i] op k.
type ConstFn[T any] func(dst, src []T, k T)

// AngleFn writes the angle of every complex input element to dst.
type AngleFn[In, Out any] func(dst []Out, src []In)

// Entry is one registered kernel implementation.
type Entry struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Key       Key

	// Fn holds a ConstFn[T] or AngleFn[In, Out] for the element type named by Key.
	Fn any
}

// OpRegistry stores available implementations.
type OpRegistry struct {
	mu      sync.RWMutex
	entries map[Key][]Entry
	sorted  bool
}

// Global is the default kernel registry.
var Global = &OpRegistry{}

// Register adds an implementation entry.
func (r *OpRegistry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[Key][]Entry)
	}
	r.entries[entry.Key] = append(r.entries[entry.Key], entry)
	r.sorted = false
}

// Lookup returns the highest-priority implementation of key supported by
// features, or nil when none is registered.
func (r *OpRegistry) Lookup(key Key, features cpu.Features) *Entry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := r.entries[key]
	for i := range candidates {
		entry := &candidates[i]
		if entry.Fn != nil && cpu.Supports(features, entry.SIMDLevel) {
			found := *entry
			return &found
		}
	}

	return nil
}

// Keys returns every key with at least one registered entry, in a stable order.
func (r *OpRegistry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.keysLocked()
}

// ListEntries returns a copy of all entries for tests/debugging.
func (r *OpRegistry) ListEntries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []Entry
	for _, k := range r.keysLocked() {
		entries = append(entries, r.entries[k]...)
	}
	return entries
}

// Reset clears all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}

func (r *OpRegistry) keysLocked() []Key {
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Op != b.Op {
			return a.Op < b.Op
		}
		if a.Complex != b.Complex {
			return !a.Complex
		}
		return a.Kind < b.Kind
	})
	return keys
}

// sortByPriority orders every key's entries by descending priority.
// Must be called with r.mu held (write lock).
func (r *OpRegistry) sortByPriority() {
	for _, list := range r.entries {
		for i := 1; i < len(list); i++ {
			key := list[i]
			j := i - 1
			for j >= 0 && list[j].Priority < key.Priority {
				list[j+1] = list[j]
				j--
			}
			list[j+1] = key
		}
	}
}
