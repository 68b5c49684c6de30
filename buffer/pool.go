package buffer

import "sync"

// Pool provides sync.Pool-based Buffer reuse for one element type.
type Pool[T any] struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return &Buffer[T]{}
			},
		},
	}
}

// Get returns an empty, zeroed Buffer of exactly capacity elements. A
// pooled backing array larger than capacity is resliced, not exposed.
// Callers must return it via Put when done.
func (p *Pool[T]) Get(capacity int) *Buffer[T] {
	capacity = max(capacity, 0)
	b := p.pool.Get().(*Buffer[T])
	if cap(b.data) < capacity {
		b.data = make([]T, capacity)
	} else {
		b.data = b.data[:capacity]
	}
	b.Reset()
	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool[T]) Put(b *Buffer[T]) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
