// Package param holds live-mutable block parameters.
//
// A Cell stores one value that a processing loop reads while a control path
// rewrites it from another goroutine. Reads are atomic with respect to
// writes: a reader observes a whole value, before or after a given Set.
// Every Set publishes the stored value to all subscribers, even when it
// equals the previous one. Concurrent Sets are serialized, so subscribers
// see values in the order they were stored and the last notification
// matches Get once writers are done.
package param

import (
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-blocks/notify"
	"github.com/google/uuid"
)

// Cell is a concurrently readable and writable value with change
// notification. Create one with NewCell.
type Cell[T any] struct {
	mu  sync.Mutex // orders Store with Publish
	v   atomic.Pointer[T]
	bus *notify.Bus[T]
}

// NewCell returns a cell holding initial. Constructing a cell does not
// publish.
func NewCell[T any](initial T) *Cell[T] {
	c := &Cell[T]{bus: notify.New[T]()}
	c.v.Store(&initial)
	return c
}

// Get returns the current value. It does not take the writer lock.
func (c *Cell[T]) Get() T {
	return *c.v.Load()
}

// Set stores v and notifies every subscriber. Set never blocks on slow
// subscribers.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.v.Store(&v)
	c.bus.Publish(v)
}

// Subscription is one registered observer of a Cell.
type Subscription[T any] struct {
	// C receives the value of every Set after Subscribe returned.
	C <-chan T

	id   string
	cell *Cell[T]
}

// ID returns the subscription id.
func (s *Subscription[T]) ID() string { return s.id }

// Dropped returns how many notifications were lost because C was full.
func (s *Subscription[T]) Dropped() uint64 {
	st, err := s.cell.bus.Stats(s.id)
	if err != nil {
		return 0
	}
	return st.Dropped
}

// Close stops delivery to C. It is safe to call more than once.
func (s *Subscription[T]) Close() {
	_ = s.cell.bus.Unsubscribe(s.id)
}

// Subscribe registers a new observer whose channel holds up to buffer
// pending notifications. A buffer below 1 is raised to 1.
func (c *Cell[T]) Subscribe(buffer int) (*Subscription[T], error) {
	if buffer < 1 {
		buffer = 1
	}

	ch := make(chan T, buffer)
	id := uuid.New().String()
	if err := c.bus.Subscribe(id, ch); err != nil {
		return nil, err
	}

	return &Subscription[T]{C: ch, id: id, cell: c}, nil
}

// Notify registers an externally owned channel under id. Use Unsubscribe
// with the same id to stop delivery.
func (c *Cell[T]) Notify(id string, ch chan<- T) error {
	return c.bus.Subscribe(id, ch)
}

// Unsubscribe removes the observer registered by Notify.
func (c *Cell[T]) Unsubscribe(id string) error {
	return c.bus.Unsubscribe(id)
}

// Notifications returns the number of Set calls since construction.
func (c *Cell[T]) Notifications() uint64 {
	return c.bus.Published()
}

// Close detaches every observer. The value stays readable and writable.
func (c *Cell[T]) Close() {
	c.bus.Close()
}
