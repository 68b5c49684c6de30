package notify

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Stats counts deliveries to one subscriber.
type Stats struct {
	Sent    uint64
	Dropped uint64
}

type subscriber[T any] struct {
	ch      chan<- T
	sent    atomic.Uint64
	dropped atomic.Uint64
}

// Bus is a fan-out publisher of values of type T. The zero value is not
// usable; create one with New. A Bus is safe for concurrent use.
type Bus[T any] struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber[T]
	published   atomic.Uint64
	closed      bool
}

// New returns an empty, open bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{subscribers: make(map[string]*subscriber[T])}
}

// Subscribe registers ch under id.
func (b *Bus[T]) Subscribe(id string, ch chan<- T) error {
	if ch == nil {
		return ErrNilChannel
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}
	if _, exists := b.subscribers[id]; exists {
		return ErrSubscriberExists
	}

	b.subscribers[id] = &subscriber[T]{ch: ch}
	return nil
}

// Unsubscribe removes the subscriber registered under id. The channel is
// not closed; it belongs to the caller.
func (b *Bus[T]) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[id]; !exists {
		return ErrSubscriberNotFound
	}
	delete(b.subscribers, id)
	return nil
}

// Publish offers v to every subscriber. It never blocks; full channels
// drop v. Publishing on a closed bus is a no-op.
func (b *Bus[T]) Publish(v T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	b.published.Add(1)

	for _, s := range b.subscribers {
		select {
		case s.ch <- v:
			s.sent.Add(1)
		default:
			s.dropped.Add(1)
		}
	}
}

// Published returns the number of Publish calls on the open bus.
func (b *Bus[T]) Published() uint64 {
	return b.published.Load()
}

// Stats returns the delivery counters for id.
func (b *Bus[T]) Stats(id string) (Stats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, exists := b.subscribers[id]
	if !exists {
		return Stats{}, ErrSubscriberNotFound
	}
	return Stats{Sent: s.sent.Load(), Dropped: s.dropped.Load()}, nil
}

// Subscribers returns the registered ids in sorted order.
func (b *Bus[T]) Subscribers() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]string, 0, len(b.subscribers))
	for id := range b.subscribers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close drops all subscribers. Further publishes are ignored.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	b.subscribers = nil
}
