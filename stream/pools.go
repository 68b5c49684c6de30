package stream

import (
	"reflect"
	"sync"

	"github.com/cwbudde/algo-blocks/buffer"
)

// pools holds one *buffer.Pool[T] per element type.
var pools sync.Map

func poolFor[T any]() *buffer.Pool[T] {
	key := reflect.TypeFor[T]()
	if p, ok := pools.Load(key); ok {
		return p.(*buffer.Pool[T])
	}
	p, _ := pools.LoadOrStore(key, buffer.NewPool[T]())
	return p.(*buffer.Pool[T])
}
