package stream

import (
	"fmt"

	"github.com/cwbudde/algo-blocks/dtype"
)

// Pipe is a Queue attached to a block, with the element types erased.
type Pipe interface {
	Block() Block

	// Push converts values to the block's input element type and writes
	// them. values is a flat element sequence; it returns the number of
	// elements accepted, or the conversion error of the first bad value.
	Push(values []any) (int, error)

	// Step runs the block once.
	Step() (consumed, produced int)

	// Pull drains the produced elements.
	Pull() []any

	// Free returns how many more input samples fit.
	Free() int

	Release()
}

// Binder is implemented by blocks that can create a Pipe for their own
// element types.
type Binder interface {
	Bind(capacity int) (Pipe, error)
}

// Bind attaches a new Pipe of capacity samples to b.
func Bind(b Block, capacity int) (Pipe, error) {
	binder, ok := b.(Binder)
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot bind a pipe", ErrPortType, b)
	}
	return binder.Bind(capacity)
}

type queuePipe[In, Out dtype.Element] struct {
	block Block
	q     *Queue[In, Out]
}

// NewPipe creates a Queue for b's descriptors, attaches it and returns it
// as a Pipe. Blocks use it to implement Binder.
func NewPipe[In, Out dtype.Element](b Block, capacity int) (Pipe, error) {
	q := NewQueueFor[In, Out](b, capacity)
	if err := Attach[In, Out](b, q); err != nil {
		q.Release()
		return nil, err
	}
	return &queuePipe[In, Out]{block: b, q: q}, nil
}

func (p *queuePipe[In, Out]) Block() Block { return p.block }

func (p *queuePipe[In, Out]) Push(values []any) (int, error) {
	elems := make([]In, len(values))
	for i, v := range values {
		x, err := dtype.Convert[In](v)
		if err != nil {
			return 0, fmt.Errorf("stream: element %d: %w", i, err)
		}
		elems[i] = x
	}
	return p.q.Write(elems), nil
}

func (p *queuePipe[In, Out]) Step() (int, int) { return p.block.Work() }

func (p *queuePipe[In, Out]) Pull() []any {
	out := p.q.Drain()
	vals := make([]any, len(out))
	for i, v := range out {
		vals[i] = v
	}
	return vals
}

func (p *queuePipe[In, Out]) Free() int { return p.q.Free() }

func (p *queuePipe[In, Out]) Release() { p.q.Release() }
