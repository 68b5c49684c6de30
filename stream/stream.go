package stream

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-blocks/dtype"
)

// ErrPortType is returned when ports do not match a block's types.
var ErrPortType = errors.New("stream: port type mismatch")

// Ports is the buffer manager side of one block invocation. Counts are in
// samples; slices are flat element views of dimension-wide samples.
type Ports[In, Out any] interface {
	// MinElements returns the number of samples that can be read from the
	// input and written to the output in this invocation.
	MinElements() int

	// Input returns the elements at the read cursor.
	Input() []In

	// Output returns the free elements at the write cursor.
	Output() []Out

	// Consume advances the read cursor by samples.
	Consume(samples int)

	// Produce advances the write cursor by samples.
	Produce(samples int)
}

// Block is a streaming compute step over typed sample buffers.
type Block interface {
	InputType() dtype.DType
	OutputType() dtype.DType

	// Work processes one batch and returns the samples consumed from the
	// input and produced on the output. An unattached block does nothing.
	Work() (consumed, produced int)
}

// Attacher is implemented by blocks that can be bound to Ports of the
// given element types.
type Attacher[In, Out any] interface {
	Attach(p Ports[In, Out])
}

// Attach binds p to b after checking that In and Out are the element types
// of b's input and output descriptors.
func Attach[In, Out dtype.Element](b Block, p Ports[In, Out]) error {
	if got, want := dtype.Of[In](), b.InputType().Scalar(); got != want {
		return fmt.Errorf("%w: input is %s, block expects %s", ErrPortType, got, want)
	}
	if got, want := dtype.Of[Out](), b.OutputType().Scalar(); got != want {
		return fmt.Errorf("%w: output is %s, block expects %s", ErrPortType, got, want)
	}

	a, ok := b.(Attacher[In, Out])
	if !ok {
		return fmt.Errorf("%w: %T cannot attach %s -> %s ports", ErrPortType, b, dtype.Of[In](), dtype.Of[Out]())
	}
	if p == nil {
		return fmt.Errorf("%w: nil ports", ErrPortType)
	}

	a.Attach(p)
	return nil
}
