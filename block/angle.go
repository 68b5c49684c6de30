package block

import (
	"log/slog"

	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/kernel"
	"github.com/cwbudde/algo-blocks/stream"
)

// Angle writes the phase angle of each complex lane as the matching real
// scalar. Float outputs are radians in (-pi, pi]; integer outputs are the
// angle scaled so that pi maps to the signed maximum.
type Angle[In, Out dtype.Element] struct {
	in, out dtype.DType
	fn      kernel.AngleFn[In, Out]
	impl    string
	ports   stream.Ports[In, Out]
	logger  *slog.Logger
}

// NewTypedAngle resolves the angle kernel for complex input In and real
// output Out.
func NewTypedAngle[In, Out dtype.Element](opts ...Option) (*Angle[In, Out], error) {
	cfg := ApplyOptions(opts...)

	in, err := dtype.New(dtype.Of[In]().Kind, dtype.Of[In]().Complex, cfg.Dimension)
	if err != nil {
		return nil, err
	}

	fn, impl, err := kernel.ResolveAngle[In, Out](cfg.kernelOptions()...)
	if err != nil {
		return nil, err
	}

	b := &Angle[In, Out]{
		in:     in,
		out:    kernel.OutputType(kernel.Angle, in),
		fn:     fn,
		impl:   impl,
		logger: cfg.Logger,
	}

	b.logger.Debug("angle block created", "input", b.in.String(), "output", b.out.String(), "kernel", impl)
	return b, nil
}

// InputType implements stream.Block.
func (b *Angle[In, Out]) InputType() dtype.DType { return b.in }

// OutputType implements stream.Block.
func (b *Angle[In, Out]) OutputType() dtype.DType { return b.out }

// Op returns kernel.Angle.
func (b *Angle[In, Out]) Op() kernel.Op { return kernel.Angle }

// Implementation returns the name of the resolved kernel variant.
func (b *Angle[In, Out]) Implementation() string { return b.impl }

// Attach implements stream.Attacher.
func (b *Angle[In, Out]) Attach(p stream.Ports[In, Out]) { b.ports = p }

// Bind implements stream.Binder.
func (b *Angle[In, Out]) Bind(capacity int) (stream.Pipe, error) {
	return stream.NewPipe[In, Out](b, capacity)
}

// Work implements stream.Block.
func (b *Angle[In, Out]) Work() (int, int) {
	if b.ports == nil {
		return 0, 0
	}

	n := b.ports.MinElements()
	if n == 0 {
		return 0, 0
	}

	e := b.in.Elements(n)
	b.fn(b.ports.Output()[:e], b.ports.Input()[:e])

	b.ports.Consume(n)
	b.ports.Produce(n)
	return n, n
}
