package block

import (
	"slices"
	"sync"

	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/kernel"
	"github.com/cwbudde/algo-blocks/stream"
)

// Processor is a block built from a runtime descriptor.
type Processor interface {
	stream.Block
	stream.Binder

	Op() kernel.Op
	Implementation() string
}

// Constant is the type-erased view of a ConstArithmetic block used by
// hosts and the control plane.
type Constant interface {
	Processor

	ConstantValue() any
	SetConstantValue(v any) error
	Watch(buffer int, fn func(any)) (cancel func(), err error)
	Close()
}

var (
	_ Constant  = (*ConstArithmetic[int16])(nil)
	_ Processor = (*Angle[complex64, float32])(nil)
)

type constCtor func(op kernel.Op, constant any, opts []Option) (Constant, error)

type angleCtor func(opts []Option) (Processor, error)

func constEntry[T dtype.Element](m map[dtype.DType]constCtor) {
	m[dtype.Of[T]()] = func(op kernel.Op, constant any, opts []Option) (Constant, error) {
		k, err := dtype.Convert[T](constant)
		if err != nil {
			return nil, err
		}
		b, err := NewTypedConstArithmetic[T](op, k, opts...)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

func angleEntry[In, Out dtype.Element](m map[dtype.DType]angleCtor) {
	m[dtype.Of[In]()] = func(opts []Option) (Processor, error) {
		b, err := NewTypedAngle[In, Out](opts...)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

var constTable = sync.OnceValue(func() map[dtype.DType]constCtor {
	m := make(map[dtype.DType]constCtor, 20)
	constEntry[int8](m)
	constEntry[int16](m)
	constEntry[int32](m)
	constEntry[int64](m)
	constEntry[uint8](m)
	constEntry[uint16](m)
	constEntry[uint32](m)
	constEntry[uint64](m)
	constEntry[float32](m)
	constEntry[float64](m)
	constEntry[dtype.Complex[int8]](m)
	constEntry[dtype.Complex[int16]](m)
	constEntry[dtype.Complex[int32]](m)
	constEntry[dtype.Complex[int64]](m)
	constEntry[dtype.Complex[uint8]](m)
	constEntry[dtype.Complex[uint16]](m)
	constEntry[dtype.Complex[uint32]](m)
	constEntry[dtype.Complex[uint64]](m)
	constEntry[complex64](m)
	constEntry[complex128](m)
	return m
})

var angleTable = sync.OnceValue(func() map[dtype.DType]angleCtor {
	m := make(map[dtype.DType]angleCtor, 6)
	angleEntry[complex128, float64](m)
	angleEntry[complex64, float32](m)
	angleEntry[dtype.Complex[int64], int64](m)
	angleEntry[dtype.Complex[int32], int32](m)
	angleEntry[dtype.Complex[int16], int16](m)
	angleEntry[dtype.Complex[int8], int8](m)
	return m
})

// NewConstArithmetic builds the constant-arithmetic block for dt. The
// constant is converted to dt's element type first; a failed conversion
// returns a *dtype.ConversionError. The dimension of dt overrides any
// WithDimension option.
func NewConstArithmetic(dt dtype.DType, op kernel.Op, constant any, opts ...Option) (Constant, error) {
	if !slices.Contains(kernel.ConstOps, op) {
		return nil, &kernel.UnsupportedError{Op: op, Type: dt, Detail: "not a constant-arithmetic operation"}
	}

	ctor, ok := constTable()[dt.Scalar()]
	if !ok || !dt.Valid() {
		return nil, &kernel.UnsupportedError{Op: op, Type: dt}
	}
	return ctor(op, constant, withDimension(opts, dt.Dimension))
}

// NewAngle builds the angle block for the complex descriptor dt.
func NewAngle(dt dtype.DType, opts ...Option) (Processor, error) {
	ctor, ok := angleTable()[dt.Scalar()]
	if !ok || !dt.Valid() {
		return nil, &kernel.UnsupportedError{Op: kernel.Angle, Type: dt}
	}
	return ctor(withDimension(opts, dt.Dimension))
}

func withDimension(opts []Option, dim int) []Option {
	out := make([]Option, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, WithDimension(dim))
}
