package kernel

import (
	"fmt"

	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/kernel/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// ConstFn applies k to every element of src and writes the results to dst.
// dst and src must have equal length and must not alias.
type ConstFn[T any] = registry.ConstFn[T]

// AngleFn writes the angle of every element of src to dst.
// dst and src must have equal length.
type AngleFn[In, Out any] = registry.AngleFn[In, Out]

// Key selects one kernel specialization: operation, scalar kind and complex flag.
type Key = registry.Key

// Implementation is a resolved kernel.
type Implementation struct {
	// Name of the selected variant, e.g. "generic" or "avx2".
	Name string
	Key  Key

	// Fn is a ConstFn[T] or AngleFn[In, Out] for the element type named by Key.
	Fn any
}

// Option adjusts kernel resolution.
type Option func(*resolveConfig)

type resolveConfig struct {
	features *cpu.Features
}

// WithFeatures resolves against the given CPU features instead of the
// detected ones.
func WithFeatures(f cpu.Features) Option {
	return func(cfg *resolveConfig) {
		cfg.features = &f
	}
}

func applyOptions(opts []Option) cpu.Features {
	var cfg resolveConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.features != nil {
		return *cfg.features
	}
	return cpu.DetectFeatures()
}

// Resolve returns the best kernel for op on the scalar element type of dt.
// The dimension of dt does not take part in resolution. The result is a
// pure function of its inputs and the CPU features.
func Resolve(op Op, dt dtype.DType, opts ...Option) (Implementation, error) {
	if !dt.Valid() {
		return Implementation{}, &UnsupportedError{Op: op, Type: dt, Detail: "invalid type descriptor"}
	}

	key := registry.KeyOf(op, dt)
	entry := registry.Global.Lookup(key, applyOptions(opts))
	if entry == nil {
		return Implementation{}, &UnsupportedError{Op: op, Type: dt.Scalar()}
	}

	return Implementation{Name: entry.Name, Key: entry.Key, Fn: entry.Fn}, nil
}

// ResolveConst returns the constant-arithmetic kernel for op on element type T.
func ResolveConst[T dtype.Element](op Op, opts ...Option) (ConstFn[T], string, error) {
	dt := dtype.Of[T]()
	if op == Angle {
		return nil, "", &UnsupportedError{Op: op, Type: dt, Detail: "not a constant-arithmetic operation"}
	}

	impl, err := Resolve(op, dt, opts...)
	if err != nil {
		return nil, "", err
	}

	fn, ok := impl.Fn.(ConstFn[T])
	if !ok || fn == nil {
		return nil, "", &UnsupportedError{Op: op, Type: dt, Detail: fmt.Sprintf("registered kernel has type %T", impl.Fn)}
	}
	return fn, impl.Name, nil
}

// ResolveAngle returns the angle kernel for complex input In and real output Out.
func ResolveAngle[In, Out dtype.Element](opts ...Option) (AngleFn[In, Out], string, error) {
	in := dtype.Of[In]()
	if want := OutputType(Angle, in); want != dtype.Of[Out]() {
		return nil, "", &UnsupportedError{Op: Angle, Type: in, Detail: fmt.Sprintf("output type must be %s", want)}
	}

	impl, err := Resolve(Angle, in, opts...)
	if err != nil {
		return nil, "", err
	}

	fn, ok := impl.Fn.(AngleFn[In, Out])
	if !ok || fn == nil {
		return nil, "", &UnsupportedError{Op: Angle, Type: in, Detail: fmt.Sprintf("registered kernel has type %T", impl.Fn)}
	}
	return fn, impl.Name, nil
}

// OutputType returns the output descriptor an operation produces for the
// input descriptor in. Constant arithmetic keeps the type; Angle maps
// complex-of-T to T with the same dimension.
func OutputType(op Op, in dtype.DType) dtype.DType {
	if op == Angle {
		in.Complex = false
	}
	return in
}

// Keys lists every registered specialization.
func Keys() []Key {
	return registry.Global.Keys()
}

// Supported reports whether a kernel exists for op on the scalar type of dt.
func Supported(op Op, dt dtype.DType) bool {
	_, err := Resolve(op, dt, WithFeatures(cpu.Features{ForceGeneric: true}))
	return err == nil
}

// ZeroDivisor reports whether k is a zero divisor for integer-lane
// division: 0 for real integers, 0+0i for complex integers. It is
// always false for float and complex float types, whose division follows
// IEEE 754.
func ZeroDivisor[T dtype.Element](k T) bool {
	var zero T
	if !dtype.Of[T]().Kind.IsInteger() {
		return false
	}
	if c, ok := any(k).(interface{ IsZero() bool }); ok {
		return c.IsZero()
	}
	return any(k) == any(zero)
}
