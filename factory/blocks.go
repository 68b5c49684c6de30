package factory

import (
	"fmt"

	"github.com/cwbudde/algo-blocks/block"
	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/kernel"
)

// Block names understood by the default registry.
const (
	ConstArithmeticName = "/comms/const_arithmetic"
	AngleName           = "/comms/angle"
)

// Operations lists the operation option strings of const_arithmetic in
// display order.
var Operations = []string{"X+K", "X-K", "K-X", "X*K", "X/K", "K/X"}

// ConstArithmeticEntry describes /comms/const_arithmetic.
var ConstArithmeticEntry = Entry{
	Name: ConstArithmeticName,
	Args: []string{"dtype", "operation", "constant"},
	Defaults: map[string]string{
		"dtype":     "float32",
		"operation": "X+K",
		"constant":  "0",
	},
	Factory: newConstArithmetic,
}

// AngleEntry describes /comms/angle.
var AngleEntry = Entry{
	Name:     AngleName,
	Args:     []string{"dtype"},
	Defaults: map[string]string{"dtype": "complex_float32"},
	Factory:  newAngle,
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.MustRegister(ConstArithmeticEntry)
	r.MustRegister(AngleEntry)
	return r
}()

// Default returns the registry holding the built-in blocks.
func Default() *Registry {
	return defaultRegistry
}

func newConstArithmetic(p Params, opts ...block.Option) (block.Processor, error) {
	dt, err := dtype.Parse(p.Get("dtype", "float32"))
	if err != nil {
		return nil, fmt.Errorf("%w: dtype: %w", ErrBadParam, err)
	}
	op, err := kernel.ParseOp(p.Get("operation", "X+K"))
	if err != nil {
		return nil, fmt.Errorf("%w: operation: %w", ErrBadParam, err)
	}

	b, err := block.NewConstArithmetic(dt, op, p.Get("constant", "0"), opts...)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func newAngle(p Params, opts ...block.Option) (block.Processor, error) {
	dt, err := dtype.Parse(p.Get("dtype", "complex_float32"))
	if err != nil {
		return nil, fmt.Errorf("%w: dtype: %w", ErrBadParam, err)
	}
	return block.NewAngle(dt, opts...)
}
