// Package generic provides the portable scalar-loop kernels.
//
// They serve as the fallback for every supported key when no SIMD
// specialization is registered or when ForceGeneric is enabled.
package generic

import (
	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/kernel/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Name is the registered implementation name.
const Name = "generic"

type constSet[T any] struct {
	add, sub, rsub, mul, div, rdiv registry.ConstFn[T]
}

func integerSet[T dtype.Integer]() constSet[T] {
	return constSet[T]{addConst[T], subConst[T], constSubX[T], mulConst[T], divConstInt[T], constDivXInt[T]}
}

func floatSet[T dtype.Float | dtype.NativeComplex]() constSet[T] {
	return constSet[T]{addConst[T], subConst[T], constSubX[T], mulConst[T], divConst[T], constDivX[T]}
}

// complexIntegerSet builds the complex kernels for lane type T; bigLanes selects
// the arbitrary-precision division used for 32- and 64-bit lanes.
func complexIntegerSet[T dtype.Integer](bigLanes bool) constSet[dtype.Complex[T]] {
	set := constSet[dtype.Complex[T]]{
		addConstComplex[T], subConstComplex[T], constSubXComplex[T],
		mulConstComplex[T], divConstComplex[T], constDivXComplex[T],
	}
	if bigLanes {
		set.div, set.rdiv = divConstComplexWide[T], constDivXComplexWide[T]
	}
	return set
}

func registerSet[T any](kind dtype.Kind, isComplex bool, set constSet[T]) {
	ops := []struct {
		op registry.Op
		fn registry.ConstFn[T]
	}{
		{registry.AddConst, set.add},
		{registry.SubConst, set.sub},
		{registry.ConstSubX, set.rsub},
		{registry.MulConst, set.mul},
		{registry.DivConst, set.div},
		{registry.ConstDivX, set.rdiv},
	}
	for _, o := range ops {
		register(registry.Key{Op: o.op, Kind: kind, Complex: isComplex}, o.fn)
	}
}

func register(key registry.Key, fn any) {
	registry.Global.Register(registry.Entry{
		Name:      Name,
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Key:       key,
		Fn:        fn,
	})
}

func angleKey(kind dtype.Kind) registry.Key {
	return registry.Key{Op: registry.Angle, Kind: kind, Complex: true}
}

func init() {
	registerSet(dtype.Int8, false, integerSet[int8]())
	registerSet(dtype.Int16, false, integerSet[int16]())
	registerSet(dtype.Int32, false, integerSet[int32]())
	registerSet(dtype.Int64, false, integerSet[int64]())
	registerSet(dtype.Uint8, false, integerSet[uint8]())
	registerSet(dtype.Uint16, false, integerSet[uint16]())
	registerSet(dtype.Uint32, false, integerSet[uint32]())
	registerSet(dtype.Uint64, false, integerSet[uint64]())
	registerSet(dtype.Float32, false, floatSet[float32]())
	registerSet(dtype.Float64, false, floatSet[float64]())

	registerSet(dtype.Int8, true, complexIntegerSet[int8](false))
	registerSet(dtype.Int16, true, complexIntegerSet[int16](false))
	registerSet(dtype.Int32, true, complexIntegerSet[int32](true))
	registerSet(dtype.Int64, true, complexIntegerSet[int64](true))
	registerSet(dtype.Uint8, true, complexIntegerSet[uint8](false))
	registerSet(dtype.Uint16, true, complexIntegerSet[uint16](false))
	registerSet(dtype.Uint32, true, complexIntegerSet[uint32](true))
	registerSet(dtype.Uint64, true, complexIntegerSet[uint64](true))
	registerSet(dtype.Float32, true, floatSet[complex64]())
	registerSet(dtype.Float64, true, floatSet[complex128]())

	register(angleKey(dtype.Float64), registry.AngleFn[complex128, float64](angle128))
	register(angleKey(dtype.Float32), registry.AngleFn[complex64, float32](angle64))
	register(angleKey(dtype.Int64), registry.AngleFn[dtype.Complex[int64], int64](angleFixed[int64](64)))
	register(angleKey(dtype.Int32), registry.AngleFn[dtype.Complex[int32], int32](angleFixed[int32](32)))
	register(angleKey(dtype.Int16), registry.AngleFn[dtype.Complex[int16], int16](angleFixed[int16](16)))
	register(angleKey(dtype.Int8), registry.AngleFn[dtype.Complex[int8], int8](angleFixed[int8](8)))
}
