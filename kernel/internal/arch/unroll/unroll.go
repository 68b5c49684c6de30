// Package unroll provides 4x-unrolled real floating-point kernels shared by
// the accelerated architecture entries. The float64 scale path goes through
// algo-vecmath, which carries its own SIMD dispatch.
package unroll

import (
	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/kernel/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func checkLen(n, m int) {
	if n != m {
		panic("kernel: slice length mismatch")
	}
}

// AddConst computes dst[i] = src[i] + k.
func AddConst[T dtype.Float](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	i := 0
	n := len(src)
	for ; i+3 < n; i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		d[0] = s[0] + k
		d[1] = s[1] + k
		d[2] = s[2] + k
		d[3] = s[3] + k
	}
	for ; i < n; i++ {
		dst[i] = src[i] + k
	}
}

// SubConst computes dst[i] = src[i] - k.
func SubConst[T dtype.Float](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	i := 0
	n := len(src)
	for ; i+3 < n; i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		d[0] = s[0] - k
		d[1] = s[1] - k
		d[2] = s[2] - k
		d[3] = s[3] - k
	}
	for ; i < n; i++ {
		dst[i] = src[i] - k
	}
}

// ConstSubX computes dst[i] = k - src[i].
func ConstSubX[T dtype.Float](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	i := 0
	n := len(src)
	for ; i+3 < n; i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		d[0] = k - s[0]
		d[1] = k - s[1]
		d[2] = k - s[2]
		d[3] = k - s[3]
	}
	for ; i < n; i++ {
		dst[i] = k - src[i]
	}
}

// MulConst computes dst[i] = src[i] * k.
func MulConst[T dtype.Float](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	i := 0
	n := len(src)
	for ; i+3 < n; i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		d[0] = s[0] * k
		d[1] = s[1] * k
		d[2] = s[2] * k
		d[3] = s[3] * k
	}
	for ; i < n; i++ {
		dst[i] = src[i] * k
	}
}

// ScaleFloat64 computes dst[i] = src[i] * k through vecmath.ScaleBlock.
func ScaleFloat64(dst, src []float64, k float64) {
	checkLen(len(dst), len(src))
	if len(src) == 0 {
		return
	}
	vecmath.ScaleBlock(dst, src, k)
}

// DivConst computes dst[i] = src[i] / k.
func DivConst[T dtype.Float](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	i := 0
	n := len(src)
	for ; i+3 < n; i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		d[0] = s[0] / k
		d[1] = s[1] / k
		d[2] = s[2] / k
		d[3] = s[3] / k
	}
	for ; i < n; i++ {
		dst[i] = src[i] / k
	}
}

// ConstDivX computes dst[i] = k / src[i].
func ConstDivX[T dtype.Float](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	i := 0
	n := len(src)
	for ; i+3 < n; i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		d[0] = k / s[0]
		d[1] = k / s[1]
		d[2] = k / s[2]
		d[3] = k / s[3]
	}
	for ; i < n; i++ {
		dst[i] = k / src[i]
	}
}

// Register adds the unrolled real float kernels to the global registry
// under the given implementation name and SIMD level.
func Register(name string, level cpu.SIMDLevel, priority int) {
	reg := func(op registry.Op, kind dtype.Kind, fn any) {
		registry.Global.Register(registry.Entry{
			Name:      name,
			SIMDLevel: level,
			Priority:  priority,
			Key:       registry.Key{Op: op, Kind: kind},
			Fn:        fn,
		})
	}

	reg(registry.AddConst, dtype.Float32, registry.ConstFn[float32](AddConst[float32]))
	reg(registry.SubConst, dtype.Float32, registry.ConstFn[float32](SubConst[float32]))
	reg(registry.ConstSubX, dtype.Float32, registry.ConstFn[float32](ConstSubX[float32]))
	reg(registry.MulConst, dtype.Float32, registry.ConstFn[float32](MulConst[float32]))
	reg(registry.DivConst, dtype.Float32, registry.ConstFn[float32](DivConst[float32]))
	reg(registry.ConstDivX, dtype.Float32, registry.ConstFn[float32](ConstDivX[float32]))

	reg(registry.AddConst, dtype.Float64, registry.ConstFn[float64](AddConst[float64]))
	reg(registry.SubConst, dtype.Float64, registry.ConstFn[float64](SubConst[float64]))
	reg(registry.ConstSubX, dtype.Float64, registry.ConstFn[float64](ConstSubX[float64]))
	reg(registry.MulConst, dtype.Float64, registry.ConstFn[float64](ScaleFloat64))
	reg(registry.DivConst, dtype.Float64, registry.ConstFn[float64](DivConst[float64]))
	reg(registry.ConstDivX, dtype.Float64, registry.ConstFn[float64](ConstDivX[float64]))
}
