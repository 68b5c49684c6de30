package testutil

import "github.com/cwbudde/algo-blocks/dtype"

// Convert narrows or widens float64 samples to any real element type.
// Integer targets truncate toward zero.
func Convert[T dtype.Real](in []float64) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = T(v)
	}
	return out
}

// Widen converts real samples to float64 for tolerance comparisons.
func Widen[T dtype.Real](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// Ramp returns n integer samples start, start+step, ... wrapping at the
// width of T.
func Ramp[T dtype.Integer](start, step T, n int) []T {
	out := make([]T, n)
	v := start
	for i := range out {
		out[i] = v
		v += step
	}
	return out
}
