package generic

import (
	"math"

	"github.com/cwbudde/algo-blocks/dtype"
)

// arg returns the angle of re + im*i in (-pi, pi]. The -pi that atan2
// returns for a negative-zero imaginary part is folded onto +pi. A
// negative non-zero imaginary part whose angle rounds to -pi stays below
// the branch cut at the float64 just above -pi.
func arg(re, im float64) float64 {
	a := math.Atan2(im, re)
	if a == -math.Pi {
		if im == 0 {
			return math.Pi
		}
		return math.Nextafter(-math.Pi, 0)
	}
	return a
}

func angle128(dst []float64, src []complex128) {
	checkLen(len(dst), len(src))
	for i, z := range src {
		dst[i] = arg(real(z), imag(z))
	}
}

func angle64(dst []float32, src []complex64) {
	checkLen(len(dst), len(src))
	for i, z := range src {
		dst[i] = float32(arg(float64(real(z)), float64(imag(z))))
	}
}

// angleFixed returns a kernel that writes angles as signed fixed-point
// values of the given lane width: the angle range (-pi, pi] is scaled by
// 2^(bits-1)/pi, rounded to nearest with ties away from zero. +pi
// saturates to the maximum of T and angles that round to -2^(bits-1)
// saturate to -maximum, so the output range is symmetric.
func angleFixed[T dtype.Signed](bits int) func(dst []T, src []dtype.Complex[T]) {
	limit := math.Ldexp(1, bits-1)
	scale := limit / math.Pi
	maxVal := ^(T(-1) << (bits - 1))

	return func(dst []T, src []dtype.Complex[T]) {
		checkLen(len(dst), len(src))
		for i, z := range src {
			dst[i] = quantize(arg(float64(z.Re), float64(z.Im))*scale, limit, maxVal)
		}
	}
}

func quantize[T dtype.Signed](v, limit float64, maxVal T) T {
	q := math.Round(v)
	switch {
	case q >= limit:
		return maxVal
	case q <= -limit:
		return -maxVal
	}
	return T(q)
}
