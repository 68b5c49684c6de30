package generic

import (
	"math"
	"math/big"

	"github.com/cwbudde/algo-blocks/dtype"
)

// Complex integer kernels. Addition, subtraction and multiplication wrap
// like the real integer kernels. Division uses a*conj(b)/|b|^2 computed
// exactly, truncates each component toward zero and wraps the quotient
// into the lane type; it yields 0 for a zero divisor (0+0i). Lanes up to
// 16 bits are widened to int64; 32- and 64-bit lanes go through math/big.

func addConstComplex[T dtype.Integer](dst, src []dtype.Complex[T], k dtype.Complex[T]) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		dst[i] = dtype.Complex[T]{Re: x.Re + k.Re, Im: x.Im + k.Im}
	}
}

func subConstComplex[T dtype.Integer](dst, src []dtype.Complex[T], k dtype.Complex[T]) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		dst[i] = dtype.Complex[T]{Re: x.Re - k.Re, Im: x.Im - k.Im}
	}
}

func constSubXComplex[T dtype.Integer](dst, src []dtype.Complex[T], k dtype.Complex[T]) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		dst[i] = dtype.Complex[T]{Re: k.Re - x.Re, Im: k.Im - x.Im}
	}
}

func mulConstComplex[T dtype.Integer](dst, src []dtype.Complex[T], k dtype.Complex[T]) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		dst[i] = mulComplex(x, k)
	}
}

func divConstComplex[T dtype.Integer](dst, src []dtype.Complex[T], k dtype.Complex[T]) {
	checkLen(len(dst), len(src))
	if k.IsZero() {
		clear(dst)
		return
	}
	for i, x := range src {
		dst[i] = divComplex(x, k)
	}
}

func constDivXComplex[T dtype.Integer](dst, src []dtype.Complex[T], k dtype.Complex[T]) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		if x.IsZero() {
			dst[i] = dtype.Complex[T]{}
			continue
		}
		dst[i] = divComplex(k, x)
	}
}

func divConstComplexWide[T dtype.Integer](dst, src []dtype.Complex[T], k dtype.Complex[T]) {
	checkLen(len(dst), len(src))
	if k.IsZero() {
		clear(dst)
		return
	}
	var w wide
	for i, x := range src {
		dst[i] = divComplexWide(&w, x, k)
	}
}

func constDivXComplexWide[T dtype.Integer](dst, src []dtype.Complex[T], k dtype.Complex[T]) {
	checkLen(len(dst), len(src))
	var w wide
	for i, x := range src {
		if x.IsZero() {
			dst[i] = dtype.Complex[T]{}
			continue
		}
		dst[i] = divComplexWide(&w, k, x)
	}
}

func mulComplex[T dtype.Integer](a, b dtype.Complex[T]) dtype.Complex[T] {
	return dtype.Complex[T]{
		Re: a.Re*b.Re - a.Im*b.Im,
		Im: a.Re*b.Im + a.Im*b.Re,
	}
}

// divComplex is exact for lanes of 16 bits or fewer. b must not be zero.
func divComplex[T dtype.Integer](a, b dtype.Complex[T]) dtype.Complex[T] {
	ar, ai := int64(a.Re), int64(a.Im)
	br, bi := int64(b.Re), int64(b.Im)
	n := br*br + bi*bi
	return dtype.Complex[T]{
		Re: T((ar*br + ai*bi) / n),
		Im: T((ai*br - ar*bi) / n),
	}
}

// wide is the scratch space of divComplexWide, reused across one kernel call.
type wide struct {
	ar, ai, br, bi, n, re, im, t big.Int
}

var mask64 = new(big.Int).SetUint64(math.MaxUint64)

func setLane[T dtype.Integer](z *big.Int, v T) {
	if ^T(0) < 0 {
		z.SetInt64(int64(v))
		return
	}
	z.SetUint64(uint64(v))
}

// lane wraps z into T through its low 64 two's-complement bits.
func lane[T dtype.Integer](w *wide, z *big.Int) T {
	return T(w.t.And(z, mask64).Uint64())
}

// divComplexWide is divComplex for any lane width. b must not be zero.
func divComplexWide[T dtype.Integer](w *wide, a, b dtype.Complex[T]) dtype.Complex[T] {
	setLane(&w.ar, a.Re)
	setLane(&w.ai, a.Im)
	setLane(&w.br, b.Re)
	setLane(&w.bi, b.Im)

	w.n.Mul(&w.br, &w.br)
	w.n.Add(&w.n, w.t.Mul(&w.bi, &w.bi))

	w.re.Mul(&w.ar, &w.br)
	w.re.Add(&w.re, w.t.Mul(&w.ai, &w.bi))
	w.re.Quo(&w.re, &w.n)

	w.im.Mul(&w.ai, &w.br)
	w.im.Sub(&w.im, w.t.Mul(&w.ar, &w.bi))
	w.im.Quo(&w.im, &w.n)

	return dtype.Complex[T]{Re: lane[T](w, &w.re), Im: lane[T](w, &w.im)}
}
