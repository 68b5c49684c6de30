package generic

import "github.com/cwbudde/algo-blocks/dtype"

// number is the set of lane types with native + - * / operators.
type number interface {
	dtype.Real | dtype.NativeComplex
}

func checkLen(n, m int) {
	if n != m {
		panic("kernel: slice length mismatch")
	}
}

func addConst[T number](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		dst[i] = x + k
	}
}

func subConst[T number](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		dst[i] = x - k
	}
}

func constSubX[T number](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		dst[i] = k - x
	}
}

func mulConst[T number](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		dst[i] = x * k
	}
}

// divConst divides by k with IEEE 754 semantics for float and complex lanes.
func divConst[T dtype.Float | dtype.NativeComplex](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		dst[i] = x / k
	}
}

func constDivX[T dtype.Float | dtype.NativeComplex](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		dst[i] = k / x
	}
}

// divConstInt divides integer lanes by k. A zero divisor yields 0.
func divConstInt[T dtype.Integer](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	if k == 0 {
		clear(dst)
		return
	}
	for i, x := range src {
		dst[i] = x / k
	}
}

// constDivXInt computes k / x for integer lanes. A zero element yields 0.
func constDivXInt[T dtype.Integer](dst, src []T, k T) {
	checkLen(len(dst), len(src))
	for i, x := range src {
		if x == 0 {
			dst[i] = 0
			continue
		}
		dst[i] = k / x
	}
}
