package kernel

import (
	"math"

	"github.com/cwbudde/algo-blocks/dtype"
)

// toC widens any element value to complex128.
func toC[T dtype.Element](v T) complex128 {
	switch x := any(v).(type) {
	case int8:
		return complex(float64(x), 0)
	case int16:
		return complex(float64(x), 0)
	case int32:
		return complex(float64(x), 0)
	case int64:
		return complex(float64(x), 0)
	case uint8:
		return complex(float64(x), 0)
	case uint16:
		return complex(float64(x), 0)
	case uint32:
		return complex(float64(x), 0)
	case uint64:
		return complex(float64(x), 0)
	case float32:
		return complex(float64(x), 0)
	case float64:
		return complex(x, 0)
	case complex64:
		return complex128(x)
	case complex128:
		return x
	case dtype.Complex[int8]:
		return complex(float64(x.Re), float64(x.Im))
	case dtype.Complex[int16]:
		return complex(float64(x.Re), float64(x.Im))
	case dtype.Complex[int32]:
		return complex(float64(x.Re), float64(x.Im))
	case dtype.Complex[int64]:
		return complex(float64(x.Re), float64(x.Im))
	case dtype.Complex[uint8]:
		return complex(float64(x.Re), float64(x.Im))
	case dtype.Complex[uint16]:
		return complex(float64(x.Re), float64(x.Im))
	case dtype.Complex[uint32]:
		return complex(float64(x.Re), float64(x.Im))
	case dtype.Complex[uint64]:
		return complex(float64(x.Re), float64(x.Im))
	}
	panic("unreachable")
}

// wrapInt narrows an exact integer-valued float to T with modular wrap-around.
func wrapInt[T dtype.Integer](f float64) T {
	return T(int64(f))
}

// fromC narrows an exact reference value to T. Integer lanes wrap.
func fromC[T dtype.Element](c complex128) T {
	re, im := real(c), imag(c)
	var out any
	var zero T
	switch any(zero).(type) {
	case int8:
		out = wrapInt[int8](re)
	case int16:
		out = wrapInt[int16](re)
	case int32:
		out = wrapInt[int32](re)
	case int64:
		out = wrapInt[int64](re)
	case uint8:
		out = wrapInt[uint8](re)
	case uint16:
		out = wrapInt[uint16](re)
	case uint32:
		out = wrapInt[uint32](re)
	case uint64:
		out = wrapInt[uint64](re)
	case float32:
		out = float32(re)
	case float64:
		out = re
	case complex64:
		out = complex64(c)
	case complex128:
		out = c
	case dtype.Complex[int8]:
		out = dtype.C(wrapInt[int8](re), wrapInt[int8](im))
	case dtype.Complex[int16]:
		out = dtype.C(wrapInt[int16](re), wrapInt[int16](im))
	case dtype.Complex[int32]:
		out = dtype.C(wrapInt[int32](re), wrapInt[int32](im))
	case dtype.Complex[int64]:
		out = dtype.C(wrapInt[int64](re), wrapInt[int64](im))
	case dtype.Complex[uint8]:
		out = dtype.C(wrapInt[uint8](re), wrapInt[uint8](im))
	case dtype.Complex[uint16]:
		out = dtype.C(wrapInt[uint16](re), wrapInt[uint16](im))
	case dtype.Complex[uint32]:
		out = dtype.C(wrapInt[uint32](re), wrapInt[uint32](im))
	case dtype.Complex[uint64]:
		out = dtype.C(wrapInt[uint64](re), wrapInt[uint64](im))
	}
	return out.(T)
}

// reference computes x op k in double precision. For integer lanes division
// truncates toward zero per component, matching Go integer division.
func reference(op Op, x, k complex128, integer bool) complex128 {
	div := func(a, b complex128) complex128 {
		if !integer {
			return a / b
		}
		n := real(b)*real(b) + imag(b)*imag(b)
		re := (real(a)*real(b) + imag(a)*imag(b)) / n
		im := (imag(a)*real(b) - real(a)*imag(b)) / n
		return complex(math.Trunc(re), math.Trunc(im))
	}

	switch op {
	case AddConst:
		return x + k
	case SubConst:
		return x - k
	case ConstSubX:
		return k - x
	case MulConst:
		return x * k
	case DivConst:
		return div(x, k)
	case ConstDivX:
		return div(k, x)
	}
	panic("unexpected op")
}

func closeEnough(got, want complex128, tol float64) bool {
	d := got - want
	scale := math.Max(1, math.Hypot(real(want), imag(want)))
	return math.Hypot(real(d), imag(d)) <= tol*scale
}
