package dtype

import "fmt"

// Signed is the set of signed integer lane types.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer lane types.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integer is the set of integer lane types.
type Integer interface {
	Signed | Unsigned
}

// Float is the set of floating-point lane types.
type Float interface {
	~float32 | ~float64
}

// Real is the set of real lane types.
type Real interface {
	Integer | Float
}

// NativeComplex is the set of Go's built-in complex types.
type NativeComplex interface {
	~complex64 | ~complex128
}

// Complex is a complex number with integer lanes. Go has no built-in
// complex integer type, so kernels for complex_int* operate on this pair.
type Complex[T Integer] struct {
	Re, Im T
}

// C returns the complex integer re + im*i.
func C[T Integer](re, im T) Complex[T] {
	return Complex[T]{Re: re, Im: im}
}

// String formats the value as "(re,im)".
func (c Complex[T]) String() string {
	return fmt.Sprintf("(%v,%v)", c.Re, c.Im)
}

// Text formats the value as "re+imi", the form Convert and
// strconv.ParseComplex accept.
func (c Complex[T]) Text() string {
	return fmt.Sprintf("%d%+di", c.Re, c.Im)
}

// Element is the closed set of element types a compute block can carry.
type Element interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		complex64 | complex128 |
		Complex[int8] | Complex[int16] | Complex[int32] | Complex[int64] |
		Complex[uint8] | Complex[uint16] | Complex[uint32] | Complex[uint64]
}

// Of returns the one-lane descriptor of the element type T.
func Of[T Element]() DType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return RealOf(Int8)
	case int16:
		return RealOf(Int16)
	case int32:
		return RealOf(Int32)
	case int64:
		return RealOf(Int64)
	case uint8:
		return RealOf(Uint8)
	case uint16:
		return RealOf(Uint16)
	case uint32:
		return RealOf(Uint32)
	case uint64:
		return RealOf(Uint64)
	case float32:
		return RealOf(Float32)
	case float64:
		return RealOf(Float64)
	case complex64:
		return ComplexOf(Float32)
	case complex128:
		return ComplexOf(Float64)
	case Complex[int8]:
		return ComplexOf(Int8)
	case Complex[int16]:
		return ComplexOf(Int16)
	case Complex[int32]:
		return ComplexOf(Int32)
	case Complex[int64]:
		return ComplexOf(Int64)
	case Complex[uint8]:
		return ComplexOf(Uint8)
	case Complex[uint16]:
		return ComplexOf(Uint16)
	case Complex[uint32]:
		return ComplexOf(Uint32)
	case Complex[uint64]:
		return ComplexOf(Uint64)
	default:
		panic(fmt.Sprintf("dtype: unsupported element type %T", zero))
	}
}

// IsZero reports whether c is 0+0i, the only complex integer divisor
// that division rejects.
func (c Complex[T]) IsZero() bool {
	return c.Re == 0 && c.Im == 0
}
