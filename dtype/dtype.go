package dtype

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidKind is returned when a descriptor names no supported scalar kind.
	ErrInvalidKind = errors.New("dtype: invalid scalar kind")
	// ErrInvalidDimension is returned for a dimension below 1.
	ErrInvalidDimension = errors.New("dtype: dimension must be >= 1")
)

// DType is a type descriptor: scalar kind, complex flag and per-sample
// dimension. Two descriptors are equal iff all three fields match, so DType
// can be compared with == and used as a map key.
type DType struct {
	Kind      Kind
	Complex   bool
	Dimension int
}

// New returns a validated descriptor.
func New(kind Kind, isComplex bool, dimension int) (DType, error) {
	if !kind.Valid() {
		return DType{}, fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
	if dimension < 1 {
		return DType{}, fmt.Errorf("%w: %d", ErrInvalidDimension, dimension)
	}
	return DType{Kind: kind, Complex: isComplex, Dimension: dimension}, nil
}

// MustNew is like New but panics on error.
func MustNew(kind Kind, isComplex bool, dimension int) DType {
	dt, err := New(kind, isComplex, dimension)
	if err != nil {
		panic(err)
	}
	return dt
}

// RealOf returns a real, one-lane descriptor of kind.
func RealOf(kind Kind) DType {
	return DType{Kind: kind, Dimension: 1}
}

// ComplexOf returns a complex, one-lane descriptor of kind.
func ComplexOf(kind Kind) DType {
	return DType{Kind: kind, Complex: true, Dimension: 1}
}

// Valid reports whether the descriptor has a supported kind and a positive dimension.
func (d DType) Valid() bool {
	return d.Kind.Valid() && d.Dimension >= 1
}

// Scalar returns the same element type with dimension 1.
func (d DType) Scalar() DType {
	d.Dimension = 1
	return d
}

// WithDimension returns the descriptor with the given dimension.
func (d DType) WithDimension(dimension int) DType {
	d.Dimension = dimension
	return d
}

// Elements returns the flat element count for a sample count.
func (d DType) Elements(samples int) int {
	return samples * d.Dimension
}

// Size returns the number of bytes in one sample.
func (d DType) Size() int {
	n := d.Kind.Bits() / 8 * d.Dimension
	if d.Complex {
		n *= 2
	}
	return n
}

// Name returns the element name without the dimension, e.g. "complex_int16".
func (d DType) Name() string {
	if d.Complex {
		return "complex_" + d.Kind.String()
	}
	return d.Kind.String()
}

// String formats the descriptor as accepted by Parse, e.g. "complex_int16"
// or "float32x2" for a two-lane sample.
func (d DType) String() string {
	if d.Dimension > 1 {
		return d.Name() + "x" + strconv.Itoa(d.Dimension)
	}
	return d.Name()
}
