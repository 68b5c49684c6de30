package dtype

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrConversion is matched by every *ConversionError.
var ErrConversion = errors.New("dtype: conversion error")

// ConversionError reports that an external value cannot be represented by
// the target element type.
type ConversionError struct {
	Value  any
	Target DType
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("dtype: cannot convert %v (%T) to %s: %s", e.Value, e.Value, e.Target.Name(), e.Reason)
}

// Is reports whether target is ErrConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

type laneClass uint8

const (
	laneInt laneClass = iota
	laneUint
	laneFloat
)

// lane is one decoded real component of an external value.
type lane struct {
	class laneClass
	i     int64
	u     uint64
	f     float64
}

func intLane(v int64) lane     { return lane{class: laneInt, i: v} }
func uintLane(v uint64) lane   { return lane{class: laneUint, u: v} }
func floatLane(v float64) lane { return lane{class: laneFloat, f: v} }

func (l lane) isZero() bool {
	switch l.class {
	case laneInt:
		return l.i == 0
	case laneUint:
		return l.u == 0
	default:
		return l.f == 0
	}
}

// Convert converts an externally supplied value into the element type T.
//
// Accepted inputs are Go numeric and complex values, Complex[*] values,
// strings and json.Number. Values that do not fit T exactly (fractional
// values for integer types, out-of-range magnitudes, integers a float type
// would round, non-zero imaginary parts for real types) are rejected with a *ConversionError rather than
// truncated.
func Convert[T Element](v any) (T, error) {
	var zero T
	target := Of[T]()

	fail := func(reason string) (T, error) {
		return zero, &ConversionError{Value: v, Target: target, Reason: reason}
	}

	re, im, err := decode(v)
	if err != nil {
		return fail(err.Error())
	}

	if !target.Complex && !im.isZero() {
		return fail("non-zero imaginary part")
	}

	var out any
	switch any(zero).(type) {
	case int8, int16, int32, int64, uint8, uint16, uint32, uint64, float32, float64:
		out, err = laneValue(re, target.Kind)
	case complex64:
		out, err = toComplex64(re, im)
	case complex128:
		out, err = toComplex128(re, im)
	case Complex[int8]:
		out, err = complexInt[int8](re, im, Int8)
	case Complex[int16]:
		out, err = complexInt[int16](re, im, Int16)
	case Complex[int32]:
		out, err = complexInt[int32](re, im, Int32)
	case Complex[int64]:
		out, err = complexInt[int64](re, im, Int64)
	case Complex[uint8]:
		out, err = complexInt[uint8](re, im, Uint8)
	case Complex[uint16]:
		out, err = complexInt[uint16](re, im, Uint16)
	case Complex[uint32]:
		out, err = complexInt[uint32](re, im, Uint32)
	case Complex[uint64]:
		out, err = complexInt[uint64](re, im, Uint64)
	}
	if err != nil {
		return fail(err.Error())
	}

	t, ok := out.(T)
	if !ok {
		return fail("unsupported target")
	}
	return t, nil
}

// MustConvert is like Convert but panics on error.
func MustConvert[T Element](v any) T {
	t, err := Convert[T](v)
	if err != nil {
		panic(err)
	}
	return t
}

func decode(v any) (re, im lane, err error) {
	switch x := v.(type) {
	case int:
		return intLane(int64(x)), intLane(0), nil
	case int8:
		return intLane(int64(x)), intLane(0), nil
	case int16:
		return intLane(int64(x)), intLane(0), nil
	case int32:
		return intLane(int64(x)), intLane(0), nil
	case int64:
		return intLane(x), intLane(0), nil
	case uint:
		return uintLane(uint64(x)), intLane(0), nil
	case uint8:
		return uintLane(uint64(x)), intLane(0), nil
	case uint16:
		return uintLane(uint64(x)), intLane(0), nil
	case uint32:
		return uintLane(uint64(x)), intLane(0), nil
	case uint64:
		return uintLane(x), intLane(0), nil
	case float32:
		return floatLane(float64(x)), intLane(0), nil
	case float64:
		return floatLane(x), intLane(0), nil
	case complex64:
		return floatLane(float64(real(x))), floatLane(float64(imag(x))), nil
	case complex128:
		return floatLane(real(x)), floatLane(imag(x)), nil
	case Complex[int8]:
		return intLane(int64(x.Re)), intLane(int64(x.Im)), nil
	case Complex[int16]:
		return intLane(int64(x.Re)), intLane(int64(x.Im)), nil
	case Complex[int32]:
		return intLane(int64(x.Re)), intLane(int64(x.Im)), nil
	case Complex[int64]:
		return intLane(x.Re), intLane(x.Im), nil
	case Complex[uint8]:
		return uintLane(uint64(x.Re)), uintLane(uint64(x.Im)), nil
	case Complex[uint16]:
		return uintLane(uint64(x.Re)), uintLane(uint64(x.Im)), nil
	case Complex[uint32]:
		return uintLane(uint64(x.Re)), uintLane(uint64(x.Im)), nil
	case Complex[uint64]:
		return uintLane(x.Re), uintLane(x.Im), nil
	case json.Number:
		return decodeString(string(x))
	case string:
		return decodeString(x)
	case nil:
		return lane{}, lane{}, errors.New("nil value")
	default:
		return lane{}, lane{}, fmt.Errorf("unsupported source type %T", v)
	}
}

func decodeString(s string) (re, im lane, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return lane{}, lane{}, errors.New("empty string")
	}
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return intLane(i), intLane(0), nil
	}
	if u, err := strconv.ParseUint(s, 0, 64); err == nil {
		return uintLane(u), intLane(0), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatLane(f), intLane(0), nil
	}
	if c, err := strconv.ParseComplex(s, 128); err == nil {
		return floatLane(real(c)), floatLane(imag(c)), nil
	}
	return lane{}, lane{}, fmt.Errorf("cannot parse %q as a number", s)
}

// laneValue converts l into the Go type of kind, boxed.
func laneValue(l lane, kind Kind) (any, error) {
	switch kind {
	case Int8:
		i, err := toSigned(l, 8)
		return int8(i), err
	case Int16:
		i, err := toSigned(l, 16)
		return int16(i), err
	case Int32:
		i, err := toSigned(l, 32)
		return int32(i), err
	case Int64:
		i, err := toSigned(l, 64)
		return i, err
	case Uint8:
		u, err := toUnsigned(l, 8)
		return uint8(u), err
	case Uint16:
		u, err := toUnsigned(l, 16)
		return uint16(u), err
	case Uint32:
		u, err := toUnsigned(l, 32)
		return uint32(u), err
	case Uint64:
		u, err := toUnsigned(l, 64)
		return u, err
	case Float32:
		f, err := toFloat(l, 32)
		return float32(f), err
	case Float64:
		return toFloat(l, 64)
	default:
		return nil, ErrInvalidKind
	}
}

func complexInt[T Integer](re, im lane, kind Kind) (any, error) {
	r, err := laneValue(re, kind)
	if err != nil {
		return nil, fmt.Errorf("real part: %w", err)
	}
	i, err := laneValue(im, kind)
	if err != nil {
		return nil, fmt.Errorf("imaginary part: %w", err)
	}
	return Complex[T]{Re: r.(T), Im: i.(T)}, nil
}

func toComplex64(re, im lane) (any, error) {
	r, err := toFloat(re, 32)
	if err != nil {
		return nil, fmt.Errorf("real part: %w", err)
	}
	i, err := toFloat(im, 32)
	if err != nil {
		return nil, fmt.Errorf("imaginary part: %w", err)
	}
	return complex(float32(r), float32(i)), nil
}

func toComplex128(re, im lane) (any, error) {
	r, err := toFloat(re, 64)
	if err != nil {
		return nil, fmt.Errorf("real part: %w", err)
	}
	i, err := toFloat(im, 64)
	if err != nil {
		return nil, fmt.Errorf("imaginary part: %w", err)
	}
	return complex(r, i), nil
}

var errOutOfRange = errors.New("value out of range")

func toSigned(l lane, bits int) (int64, error) {
	lo := -int64(1) << (bits - 1)
	hi := int64(uint64(1)<<(bits-1) - 1)

	switch l.class {
	case laneInt:
		if l.i < lo || l.i > hi {
			return 0, errOutOfRange
		}
		return l.i, nil
	case laneUint:
		if l.u > uint64(hi) {
			return 0, errOutOfRange
		}
		return int64(l.u), nil
	default:
		if err := checkIntegral(l.f); err != nil {
			return 0, err
		}
		// 2^(bits-1) is exact in float64 for every width.
		limit := math.Ldexp(1, bits-1)
		if l.f < -limit || l.f >= limit {
			return 0, errOutOfRange
		}
		return int64(l.f), nil
	}
}

func toUnsigned(l lane, bits int) (uint64, error) {
	hi := uint64(math.MaxUint64) >> (64 - bits)

	switch l.class {
	case laneInt:
		if l.i < 0 || uint64(l.i) > hi {
			return 0, errOutOfRange
		}
		return uint64(l.i), nil
	case laneUint:
		if l.u > hi {
			return 0, errOutOfRange
		}
		return l.u, nil
	default:
		if err := checkIntegral(l.f); err != nil {
			return 0, err
		}
		if l.f < 0 || l.f >= math.Ldexp(1, bits) {
			return 0, errOutOfRange
		}
		return uint64(l.f), nil
	}
}

var errInexact = errors.New("integer not exactly representable")

// toFloat accepts integer lanes only when the float target holds them
// exactly. Float lanes are rounded to float32 as usual.
func toFloat(l lane, bits int) (float64, error) {
	var f float64
	switch l.class {
	case laneInt:
		f = float64(l.i)
		if f >= math.Ldexp(1, 63) || int64(f) != l.i {
			return 0, errInexact
		}
	case laneUint:
		f = float64(l.u)
		if f >= math.Ldexp(1, 64) || uint64(f) != l.u {
			return 0, errInexact
		}
	default:
		f = l.f
	}
	if bits == 32 && !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
		return 0, errOutOfRange
	}
	if bits == 32 && l.class != laneFloat && float64(float32(f)) != f {
		return 0, errInexact
	}
	return f, nil
}

func checkIntegral(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("non-finite value for integer type")
	}
	if f != math.Trunc(f) {
		return errors.New("fractional value for integer type")
	}
	return nil
}
