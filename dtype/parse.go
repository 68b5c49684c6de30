package dtype

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownType is returned by Parse for an unrecognized type name.
var ErrUnknownType = errors.New("dtype: unknown type name")

var kindAliases = map[string]Kind{
	"int8":    Int8,
	"int16":   Int16,
	"int32":   Int32,
	"int64":   Int64,
	"uint8":   Uint8,
	"uint16":  Uint16,
	"uint32":  Uint32,
	"uint64":  Uint64,
	"float32": Float32,
	"float64": Float64,
	"float":   Float32,
	"double":  Float64,
	"int":     Int32,
	"uint":    Uint32,
}

// Parse converts a host type name into a descriptor.
//
// Accepted forms are the scalar names ("int8" … "uint64", "float32",
// "float64", plus the aliases "float", "double", "int", "uint"), complex
// forms with a "complex_" or "c" prefix ("complex_int16", "cfloat32") and an
// optional trailing "x<N>" dimension ("float32x2"). Names are
// case-insensitive.
func Parse(name string) (DType, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return DType{}, fmt.Errorf("%w: empty name", ErrUnknownType)
	}

	dimension := 1
	if i := strings.LastIndexByte(s, 'x'); i > 0 && i < len(s)-1 && isDigits(s[i+1:]) {
		n, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return DType{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
		}
		dimension = n
		s = s[:i]
	}

	isComplex := false
	switch {
	case strings.HasPrefix(s, "complex_"):
		isComplex = true
		s = strings.TrimPrefix(s, "complex_")
	case strings.HasPrefix(s, "complex"):
		isComplex = true
		s = strings.TrimPrefix(s, "complex")
	case strings.HasPrefix(s, "c"):
		isComplex = true
		s = strings.TrimPrefix(s, "c")
	}

	kind, ok := kindAliases[s]
	if !ok {
		return DType{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}

	dt, err := New(kind, isComplex, dimension)
	if err != nil {
		return DType{}, fmt.Errorf("parse %q: %w", name, err)
	}
	return dt, nil
}

// MustParse is like Parse but panics on error.
func MustParse(name string) DType {
	dt, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return dt
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
