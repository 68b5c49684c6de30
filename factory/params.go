package factory

import (
	"fmt"
	"strings"
)

// Params holds the parsed parameters for one block instance.
type Params struct {
	ID   string
	Type string
	Args map[string]string
}

// Get returns the named argument, or def if it is missing or blank.
func (p Params) Get(key, def string) string {
	if p.Args == nil {
		return def
	}
	v, ok := p.Args[key]
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

// ParseCall parses a call expression such as
//
//	/comms/const_arithmetic(int16, K-X, 100)
//	/comms/angle(dtype=complex_int16)
//
// Positional arguments are named by argNames in order; key=value arguments
// may follow them. When argNames knows no names for the type, positional
// arguments are stored as "#0", "#1", ... A bare name without parentheses
// has no arguments.
func ParseCall(s string, argNames func(typ string) []string) (Params, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 {
		if s == "" {
			return Params{}, fmt.Errorf("%w: empty call", ErrBadParam)
		}
		return Params{Type: s, Args: map[string]string{}}, nil
	}
	if !strings.HasSuffix(s, ")") {
		return Params{}, fmt.Errorf("%w: missing ')' in %q", ErrBadParam, s)
	}

	p := Params{Type: strings.TrimSpace(s[:open]), Args: map[string]string{}}
	if p.Type == "" {
		return Params{}, fmt.Errorf("%w: missing block type in %q", ErrBadParam, s)
	}

	body := strings.TrimSpace(s[open+1 : len(s)-1])
	if body == "" {
		return p, nil
	}

	var names []string
	if argNames != nil {
		names = argNames(p.Type)
	}

	named := false
	for i, arg := range strings.Split(body, ",") {
		arg = strings.TrimSpace(arg)
		if key, val, ok := strings.Cut(arg, "="); ok {
			named = true
			p.Args[strings.TrimSpace(key)] = strings.TrimSpace(val)
			continue
		}
		if named {
			return Params{}, fmt.Errorf("%w: positional argument %q after named arguments", ErrBadParam, arg)
		}
		switch {
		case names == nil:
			p.Args[fmt.Sprintf("#%d", i)] = arg
		case i >= len(names):
			return Params{}, fmt.Errorf("%w: %s takes %d positional arguments", ErrBadParam, p.Type, len(names))
		default:
			p.Args[names[i]] = arg
		}
	}
	return p, nil
}
