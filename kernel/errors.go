package kernel

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-blocks/dtype"
)

// ErrUnsupported is matched by every *UnsupportedError.
var ErrUnsupported = errors.New("kernel: unsupported configuration")

// UnsupportedError reports that no kernel is registered for an
// (operation, type) pair.
type UnsupportedError struct {
	Op   Op
	Type dtype.DType

	// Detail optionally narrows the reason, e.g. a Go type mismatch.
	Detail string
}

func (e *UnsupportedError) Error() string {
	msg := fmt.Sprintf("kernel: unsupported configuration: operation=%s type=%s", e.Op, e.Type)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}
