package kernel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-blocks/kernel/internal/arch/registry"
)

// Op identifies an elementwise operation.
type Op = registry.Op

// Supported operations.
const (
	AddConst  = registry.AddConst
	SubConst  = registry.SubConst
	ConstSubX = registry.ConstSubX
	MulConst  = registry.MulConst
	DivConst  = registry.DivConst
	ConstDivX = registry.ConstDivX
	Angle     = registry.Angle
)

// ConstOps lists the constant-arithmetic operations in declaration order.
var ConstOps = []Op{AddConst, SubConst, ConstSubX, MulConst, DivConst, ConstDivX}

// ErrUnknownOp is returned by ParseOp for an unrecognized name.
var ErrUnknownOp = errors.New("kernel: unknown operation")

var opAliases = map[string]Op{
	"x+k":       AddConst,
	"x-k":       SubConst,
	"k-x":       ConstSubX,
	"x*k":       MulConst,
	"x/k":       DivConst,
	"k/x":       ConstDivX,
	"addconst":  AddConst,
	"subconst":  SubConst,
	"constsubx": ConstSubX,
	"mulconst":  MulConst,
	"divconst":  DivConst,
	"constdivx": ConstDivX,
	"angle":     Angle,
}

// ParseOp converts an operation name into an Op. Both the symbolic names
// ("X+K", "K/X") and the identifiers ("AddConst", "ConstDivX") are
// accepted, case-insensitively and ignoring blanks.
func ParseOp(name string) (Op, error) {
	s := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	op, ok := opAliases[s]
	if !ok {
		return registry.OpInvalid, fmt.Errorf("%w: %q", ErrUnknownOp, name)
	}
	return op, nil
}
