package block

import "errors"

// ErrDivideByZero is returned when X/K is configured with a zero constant
// on an integer element type. For complex integers only 0+0i is a zero
// divisor.
var ErrDivideByZero = errors.New("block: integer division by zero constant")
