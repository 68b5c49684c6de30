// Package block implements the elementwise compute blocks.
//
// ConstArithmetic applies one of the six constant operations (X+K, X-K,
// K-X, X*K, X/K, K/X) with a live-mutable constant K. Angle maps complex
// samples to their phase angle. Both resolve their kernel exactly once at
// construction and refuse construction when no kernel exists for the
// requested element type.
//
// The typed constructors (NewTypedConstArithmetic, NewTypedAngle) are
// used when the element type is known at compile time. NewConstArithmetic
// and NewAngle accept a runtime dtype.DType and select the matching
// specialization from a fixed table.
package block
