// Package kernel resolves elementwise numeric kernels for a given operation
// and element type.
//
// Resolution happens once, typically when a block is constructed: the
// registry is consulted with the scalar descriptor and the detected CPU
// features, and the highest-priority compatible kernel is returned as a plain
// function value. Callers keep that function and invoke it on every buffer;
// there is no further dispatch per call or per element.
//
// Two kernel families are provided:
//
//   - Constant arithmetic ([ConstFn]): X+K, X-K, K-X, X*K, X/K and K/X for
//     every integer width 8..64 (signed and unsigned) and both float widths,
//     each in real and complex form.
//   - Angle ([AngleFn]): the argument of a complex sample, for complex
//     float64, float32, int64, int32, int16 and int8 input. Integer outputs
//     use a signed fixed-point encoding of (-pi, pi].
//
// Integer lanes wrap on overflow. Integer division by zero yields 0 rather
// than a machine fault; blocks reject a zero X/K constant up front.
package kernel
