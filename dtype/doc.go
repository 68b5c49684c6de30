// Package dtype describes the element types that flow through compute blocks.
//
// A [DType] identifies a scalar [Kind] (signed/unsigned integer or floating
// point of a given width), whether the sample is complex, and the number of
// lanes that make up one logical sample ([DType.Dimension]). Descriptors are
// plain comparable values.
//
// The package also defines the Go element types used by the kernels: the
// native numeric types, complex64/complex128 and [Complex] for complex
// integers. [Of] maps an element type to its descriptor and [Convert] turns
// an externally supplied constant into a typed value without silent
// truncation.
package dtype
