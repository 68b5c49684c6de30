//go:build amd64 && !purego

package avx2

import (
	"github.com/cwbudde/algo-blocks/kernel/internal/arch/unroll"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Name is the registered implementation name.
const Name = "avx2"

// init registers the accelerated real float kernels for AVX2-capable CPUs.
//
// Priority: 20 (preferred over generic when available)
func init() {
	unroll.Register(Name, cpu.SIMDAVX2, 20)
}
