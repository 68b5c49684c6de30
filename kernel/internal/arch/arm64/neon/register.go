//go:build arm64 && !purego

package neon

import (
	"github.com/cwbudde/algo-blocks/kernel/internal/arch/unroll"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Name is the registered implementation name.
const Name = "neon"

// init registers the accelerated real float kernels for NEON-capable CPUs.
//
// Priority: 15 (preferred over generic when available)
func init() {
	unroll.Register(Name, cpu.SIMDNEON, 15)
}
