//go:build arm64 && !purego

package kernel

import (
	_ "github.com/cwbudde/algo-blocks/kernel/internal/arch/arm64/neon" // register NEON backend
	_ "github.com/cwbudde/algo-blocks/kernel/internal/arch/generic"    // register generic backend
	_ "github.com/cwbudde/algo-blocks/kernel/internal/arch/registry"   // initialize backend registry
)
