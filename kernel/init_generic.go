//go:build purego || !(amd64 || arm64)

package kernel

import (
	_ "github.com/cwbudde/algo-blocks/kernel/internal/arch/generic"  // register generic backend
	_ "github.com/cwbudde/algo-blocks/kernel/internal/arch/registry" // initialize backend registry
)
