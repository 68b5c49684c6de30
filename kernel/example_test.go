package kernel_test

import (
	"fmt"

	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/kernel"
)

func ExampleResolveConst() {
	sub, _, err := kernel.ResolveConst[int16](kernel.ConstSubX)
	if err != nil {
		panic(err)
	}

	out := make([]int16, 3)
	sub(out, []int16{10, 20, 30}, 100)
	fmt.Println(out)
	// Output: [90 80 70]
}

func ExampleResolve() {
	_, err := kernel.Resolve(kernel.Angle, dtype.ComplexOf(dtype.Uint8))
	fmt.Println(err)
	// Output: kernel: unsupported configuration: operation=angle type=complex_uint8
}
