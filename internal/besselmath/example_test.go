package besselmath_test

import (
	"fmt"

	"github.com/cwbudde/algo-nufft/internal/besselmath"
)

func ExampleI0() {
	fmt.Println(besselmath.I0(0))
	// Output: 1
}
