package kernel

import (
	"math"
	"strconv"
	"testing"
)

func BenchmarkEvaluate(b *testing.B) {
	halfWidths := []int{2, 4, 8}
	for _, m := range halfWidths {
		dx := 2 * math.Pi / 1024

		d, err := OptimalKernel(KaiserBessel, m, dx, 2.0)
		if err != nil {
			b.Fatalf("OptimalKernel: %v", err)
		}

		values := make([]float64, d.Width())

		b.Run(strconv.Itoa(m), func(b *testing.B) {
			b.ReportAllocs()

			for range b.N {
				if _, err := d.Evaluate(0.37, values); err != nil {
					b.Fatalf("Evaluate: %v", err)
				}
			}
		})
	}
}
