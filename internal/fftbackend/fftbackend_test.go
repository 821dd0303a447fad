package fftbackend

import (
	"math"
	"testing"
)

func assertApproxComplex(t *testing.T, got, want complex128, tol float64, format string, args ...any) {
	t.Helper()

	if d := got - want; math.Hypot(real(d), imag(d)) > tol {
		t.Fatalf(format+": got %v, want %v", append(args, got, want)...)
	}
}

func TestAxisPlanForwardDC(t *testing.T) {
	t.Parallel()

	const n = 8

	plan, err := NewAxisPlan(n)
	if err != nil {
		t.Fatalf("NewAxisPlan failed: %v", err)
	}

	data := make([]complex128, n)
	for i := range data {
		data[i] = 1
	}

	if err := plan.Forward(data, 1); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	assertApproxComplex(t, data[0], complex(float64(n), 0), 1e-9, "bin 0")

	for k := 1; k < n; k++ {
		assertApproxComplex(t, data[k], 0, 1e-9, "bin %d", k)
	}
}

func TestAxisPlanRoundTrip(t *testing.T) {
	t.Parallel()

	const n = 12

	plan, err := NewAxisPlan(n)
	if err != nil {
		t.Fatalf("NewAxisPlan failed: %v", err)
	}

	src := make([]complex128, n)
	for i := range src {
		src[i] = complex(float64(i+1), float64(i)*0.5)
	}

	data := append([]complex128(nil), src...)

	if err := plan.Forward(data, 1); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	if err := plan.Inverse(data, 1); err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}

	for i := range data {
		want := complex(real(src[i])*float64(n), imag(src[i])*float64(n))
		assertApproxComplex(t, data[i], want, 1e-6, "sample %d", i)
	}
}

func TestGridForwardOnSeparableSignal(t *testing.T) {
	t.Parallel()

	sizes := []int{4, 6}

	grid, err := NewGrid(sizes)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	if grid.Len() != 24 {
		t.Fatalf("Len() = %d, want 24", grid.Len())
	}

	data := make([]complex128, grid.Len())
	for i := range data {
		data[i] = 1
	}

	if err := grid.Forward(data); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	assertApproxComplex(t, data[0], complex(float64(grid.Len()), 0), 1e-8, "DC bin")

	for i := 1; i < len(data); i++ {
		assertApproxComplex(t, data[i], 0, 1e-8, "bin %d", i)
	}
}

func TestGridRoundTrip(t *testing.T) {
	t.Parallel()

	sizes := []int{3, 5, 4}

	grid, err := NewGrid(sizes)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	src := make([]complex128, grid.Len())
	for i := range src {
		src[i] = complex(math.Sin(float64(i)), math.Cos(float64(i)*0.3))
	}

	data := append([]complex128(nil), src...)

	if err := grid.Forward(data); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	if err := grid.Inverse(data); err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}

	scale := float64(grid.Len())
	for i := range data {
		want := complex(real(src[i])*scale, imag(src[i])*scale)
		assertApproxComplex(t, data[i], want, 1e-5, "sample %d", i)
	}
}

func TestNewGridRejectsEmptySizes(t *testing.T) {
	t.Parallel()

	if _, err := NewGrid(nil); err == nil {
		t.Fatal("expected error for empty grid")
	}
}

func TestRealAxisPlanSpectrumLen(t *testing.T) {
	t.Parallel()

	plan, err := NewRealAxisPlan(16)
	if err != nil {
		t.Fatalf("NewRealAxisPlan failed: %v", err)
	}

	if got, want := plan.SpectrumLen(), 9; got != want {
		t.Fatalf("SpectrumLen() = %d, want %d", got, want)
	}

	src := make([]float64, plan.Len())
	for i := range src {
		src[i] = 1
	}

	dst := make([]complex128, plan.SpectrumLen())
	if err := plan.Forward(dst, src); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	assertApproxComplex(t, dst[0], complex(float64(plan.Len()), 0), 1e-9, "DC bin")
}

func TestRealAxisPlanRoundTrip(t *testing.T) {
	t.Parallel()

	plan, err := NewRealAxisPlan(16)
	if err != nil {
		t.Fatalf("NewRealAxisPlan failed: %v", err)
	}

	src := make([]float64, plan.Len())
	for i := range src {
		src[i] = math.Sin(float64(i) * 0.7)
	}

	spectrum := make([]complex128, plan.SpectrumLen())
	if err := plan.Forward(spectrum, src); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	recovered := make([]float64, plan.Len())
	if err := plan.Inverse(recovered, spectrum); err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}

	for i := range src {
		got := recovered[i] / float64(plan.Len())
		if math.Abs(got-src[i]) > 1e-9 {
			t.Fatalf("sample %d: got %v, want %v", i, got, src[i])
		}
	}
}

func TestRealGridRoundTrip2D(t *testing.T) {
	t.Parallel()

	sizes := []int{6, 5}

	grid, err := NewRealGrid(sizes)
	if err != nil {
		t.Fatalf("NewRealGrid failed: %v", err)
	}

	if grid.RealLen() != 30 {
		t.Fatalf("RealLen() = %d, want 30", grid.RealLen())
	}

	if grid.SpectrumTotal() != 4*5 {
		t.Fatalf("SpectrumTotal() = %d, want %d", grid.SpectrumTotal(), 4*5)
	}

	src := make([]float64, grid.RealLen())
	for i := range src {
		src[i] = math.Cos(float64(i) * 0.31)
	}

	spectrum := make([]complex128, grid.SpectrumTotal())
	if err := grid.Forward(spectrum, src); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	recovered := make([]float64, grid.RealLen())
	if err := grid.Inverse(recovered, spectrum); err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}

	scale := float64(sizes[0] * sizes[1])
	for i := range src {
		got := recovered[i] / scale
		if math.Abs(got-src[i]) > 1e-9 {
			t.Fatalf("sample %d: got %v, want %v", i, got, src[i])
		}
	}
}

func TestNewRealGridRejectsEmptySizes(t *testing.T) {
	t.Parallel()

	if _, err := NewRealGrid(nil); err == nil {
		t.Fatal("expected error for empty grid")
	}
}
