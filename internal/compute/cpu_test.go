package compute

import (
	"math"
	"testing"
)

func TestCPUMatVecMulSmall(t *testing.T) {
	b := NewCPUBackend()
	mat := [][]float64{
		{1, 2},
		{3, 4},
	}
	got := b.MatVecMul(mat, []float64{5, 6})
	want := []float64{17, 39}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: got %g, expected %g", i, got[i], want[i])
		}
	}
}

func TestCPUMatVecMulParallelAgreesWithSerial(t *testing.T) {
	const n = 257
	mat := make([][]float64, n)
	vec := make([]float64, n)
	for i := 0; i < n; i++ {
		mat[i] = make([]float64, n)
		vec[i] = math.Sin(float64(i))
		for j := 0; j < n; j++ {
			mat[i][j] = 1 / (1 + float64(i+j))
		}
	}

	got := NewCPUBackend().MatVecMul(mat, vec)

	for i := 0; i < n; i++ {
		want := 0.0
		for j := 0; j < n; j++ {
			want += mat[i][j] * vec[j]
		}
		if got[i] != want {
			t.Errorf("row %d: parallel %g vs serial %g", i, got[i], want)
		}
	}
}

func TestCPUMatVecMulRepeatable(t *testing.T) {
	const n = 100
	mat := make([][]float64, n)
	vec := make([]float64, n)
	for i := 0; i < n; i++ {
		mat[i] = make([]float64, n)
		vec[i] = float64(i) * 0.37
		for j := 0; j < n; j++ {
			mat[i][j] = float64(i*j) * 1e-3
		}
	}
	b := NewCPUBackend()

	a := b.MatVecMul(mat, vec)
	c := b.MatVecMul(mat, vec)

	for i := range a {
		if a[i] != c[i] {
			t.Fatalf("row %d differs between identical calls", i)
		}
	}
}

func TestAutoSelectBackend(t *testing.T) {
	b := AutoSelectBackend()
	if b == nil {
		t.Fatal("no backend selected")
	}
	if !b.Available() {
		t.Errorf("selected backend %q reports unavailable", b.Name())
	}
}
