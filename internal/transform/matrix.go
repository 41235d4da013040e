package transform

import (
	"fmt"
	"math"

	"github.com/san-kum/pairmom/internal/grid"
)

// fineSteps is the resolution of the cumulative kernel integral used by
// the 3D quadrature matrix.
const fineSteps = 8192

// ConvolutionMatrix builds the dense quadrature operator K with
// (K c)_i ~ (kern*c)(r_i) for radial fields on g, in dimensions 1 and 3.
// The kernel density is evaluated exactly (not interpolated) at the
// quadrature points, so the matrix rows carry the trapezoid weights times
// kernel samples the Nystrom discretization needs.
func ConvolutionMatrix(g grid.Grid, eval func(float64) float64) ([][]float64, error) {
	switch g.Dim {
	case 1:
		return matrix1D(g, eval), nil
	case 3:
		return matrix3D(g, eval), nil
	default:
		return nil, fmt.Errorf("transform: no quadrature matrix for dimension %d", g.Dim)
	}
}

// matrix1D folds the even extension into the half-line:
// (k*c)(r) = int_0^R (k(|r-u|) + k(r+u)) c(u) du.
func matrix1D(g grid.Grid, eval func(float64) float64) [][]float64 {
	n := g.Nodes
	qw := g.QuadWeights()
	k := make([][]float64, n)
	for i := 0; i < n; i++ {
		k[i] = make([]float64, n)
		ri := g.R(i)
		for j := 0; j < n; j++ {
			rj := g.R(j)
			k[i][j] = qw[j] * (eval(math.Abs(ri-rj)) + eval(ri+rj))
		}
	}
	return k
}

// matrix3D uses the shell-average reduction of the 3D radial convolution:
// (k*c)(r) = (2 pi / r) int_0^R s c(s) (K2(r+s) - K2(|r-s|)) ds with
// K2(u) = int_0^u t k(t) dt, and the r=0 row as 4 pi int s^2 k(s) c(s) ds.
func matrix3D(g grid.Grid, eval func(float64) float64) [][]float64 {
	n := g.Nodes
	qw := g.QuadWeights()

	// Cumulative integral of t*k(t) on [0, 2R]; arguments reach r+s <= 2R.
	upper := 2 * g.Radius()
	fh := upper / fineSteps
	cum := make([]float64, fineSteps+1)
	prev := 0.0
	for t := 1; t <= fineSteps; t++ {
		u := fh * float64(t)
		val := u * eval(u)
		cum[t] = cum[t-1] + fh*(prev+val)/2
		prev = val
	}
	k2 := func(u float64) float64 {
		x := u / fh
		i := int(x)
		if i >= fineSteps {
			return cum[fineSteps]
		}
		frac := x - float64(i)
		return cum[i]*(1-frac) + cum[i+1]*frac
	}

	k := make([][]float64, n)
	for i := 0; i < n; i++ {
		k[i] = make([]float64, n)
		ri := g.R(i)
		for j := 0; j < n; j++ {
			rj := g.R(j)
			if i == 0 {
				k[i][j] = qw[j] * 4 * math.Pi * rj * rj * eval(rj)
				continue
			}
			k[i][j] = qw[j] * 2 * math.Pi / ri * rj * (k2(ri+rj) - k2(math.Abs(ri-rj)))
		}
	}
	return k
}
