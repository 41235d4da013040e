package grid

import (
	"math"
)

// Grid is a uniform radial grid r_i = i*Step, i = 0..Nodes-1, embedded in
// Dim-dimensional space. The domain radius is Nodes*Step; the last sampled
// node sits one step inside it.
type Grid struct {
	Dim   int
	Nodes int
	Step  float64
}

func New(dim, nodes int, radius float64) Grid {
	return Grid{
		Dim:   dim,
		Nodes: nodes,
		Step:  radius / float64(nodes),
	}
}

func (g Grid) R(i int) float64 {
	return float64(i) * g.Step
}

func (g Grid) Radius() float64 {
	return float64(g.Nodes) * g.Step
}

// Radii returns all node positions.
func (g Grid) Radii() []float64 {
	r := make([]float64, g.Nodes)
	for i := range r {
		r[i] = g.R(i)
	}
	return r
}

// SphereArea returns the surface area of the unit sphere S^{dim-1},
// i.e. 2*pi^(d/2)/Gamma(d/2). For dim=1 this is 2 (the two half-lines),
// so the same radial integration formula covers every dimension.
func SphereArea(dim int) float64 {
	d := float64(dim)
	return 2 * math.Pow(math.Pi, d/2) / math.Gamma(d/2)
}

// BallVolume returns the volume of the dim-ball of radius r.
func BallVolume(dim int, r float64) float64 {
	return SphereArea(dim) * math.Pow(r, float64(dim)) / float64(dim)
}

// QuadWeights returns trapezoid weights for integration over [0, R_last].
// A single-node grid gets the full step as its weight.
func (g Grid) QuadWeights() []float64 {
	w := make([]float64, g.Nodes)
	if g.Nodes == 1 {
		w[0] = g.Step
		return w
	}
	for i := range w {
		w[i] = g.Step
	}
	w[0] = g.Step / 2
	w[g.Nodes-1] = g.Step / 2
	return w
}

// Integrate computes the whole-space integral of a radial field sampled on
// the grid: SphereArea(Dim) * sum_i w_i r_i^(Dim-1) f_i. The reduction is a
// plain serial sum so repeated solves are bit-for-bit reproducible.
func (g Grid) Integrate(f []float64) float64 {
	w := g.QuadWeights()
	sum := 0.0
	for i, fi := range f {
		sum += w[i] * radialFactor(g.Dim, g.R(i)) * fi
	}
	return SphereArea(g.Dim) * sum
}

// IntegrateProduct integrates the pointwise product of two radial fields
// over the whole space.
func (g Grid) IntegrateProduct(a, b []float64) float64 {
	w := g.QuadWeights()
	sum := 0.0
	for i := range a {
		sum += w[i] * radialFactor(g.Dim, g.R(i)) * a[i] * b[i]
	}
	return SphereArea(g.Dim) * sum
}

func radialFactor(dim int, r float64) float64 {
	if dim == 1 {
		return 1
	}
	return math.Pow(r, float64(dim-1))
}

// SupDist returns the sup-norm distance between two equal-length samples.
func SupDist(a, b []float64) float64 {
	max := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > max {
			max = d
		}
	}
	return max
}
