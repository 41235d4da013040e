package kernel

import (
	"fmt"
	"math"

	"github.com/san-kum/pairmom/internal/grid"
)

// normSamples is the resolution of the quadrature used to fix the
// normalization constants at bind time.
const normSamples = 8192

// Pair is a kernel bound to a dimension and domain radius. Both densities
// are normalized to unit mass over the truncated support [0, radius] in
// the bound dimension, so downstream code never re-normalizes.
type Pair struct {
	k      Kernel
	dim    int
	radius float64
	cm, cw float64
}

// Bind normalizes the kernel for the given dimension and domain radius.
// The normalization is computed once here; evaluation afterwards is pure.
func Bind(k Kernel, dim int, radius float64) (*Pair, error) {
	if dim < 1 {
		return nil, fmt.Errorf("kernel: dimension %d: %w", dim, ErrInvalidParameters)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("kernel: domain radius %g: %w", radius, ErrInvalidParameters)
	}
	cm, err := normalize(k, k.birth, dim, radius)
	if err != nil {
		return nil, err
	}
	cw, err := normalize(k, k.death, dim, radius)
	if err != nil {
		return nil, err
	}
	return &Pair{k: k, dim: dim, radius: radius, cm: cm, cw: cw}, nil
}

func normalize(k Kernel, p profile, dim int, radius float64) (float64, error) {
	if k.family == Constant {
		// Exact: uniform density on the ball of radius min(p.a, radius).
		r := math.Min(p.a, radius)
		return 1 / grid.BallVolume(dim, r), nil
	}
	h := radius / normSamples
	sum := 0.0
	for i := 0; i <= normSamples; i++ {
		r := float64(i) * h
		w := h
		if i == 0 || i == normSamples {
			w = h / 2
		}
		f := k.profileAt(p, r)
		if dim > 1 {
			f *= math.Pow(r, float64(dim-1))
		}
		sum += w * f
	}
	mass := grid.SphereArea(dim) * sum
	if mass <= 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return 0, fmt.Errorf("kernel: %s density has no mass on [0, %g]: %w", k.family, radius, ErrInvalidParameters)
	}
	return 1 / mass, nil
}

func (p *Pair) Kernel() Kernel  { return p.k }
func (p *Pair) Dim() int        { return p.dim }
func (p *Pair) Radius() float64 { return p.radius }

// EvaluateBirth returns the normalized birth-dispersal density m(r).
// Outside [0, radius] the density is zero.
func (p *Pair) EvaluateBirth(r float64) float64 {
	if r < 0 || r > p.radius {
		return 0
	}
	return p.cm * p.k.profileAt(p.k.birth, r)
}

// EvaluateDeath returns the normalized death-interaction density w(r).
func (p *Pair) EvaluateDeath(r float64) float64 {
	if r < 0 || r > p.radius {
		return 0
	}
	return p.cw * p.k.profileAt(p.k.death, r)
}

// SampleBirth evaluates m on every node of the grid.
func (p *Pair) SampleBirth(g grid.Grid) []float64 {
	out := make([]float64, g.Nodes)
	for i := range out {
		out[i] = p.EvaluateBirth(g.R(i))
	}
	return out
}

// SampleDeath evaluates w on every node of the grid.
func (p *Pair) SampleDeath(g grid.Grid) []float64 {
	out := make([]float64, g.Nodes)
	for i := range out {
		out[i] = p.EvaluateDeath(g.R(i))
	}
	return out
}
