package transform

import (
	"math"

	"github.com/san-kum/pairmom/internal/grid"
)

// DefaultTheta is the angular resolution of the naive radial convolution.
const DefaultTheta = 128

// Naive evaluates radial convolutions in arbitrary dimension >= 2 by
// direct quadrature of
//
//	(f*g)(r) = Omega_{D-2} * int s^{D-1} f(s)
//	           int_0^pi g(sqrt(r^2+s^2-2rs cos t)) sin^{D-2}(t) dt ds.
//
// This is the deliberately slow fallback used when the spectral shortcuts
// of dimensions 1 and 3 do not apply; cost is O(n^2 * nTheta) per call.
type Naive struct {
	dim    int
	nodes  int
	h      float64
	omega  float64
	cosT   []float64
	thetaW []float64
	radW   []float64
}

// NewNaive precomputes the angular rule for the given grid geometry.
func NewNaive(dim, nodes int, h float64, nTheta int) *Naive {
	if nTheta <= 0 {
		nTheta = DefaultTheta
	}
	nc := &Naive{
		dim:   dim,
		nodes: nodes,
		h:     h,
		// Omega_{D-2} is the surface area of the unit sphere S^{D-2}.
		omega:  grid.SphereArea(dim - 1),
		cosT:   make([]float64, nTheta),
		thetaW: make([]float64, nTheta),
		radW:   make([]float64, nodes),
	}
	dt := math.Pi / float64(nTheta)
	for t := 0; t < nTheta; t++ {
		theta := (float64(t) + 0.5) * dt
		nc.cosT[t] = math.Cos(theta)
		nc.thetaW[t] = dt * math.Pow(math.Sin(theta), float64(dim-2))
	}
	for j := 0; j < nodes; j++ {
		w := h
		if nodes > 1 && (j == 0 || j == nodes-1) {
			w = h / 2
		}
		nc.radW[j] = w * math.Pow(h*float64(j), float64(dim-1))
	}
	return nc
}

// Convolve computes (f*g) on the grid, interpolating g linearly between
// nodes and treating it as zero beyond the last node.
func (nc *Naive) Convolve(f, g []float64) []float64 {
	out := make([]float64, nc.nodes)
	for i := 0; i < nc.nodes; i++ {
		ri := nc.h * float64(i)
		sum := 0.0
		for j := 0; j < nc.nodes; j++ {
			if f[j] == 0 || nc.radW[j] == 0 {
				continue
			}
			rj := nc.h * float64(j)
			ang := 0.0
			for t := range nc.cosT {
				dist := math.Sqrt(ri*ri + rj*rj - 2*ri*rj*nc.cosT[t])
				ang += nc.thetaW[t] * nc.interp(g, dist)
			}
			sum += nc.radW[j] * f[j] * ang
		}
		out[i] = nc.omega * sum
	}
	return out
}

// Matrix builds the dense quadrature operator K with (K c)_i ~ (k*c)(r_i)
// for a fixed kernel density evaluated exactly at the quadrature
// distances. Applying K to the evolving iterate replaces re-running the
// angular quadrature every iteration.
func (nc *Naive) Matrix(eval func(float64) float64) [][]float64 {
	k := make([][]float64, nc.nodes)
	for i := 0; i < nc.nodes; i++ {
		k[i] = make([]float64, nc.nodes)
		ri := nc.h * float64(i)
		for j := 0; j < nc.nodes; j++ {
			if nc.radW[j] == 0 {
				continue
			}
			rj := nc.h * float64(j)
			ang := 0.0
			for t := range nc.cosT {
				dist := math.Sqrt(ri*ri + rj*rj - 2*ri*rj*nc.cosT[t])
				ang += nc.thetaW[t] * eval(dist)
			}
			k[i][j] = nc.omega * nc.radW[j] * ang
		}
	}
	return k
}

func (nc *Naive) interp(g []float64, r float64) float64 {
	x := r / nc.h
	i := int(x)
	if i >= nc.nodes-1 {
		if i == nc.nodes-1 && x == float64(i) {
			return g[i]
		}
		return 0
	}
	frac := x - float64(i)
	return g[i]*(1-frac) + g[i+1]*frac
}
