package solver

import (
	"github.com/san-kum/pairmom/internal/compute"
	"github.com/san-kum/pairmom/internal/problem"
	"github.com/san-kum/pairmom/internal/transform"
)

// NaiveSolver runs the nonlinear Neumann iteration with the convolutions
// evaluated by direct radial quadrature, for dimensions where no fast
// transform applies. The fixed birth and death kernels are precomputed
// into dense quadrature matrices applied through the compute backend;
// the gamma cross term, whose both factors change every iteration, falls
// back to the generic quadrature. Correctness over performance.
type NaiveSolver struct {
	Observer Observer
	// Theta overrides the angular quadrature resolution; zero selects
	// the default.
	Theta int
}

func (s *NaiveSolver) Name() string { return "dht-naive" }

func (s *NaiveSolver) Solve(p *problem.Problem) (*Result, error) {
	g := p.Grid()
	nc := transform.NewNaive(p.Dim(), p.Nodes(), g.Step, s.Theta)
	eng := &naiveEngine{
		nc:      nc,
		km:      nc.Matrix(p.Kernels().EvaluateBirth),
		kw:      nc.Matrix(p.Kernels().EvaluateDeath),
		backend: compute.GetBackend(),
	}
	ms := p.Kernels().SampleBirth(g)
	ws := p.Kernels().SampleDeath(g)
	return iterateNonlinear(p, eng, ms, ws, s.Observer), nil
}

type naiveEngine struct {
	nc      *transform.Naive
	km, kw  [][]float64
	backend compute.Backend
}

func (e *naiveEngine) birthConv(c []float64) []float64 {
	return e.backend.MatVecMul(e.km, c)
}

func (e *naiveEngine) deathConv(c []float64) []float64 {
	return e.backend.MatVecMul(e.kw, c)
}

func (e *naiveEngine) crossConv(wc, c []float64) []float64 {
	return e.nc.Convolve(wc, c)
}
