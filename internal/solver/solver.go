// Package solver implements the equation-solving algorithms for the
// equilibrium second spatial moment of the spatially structured
// birth-death model.
//
// All solvers work on the same discretized system. With C the pair
// density, N the first moment, m/w the normalized birth and death
// dispersal densities and T the closed third moment, equilibrium requires
// at every grid node xi
//
//	(d + s*w(xi))*C(xi) + s*int w(y) T(xi,y) dy
//	    = b*(m*C)(xi) + b*N*m(xi)
//
// together with the global balance (b-d)*N = s*int w(y) C(y) dy.
//
// C tends to N^2 at large separation, so the solvers iterate on the
// decaying excess c = C - N^2; convolutions then act on fields that
// vanish by the domain boundary.
package solver

import (
	"errors"
	"math"

	"github.com/san-kum/pairmom/internal/problem"
)

// ErrSingularSystem indicates that the Nystrom matrix was numerically
// singular; the solve aborts with no partial result.
var ErrSingularSystem = errors.New("solver: singular quadrature system")

// nFloor guards divisions by the first moment near the extinction
// equilibrium.
const nFloor = 1e-12

// Solver solves one configured problem. Implementations are stateless
// across calls: solving the same Problem twice yields bit-for-bit
// identical Results.
type Solver interface {
	Name() string
	Solve(p *problem.Problem) (*Result, error)
}

// Observer receives per-iteration progress from the fixed-point solvers.
type Observer interface {
	OnIteration(iter int, residual, n float64)
}

// New selects the solver for the problem's method and dimensionality:
// the spectral and linear variants cover dimensions 1 and 3, everything
// else falls through to the naive transform solver.
func New(p *problem.Problem) Solver {
	if p.Dim() != 1 && p.Dim() != 3 {
		return &NaiveSolver{}
	}
	switch p.Method() {
	case problem.LinearNeuman:
		return &LinearSolver{}
	case problem.Nystrom:
		return &NystromSolver{}
	default:
		return &FFTSolver{}
	}
}

// WithObserver attaches a progress observer to solvers that iterate;
// direct solvers are returned unchanged.
func WithObserver(s Solver, obs Observer) Solver {
	switch v := s.(type) {
	case *FFTSolver:
		v.Observer = obs
	case *LinearSolver:
		v.Observer = obs
	case *NaiveSolver:
		v.Observer = obs
	}
	return s
}

// balanceRoot solves the global balance s*N^2 - (b-d)*N + s*wc = 0 for
// the first moment, where wc = int w*(C - N^2). The upper root is the
// stable equilibrium. When the crowding wc leaves no real root the
// critical double root is returned with ok=false so an iteration can
// ride out a transient overshoot; a final state that still has no root
// means the population cannot balance and the solvers report
// extinction, matching the direct solver's clamp of a negative first
// moment.
func balanceRoot(b, s, d, wc float64) (n float64, ok bool) {
	bd := b - d
	disc := bd*bd - 4*s*s*wc
	ok = disc >= 0
	if !ok {
		disc = 0
	}
	n = (bd + math.Sqrt(disc)) / (2 * s)
	if n < 0 {
		n = 0
	}
	return n, ok
}

// meanField is the non-spatial equilibrium density used to seed the
// iterations.
func meanField(b, s, d float64) float64 {
	n := (b - d) / s
	if n < 0 {
		return 0
	}
	return n
}
