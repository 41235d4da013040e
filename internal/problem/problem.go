// Package problem carries the validated, immutable configuration of a
// single equilibrium solve: model rates, closure weights, grid geometry
// and the bound dispersal kernels.
package problem

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/pairmom/internal/closure"
	"github.com/san-kum/pairmom/internal/grid"
	"github.com/san-kum/pairmom/internal/kernel"
)

// ErrInvalidConfiguration indicates a configuration that cannot be solved.
var ErrInvalidConfiguration = errors.New("problem: invalid configuration")

// Method selects the solution algorithm.
type Method int

const (
	// Neuman is the nonlinear fixed-point iteration (default).
	Neuman Method = iota
	// LinearNeuman is the fixed-point iteration under the asymmetric
	// linear closure.
	LinearNeuman
	// Nystrom discretizes the linear integral equation into a dense
	// system solved directly.
	Nystrom
)

func (m Method) String() string {
	switch m {
	case Neuman:
		return "neuman"
	case LinearNeuman:
		return "lneuman"
	case Nystrom:
		return "nystrom"
	default:
		return "unknown"
	}
}

// Linear reports whether the method assumes the linear closure, which
// forces weights alpha=1, beta=gamma=0 regardless of user input.
func (m Method) Linear() bool {
	return m == LinearNeuman || m == Nystrom
}

func ParseMethod(name string) (Method, error) {
	switch name {
	case "neuman", "":
		return Neuman, nil
	case "lneuman":
		return LinearNeuman, nil
	case "nystrom":
		return Nystrom, nil
	default:
		return 0, fmt.Errorf("unknown method %q: %w", name, ErrInvalidConfiguration)
	}
}

// Params is the construction bundle for a Problem.
type Params struct {
	Dim        int
	Nodes      int
	Iterations int
	// Radius of the solve domain; values <= 0 request auto-sizing from
	// the kernel reach.
	Radius float64
	// Birth is the per-capita birth rate b, Death the density-dependent
	// death coefficient s, EnvDeath the environmental death rate d.
	Birth    float64
	Death    float64
	EnvDeath float64
	Weights  closure.Weights
	// Accuracy in decimal places: convergence threshold 10^-Accuracy and
	// rounding of reported results.
	Accuracy int
	Kernel   kernel.Kernel
	Method   Method
}

// Problem is the read-only configuration consumed by the solvers.
type Problem struct {
	dim        int
	nodes      int
	iterations int
	radius     float64
	birth      float64
	death      float64
	envDeath   float64
	weights    closure.Weights
	accuracy   int
	kernels    *kernel.Pair
	method     Method
}

// New validates the parameters, auto-computes the domain radius when
// requested, binds the kernel pair and returns the immutable Problem.
func New(p Params) (*Problem, error) {
	if p.Dim < 1 {
		return nil, fmt.Errorf("dimension %d: %w", p.Dim, ErrInvalidConfiguration)
	}
	if p.Nodes < 1 {
		return nil, fmt.Errorf("node count %d: %w", p.Nodes, ErrInvalidConfiguration)
	}
	if p.Iterations < 1 {
		return nil, fmt.Errorf("iteration count %d: %w", p.Iterations, ErrInvalidConfiguration)
	}
	if p.Accuracy < 1 || p.Accuracy > 15 {
		return nil, fmt.Errorf("accuracy %d decimal places: %w", p.Accuracy, ErrInvalidConfiguration)
	}
	if p.Birth < 0 {
		return nil, fmt.Errorf("birth rate %g: %w", p.Birth, ErrInvalidConfiguration)
	}
	if p.Death <= 0 {
		return nil, fmt.Errorf("species death rate %g: %w", p.Death, ErrInvalidConfiguration)
	}
	if p.EnvDeath < 0 {
		return nil, fmt.Errorf("environmental death rate %g: %w", p.EnvDeath, ErrInvalidConfiguration)
	}
	weights := p.Weights
	if p.Method.Linear() {
		// Linear methods ignore the user weights and use the asymmetric
		// closure A=1, B=G=0.
		weights = closure.Linearized()
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidConfiguration)
	}
	if p.Method.Linear() && p.Dim != 1 && p.Dim != 3 {
		return nil, fmt.Errorf("method %s needs dimension 1 or 3, got %d: %w", p.Method, p.Dim, ErrInvalidConfiguration)
	}
	radius := p.Radius
	if radius <= 0 {
		// The correlation structure lives on the kernel scale; sizing the
		// domain to the reach keeps the low spectral modes contractive and
		// the grid resolution on the densities themselves.
		radius = p.Kernel.Reach()
	}
	if radius <= 0 || math.IsInf(radius, 0) || math.IsNaN(radius) {
		return nil, fmt.Errorf("domain radius %g: %w", radius, ErrInvalidConfiguration)
	}
	pair, err := kernel.Bind(p.Kernel, p.Dim, radius)
	if err != nil {
		return nil, err
	}
	return &Problem{
		dim:        p.Dim,
		nodes:      p.Nodes,
		iterations: p.Iterations,
		radius:     radius,
		birth:      p.Birth,
		death:      p.Death,
		envDeath:   p.EnvDeath,
		weights:    weights,
		accuracy:   p.Accuracy,
		kernels:    pair,
		method:     p.Method,
	}, nil
}

func (p *Problem) Dim() int                 { return p.dim }
func (p *Problem) Nodes() int               { return p.nodes }
func (p *Problem) Iterations() int          { return p.iterations }
func (p *Problem) Radius() float64          { return p.radius }
func (p *Problem) Birth() float64           { return p.birth }
func (p *Problem) Death() float64           { return p.death }
func (p *Problem) EnvDeath() float64        { return p.envDeath }
func (p *Problem) Weights() closure.Weights { return p.weights }
func (p *Problem) Accuracy() int            { return p.accuracy }
func (p *Problem) Kernels() *kernel.Pair    { return p.kernels }
func (p *Problem) Method() Method           { return p.method }

// Step is the radial grid spacing R/n.
func (p *Problem) Step() float64 {
	return p.radius / float64(p.nodes)
}

// Origin is the radial coordinate of the first sample.
func (p *Problem) Origin() float64 { return 0 }

func (p *Problem) Grid() grid.Grid {
	return grid.New(p.dim, p.nodes, p.radius)
}

// Tolerance is the convergence threshold 10^-accuracy.
func (p *Problem) Tolerance() float64 {
	return math.Pow(10, -float64(p.accuracy))
}

// Round rounds a reported value to the configured decimal accuracy.
func (p *Problem) Round(x float64) float64 {
	scale := math.Pow(10, float64(p.accuracy))
	return math.Round(x*scale) / scale
}
