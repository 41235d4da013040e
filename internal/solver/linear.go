package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/pairmom/internal/problem"
	"github.com/san-kum/pairmom/internal/transform"
)

// LinearSolver is the Neumann iterator for the asymmetric linear closure
// (alpha=1, beta=gamma=0). Substituting the balance into the closure
// turns the equilibrium condition into a linear integral equation for the
// excess c = C - N^2:
//
//	(b + s*w(xi))*c(xi) = b*(m*c)(xi) + b*N*m(xi) - s*N^2*w(xi)
//
// so each step needs a single convolution and no nonlinear products of
// the unknown iterate. Termination matches the nonlinear iterator.
type LinearSolver struct {
	Observer Observer
}

func (s *LinearSolver) Name() string { return "lneuman" }

func (s *LinearSolver) Solve(p *problem.Problem) (*Result, error) {
	g := p.Grid()
	n := p.Nodes()
	b, sr, d := p.Birth(), p.Death(), p.EnvDeath()
	tol := p.Tolerance()
	ms := p.Kernels().SampleBirth(g)
	ws := p.Kernels().SampleDeath(g)

	conv := func(f, c []float64) []float64 {
		if p.Dim() == 3 {
			return transform.Convolve3D(f, c, g.Step)
		}
		return transform.Convolve1D(f, c, g.Step)
	}

	nEst := meanField(b, sr, d)
	chat := make([]float64, n)
	next := make([]float64, n)
	converged := false
	balanced := true
	iters := 0

	for it := 1; it <= p.Iterations(); it++ {
		iters = it
		n2 := nEst * nEst

		convM := conv(ms, chat)
		for i := 0; i < n; i++ {
			next[i] = (b*convM[i] + b*nEst*ms[i] - sr*n2*ws[i]) / (b + sr*ws[i])
		}

		nNew, ok := balanceRoot(b, sr, d, g.IntegrateProduct(ws, next))
		balanced = ok
		res := math.Max(floats.Distance(next, chat, math.Inf(1)), math.Abs(nNew-nEst))

		chat, next = next, chat
		nEst = nNew

		if s.Observer != nil {
			s.Observer.OnIteration(it, res, nEst)
		}
		if res <= tol {
			converged = true
			break
		}
	}

	c := make([]float64, n)
	if balanced {
		nn := nEst * nEst
		for i := range chat {
			c[i] = p.Round(nn + chat[i])
		}
	} else {
		// No balanced first moment for the converged excess: extinction,
		// the same clamp the Nystrom solver applies to a negative moment.
		nEst = 0
	}
	return &Result{
		C:          c,
		N:          p.Round(nEst),
		Step:       g.Step,
		Converged:  converged,
		Iterations: iters,
	}, nil
}
