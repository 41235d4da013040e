package solver

import (
	"math"

	"github.com/san-kum/pairmom/internal/problem"
	"github.com/san-kum/pairmom/internal/transform"
)

// convEngine abstracts the convolution step of the fixed-point iteration:
// spectral for dimensions 1 and 3, direct quadrature elsewhere.
type convEngine interface {
	birthConv(c []float64) []float64
	deathConv(c []float64) []float64
	crossConv(wc, c []float64) []float64
}

// FFTSolver is the nonlinear Neumann iterator for dimensions 1 and 3.
// Each step convolves the current excess against the birth and death
// densities in the spectral domain, evaluates the closure pointwise from
// the previous iterate, and renews the first moment from the global
// balance.
type FFTSolver struct {
	Observer Observer
}

func (s *FFTSolver) Name() string { return "neuman" }

func (s *FFTSolver) Solve(p *problem.Problem) (*Result, error) {
	g := p.Grid()
	eng := &spectralEngine{
		dim: p.Dim(),
		h:   g.Step,
		ms:  p.Kernels().SampleBirth(g),
		ws:  p.Kernels().SampleDeath(g),
	}
	return iterateNonlinear(p, eng, eng.ms, eng.ws, s.Observer), nil
}

type spectralEngine struct {
	dim    int
	h      float64
	ms, ws []float64
}

func (e *spectralEngine) conv(f, g []float64) []float64 {
	if e.dim == 3 {
		return transform.Convolve3D(f, g, e.h)
	}
	return transform.Convolve1D(f, g, e.h)
}

func (e *spectralEngine) birthConv(c []float64) []float64     { return e.conv(e.ms, c) }
func (e *spectralEngine) deathConv(c []float64) []float64     { return e.conv(e.ws, c) }
func (e *spectralEngine) crossConv(wc, c []float64) []float64 { return e.conv(wc, c) }

// iterateNonlinear runs the fixed-point iteration under the full
// three-parameter closure. The iterate is the pair (c, N) with
// c = C - N^2; the next correlation is assembled into a spare buffer and
// the buffers swapped, so the convolutions never read a half-updated
// field. Termination: sup-norm change of C and N below 10^-accuracy, or
// the iteration budget; exhausting the budget returns the last iterate
// with Converged=false.
func iterateNonlinear(p *problem.Problem, eng convEngine, ms, ws []float64, obs Observer) *Result {
	g := p.Grid()
	n := p.Nodes()
	b, s, d := p.Birth(), p.Death(), p.EnvDeath()
	w := p.Weights()
	ab := w.Alpha + w.Beta
	tol := p.Tolerance()

	// Discrete mass of the death density, used only to cancel the literal
	// N^2 constant carried in the iterate buffer. Every analytic
	// background term uses the unit mass of the untruncated densities, so
	// the uniform state stays an exact fixed point on any grid.
	wMass := g.Integrate(ws)

	nEst := meanField(b, s, d)
	chat := make([]float64, n)
	next := make([]float64, n)
	converged := false
	balanced := true
	iters := 0

	for it := 1; it <= p.Iterations(); it++ {
		iters = it
		nf := math.Max(nEst, nFloor)
		n2 := nEst * nEst

		convM := eng.birthConv(chat)
		var convW, convG []float64
		if w.Beta != 0 {
			convW = eng.deathConv(chat)
		}
		if w.Gamma != 0 {
			wc := make([]float64, n)
			for i := range wc {
				wc[i] = ws[i] * (n2 + chat[i])
			}
			convG = eng.crossConv(wc, chat)
		}
		// Total crowding int w*C; a transient iterate can push the excess
		// part below -N^2, but the crowding of a nonnegative pair density
		// never drops under zero.
		iwc := n2 + g.IntegrateProduct(ws, chat)
		if iwc < 0 {
			iwc = 0
		}

		for i := 0; i < n; i++ {
			denom := d + s*ws[i] + s*w.Alpha*iwc/(ab*nf)
			numer := b*(n2+convM[i]) + b*nEst*ms[i]
			if w.Beta != 0 {
				denom += s * w.Beta * (n2 + convW[i]) / (ab * nf)
				numer += s * w.Beta * n2 * nEst / ab
			}
			if w.Gamma != 0 {
				numer -= s * w.Gamma * (n2*iwc + convG[i]) / (ab * nf)
			}
			next[i] = numer / denom
		}

		wcNew := g.IntegrateProduct(ws, next) - n2*wMass
		nNew, ok := balanceRoot(b, s, d, wcNew)
		balanced = ok

		res := math.Abs(nNew - nEst)
		for i := range next {
			if df := math.Abs(next[i] - (n2 + chat[i])); df > res {
				res = df
			}
		}

		nn := nNew * nNew
		for i := range next {
			next[i] -= nn
		}
		chat, next = next, chat
		nEst = nNew

		if obs != nil {
			obs.OnIteration(it, res, nEst)
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
		// The crowding never admitted a balanced first moment: extinction.
		nEst = 0
	}
	return &Result{
		C:          c,
		N:          p.Round(nEst),
		Step:       g.Step,
		Converged:  converged,
		Iterations: iters,
	}
}
