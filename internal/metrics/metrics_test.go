package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/pairmom/internal/closure"
	"github.com/san-kum/pairmom/internal/kernel"
	"github.com/san-kum/pairmom/internal/problem"
	"github.com/san-kum/pairmom/internal/solver"
)

func solved(t *testing.T) (*problem.Problem, *solver.Result) {
	t.Helper()
	k, err := kernel.NewNormal(0.3, 0.3)
	if err != nil {
		t.Fatalf("kernel: %v", err)
	}
	p, err := problem.New(problem.Params{
		Dim:        1,
		Nodes:      64,
		Iterations: 500,
		Birth:      1.0,
		Death:      0.5,
		EnvDeath:   0.1,
		Weights:    closure.Weights{Alpha: 1},
		Accuracy:   6,
		Kernel:     k,
		Method:     problem.LinearNeuman,
	})
	if err != nil {
		t.Fatalf("problem: %v", err)
	}
	res, err := (&solver.LinearSolver{}).Solve(p)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	return p, res
}

func TestExcessAtOrigin(t *testing.T) {
	_, res := solved(t)
	if e := ExcessAtOrigin(res); e <= 0 {
		t.Errorf("clustered population reports excess %g, expected positive", e)
	}

	empty := &solver.Result{C: []float64{0, 0}, N: 0, Step: 0.1}
	if e := ExcessAtOrigin(empty); e != 0 {
		t.Errorf("extinct population reports excess %g, expected 0", e)
	}
}

func TestCorrelationLength(t *testing.T) {
	p, res := solved(t)
	l := CorrelationLength(res)
	if l <= 0 || l >= p.Radius() {
		t.Errorf("correlation length %g outside (0, %g)", l, p.Radius())
	}
	// Short-range structure: the decay length is of the order of the
	// kernel scale, far below the auto-sized domain.
	if l > p.Radius()/2 {
		t.Errorf("correlation length %g implausibly long", l)
	}
}

func TestCorrelationLengthUniform(t *testing.T) {
	n := 1.5
	c := make([]float64, 16)
	for i := range c {
		c[i] = n * n
	}
	res := &solver.Result{C: c, N: n, Step: 0.1}
	if l := CorrelationLength(res); l != 0 {
		t.Errorf("uniform state reports length %g, expected 0", l)
	}
}

func TestMeanCrowding(t *testing.T) {
	p, res := solved(t)
	mc := MeanCrowding(p, res)
	// Clustering means a typical individual sees more neighbors than the
	// average density suggests.
	if mc <= res.N {
		t.Errorf("mean crowding %g not above mean density %g", mc, res.N)
	}
}

func TestSummaryKeys(t *testing.T) {
	p, res := solved(t)
	s := Summary(p, res)
	for _, key := range []string{"n", "c0", "excess_at_origin", "correlation_length", "mean_crowding"} {
		v, ok := s[key]
		if !ok {
			t.Errorf("missing metric %q", key)
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("metric %q is not finite: %g", key, v)
		}
	}
}
