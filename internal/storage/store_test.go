package storage

import (
	"testing"

	"github.com/san-kum/pairmom/internal/closure"
	"github.com/san-kum/pairmom/internal/kernel"
	"github.com/san-kum/pairmom/internal/problem"
	"github.com/san-kum/pairmom/internal/solver"
)

func testRun(t *testing.T) (*problem.Problem, *solver.Result) {
	t.Helper()
	k, err := kernel.NewNormal(0.3, 0.3)
	if err != nil {
		t.Fatalf("kernel: %v", err)
	}
	p, err := problem.New(problem.Params{
		Dim:        1,
		Nodes:      32,
		Iterations: 200,
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

func TestSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	p, res := testRun(t)

	runID, err := st.Save(p, res)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.ID != runID || meta.Kernel != "normal" || meta.Method != "lneuman" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.N != res.N || meta.Converged != res.Converged || meta.Iterations != res.Iterations {
		t.Errorf("result summary mismatch: %+v", meta)
	}
	if meta.Metrics["n"] != res.N {
		t.Errorf("metrics not recorded: %v", meta.Metrics)
	}

	rs, cs, err := st.LoadCorrelation(runID)
	if err != nil {
		t.Fatalf("load correlation: %v", err)
	}
	if len(cs) != len(res.C) {
		t.Fatalf("correlation length: got %d, expected %d", len(cs), len(res.C))
	}
	for i := range cs {
		if cs[i] != res.C[i] {
			t.Errorf("value %d: got %g, expected %g", i, cs[i], res.C[i])
		}
		if rs[i] != float64(i)*res.Step {
			t.Errorf("radius %d: got %g, expected %g", i, rs[i], float64(i)*res.Step)
		}
	}
}

func TestListEmptyAndPopulated(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	p, res := testRun(t)
	if _, err := st.Save(p, res); err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected an error for a missing run")
	}
}
