package watch

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/pairmom/internal/closure"
	"github.com/san-kum/pairmom/internal/kernel"
	"github.com/san-kum/pairmom/internal/problem"
	"github.com/san-kum/pairmom/internal/solver"
)

func smallProblem(t *testing.T) *problem.Problem {
	t.Helper()
	k, err := kernel.NewNormal(0.3, 0.3)
	if err != nil {
		t.Fatalf("kernel: %v", err)
	}
	p, err := problem.New(problem.Params{
		Dim:        1,
		Nodes:      16,
		Iterations: 200,
		Birth:      1.0,
		Death:      0.5,
		EnvDeath:   0.1,
		Weights:    closure.Weights{Alpha: 1},
		Accuracy:   4,
		Kernel:     k,
		Method:     problem.LinearNeuman,
	})
	if err != nil {
		t.Fatalf("problem: %v", err)
	}
	return p
}

func TestSolveClosesProgressChannel(t *testing.T) {
	m := New(smallProblem(t))

	done := make(chan tea.Msg, 1)
	go func() { done <- m.startSolve() }()

	seen := 0
	for range m.ch {
		seen++
	}

	raw := <-done
	msg, ok := raw.(doneMsg)
	if !ok {
		t.Fatalf("unexpected completion message %T", raw)
	}
	if msg.err != nil {
		t.Fatalf("solve: %v", msg.err)
	}
	if seen != msg.res.Iterations {
		t.Errorf("observed %d iterations, result reports %d", seen, msg.res.Iterations)
	}

	// The channel is closed, so a re-armed wait returns immediately
	// instead of leaking a blocked receive.
	if got := m.waitForProgress(); got != nil {
		t.Errorf("drained channel yielded %v, expected nil", got)
	}
}

func TestModelLifecycle(t *testing.T) {
	m := New(smallProblem(t))

	upd, cmd := m.Update(iterMsg{iter: 3, residual: 1e-2, n: 1.2})
	mm := upd.(Model)
	if mm.iter != 3 || mm.n != 1.2 {
		t.Errorf("iteration state not tracked: iter=%d n=%g", mm.iter, mm.n)
	}
	if cmd == nil {
		t.Error("progress message must re-arm the wait command")
	}

	res := &solver.Result{
		C:          []float64{2.0, 1.5, 1.2, 1.1},
		N:          1.05,
		Converged:  true,
		Iterations: 42,
	}
	upd, cmd = mm.Update(doneMsg{res: res})
	mm = upd.(Model)
	if !mm.done {
		t.Error("completion message must mark the model done")
	}
	if cmd != nil {
		t.Error("completion must not schedule further commands")
	}
	if view := mm.View(); !strings.Contains(view, "CONVERGED in 42 iterations") {
		t.Errorf("view missing completion status:\n%s", view)
	}

	if _, cmd := mm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Error("quit key must produce a command")
	}
}
