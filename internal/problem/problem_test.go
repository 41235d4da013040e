package problem

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pairmom/internal/closure"
	"github.com/san-kum/pairmom/internal/kernel"
)

func baseParams(t *testing.T) Params {
	t.Helper()
	k, err := kernel.NewNormal(0.3, 0.3)
	if err != nil {
		t.Fatalf("kernel: %v", err)
	}
	return Params{
		Dim:        1,
		Nodes:      64,
		Iterations: 500,
		Birth:      1.0,
		Death:      0.5,
		EnvDeath:   0.1,
		Weights:    closure.Weights{Alpha: 1},
		Accuracy:   6,
		Kernel:     k,
		Method:     Neuman,
	}
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Params)
	}{
		{"zero dimension", func(p *Params) { p.Dim = 0 }},
		{"zero nodes", func(p *Params) { p.Nodes = 0 }},
		{"zero iterations", func(p *Params) { p.Iterations = 0 }},
		{"accuracy too low", func(p *Params) { p.Accuracy = 0 }},
		{"accuracy too high", func(p *Params) { p.Accuracy = 16 }},
		{"negative birth", func(p *Params) { p.Birth = -1 }},
		{"zero species death", func(p *Params) { p.Death = 0 }},
		{"negative environmental death", func(p *Params) { p.EnvDeath = -0.1 }},
		{"degenerate weights", func(p *Params) { p.Weights = closure.Weights{Alpha: 1, Beta: -1} }},
		{"linear method in dimension 2", func(p *Params) { p.Dim = 2; p.Method = LinearNeuman }},
		{"nystrom in dimension 5", func(p *Params) { p.Dim = 5; p.Method = Nystrom }},
	}
	for _, c := range cases {
		p := baseParams(t)
		c.mod(&p)
		if _, err := New(p); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: got %v, expected ErrInvalidConfiguration", c.name, err)
		}
	}
}

func TestAutoRadius(t *testing.T) {
	p := baseParams(t)
	p.Radius = 0

	pr, err := New(p)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := p.Kernel.Reach()
	if math.Abs(pr.Radius()-want) > 1e-12 {
		t.Errorf("auto radius: got %g, expected %g", pr.Radius(), want)
	}
	if math.Abs(pr.Step()-want/64) > 1e-12 {
		t.Errorf("step: got %g, expected %g", pr.Step(), want/64)
	}
}

func TestExplicitRadiusKept(t *testing.T) {
	p := baseParams(t)
	p.Radius = 2.5

	pr, err := New(p)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if pr.Radius() != 2.5 {
		t.Errorf("radius: got %g, expected 2.5", pr.Radius())
	}
}

func TestLinearMethodForcesWeights(t *testing.T) {
	p := baseParams(t)
	p.Method = Nystrom
	p.Weights = closure.Weights{Alpha: 1, Beta: 1, Gamma: 1}

	pr, err := New(p)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := pr.Weights(); got != closure.Linearized() {
		t.Errorf("weights: got %+v, expected the linearized closure", got)
	}
}

func TestNonlinearMethodKeepsWeights(t *testing.T) {
	p := baseParams(t)
	p.Weights = closure.Weights{Alpha: 1, Beta: 1, Gamma: 1}

	pr, err := New(p)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := pr.Weights(); got != p.Weights {
		t.Errorf("weights: got %+v, expected %+v", got, p.Weights)
	}
}

func TestToleranceAndRounding(t *testing.T) {
	p := baseParams(t)
	p.Accuracy = 3

	pr, err := New(p)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if math.Abs(pr.Tolerance()-1e-3) > 1e-18 {
		t.Errorf("tolerance: got %g, expected 1e-3", pr.Tolerance())
	}
	if got := pr.Round(1.23456); got != 1.235 {
		t.Errorf("round: got %g, expected 1.235", got)
	}
}

func TestParseMethod(t *testing.T) {
	cases := []struct {
		in   string
		want Method
		ok   bool
	}{
		{"neuman", Neuman, true},
		{"", Neuman, true},
		{"lneuman", LinearNeuman, true},
		{"nystrom", Nystrom, true},
		{"bisection", 0, false},
	}
	for _, c := range cases {
		got, err := ParseMethod(c.in)
		if c.ok {
			if err != nil || got != c.want {
				t.Errorf("ParseMethod(%q): got %v, %v", c.in, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("ParseMethod(%q): got %v, expected ErrInvalidConfiguration", c.in, err)
		}
	}
}

func TestMethodStrings(t *testing.T) {
	if Neuman.String() != "neuman" || LinearNeuman.String() != "lneuman" || Nystrom.String() != "nystrom" {
		t.Error("method names drifted from their parse spellings")
	}
	if Neuman.Linear() {
		t.Error("neuman must not report linear")
	}
	if !Nystrom.Linear() || !LinearNeuman.Linear() {
		t.Error("direct and linearized methods must report linear")
	}
}
