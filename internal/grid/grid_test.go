package grid

import (
	"math"
	"testing"
)

func TestGridGeometry(t *testing.T) {
	g := New(1, 4, 2.0)

	if g.Step != 0.5 {
		t.Errorf("step: got %g, expected 0.5", g.Step)
	}
	if g.R(3) != 1.5 {
		t.Errorf("last node: got %g, expected 1.5", g.R(3))
	}
	if g.Radius() != 2.0 {
		t.Errorf("domain radius: got %g, expected 2.0", g.Radius())
	}

	radii := g.Radii()
	if len(radii) != 4 {
		t.Fatalf("radii length: got %d, expected 4", len(radii))
	}
	for i, r := range radii {
		if r != g.R(i) {
			t.Errorf("radii[%d]: got %g, expected %g", i, r, g.R(i))
		}
	}
}

func TestSphereArea(t *testing.T) {
	cases := []struct {
		dim  int
		want float64
	}{
		{1, 2},
		{2, 2 * math.Pi},
		{3, 4 * math.Pi},
	}
	for _, c := range cases {
		got := SphereArea(c.dim)
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("SphereArea(%d): got %g, expected %g", c.dim, got, c.want)
		}
	}
}

func TestBallVolume(t *testing.T) {
	got := BallVolume(3, 2.0)
	want := 4.0 / 3.0 * math.Pi * 8.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("BallVolume(3, 2): got %g, expected %g", got, want)
	}
	if v := BallVolume(1, 1.5); math.Abs(v-3.0) > 1e-12 {
		t.Errorf("BallVolume(1, 1.5): got %g, expected 3", v)
	}
}

func TestIntegrateConstant1D(t *testing.T) {
	g := New(1, 5, 2.5)
	f := []float64{1, 1, 1, 1, 1}

	// Two half-lines, trapezoid over [0, 2.0].
	got := g.Integrate(f)
	if math.Abs(got-4.0) > 1e-12 {
		t.Errorf("integral: got %g, expected 4.0", got)
	}
}

func TestIntegrateConstant3D(t *testing.T) {
	n := 201
	h := 1.0 / 200.0
	g := New(3, n, float64(n)*h)
	f := make([]float64, n)
	for i := range f {
		f[i] = 1
	}

	// 4*pi*integral of r^2 over [0, 1].
	want := 4 * math.Pi / 3
	got := g.Integrate(f)
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("integral: got %g, expected %g", got, want)
	}
}

func TestIntegrateProduct(t *testing.T) {
	g := New(1, 101, 1.01)
	a := make([]float64, g.Nodes)
	b := make([]float64, g.Nodes)
	for i := range a {
		r := g.R(i)
		a[i] = r
		b[i] = r
	}

	// 2*integral of r^2 over [0, 1].
	got := g.IntegrateProduct(a, b)
	want := 2.0 / 3.0
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("product integral: got %g, expected %g", got, want)
	}
}

func TestQuadWeightsSingleNode(t *testing.T) {
	g := New(1, 1, 0.5)
	w := g.QuadWeights()
	if len(w) != 1 || w[0] != 0.5 {
		t.Errorf("single-node weights: got %v, expected [0.5]", w)
	}
}

func TestSupDist(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{1, 2.5, 2.9}
	if d := SupDist(a, b); math.Abs(d-0.5) > 1e-15 {
		t.Errorf("sup distance: got %g, expected 0.5", d)
	}
	if d := SupDist(a, a); d != 0 {
		t.Errorf("self distance: got %g, expected 0", d)
	}
}
