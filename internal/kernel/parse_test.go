package kernel

import (
	"errors"
	"testing"
)

func TestParseFamilyRoundtrip(t *testing.T) {
	for _, name := range Families() {
		f, err := ParseFamily(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if f.String() != name {
			t.Errorf("roundtrip broke: %s -> %s", name, f)
		}
	}
	if _, err := ParseFamily("cauchy"); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("unknown family: got %v, expected ErrInvalidParameters", err)
	}
}

func TestNewFromPositionalParams(t *testing.T) {
	k, err := New(Roughgarden, []float64{0.5, 1.0, 0.5, 3.0})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if k.Family() != Roughgarden {
		t.Errorf("family: got %s", k.Family())
	}

	if _, err := New(Normal, []float64{0.3}); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("wrong arity: got %v, expected ErrInvalidParameters", err)
	}
	if _, err := New(Normal, []float64{0.3, -0.1}); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("bad value: got %v, expected ErrInvalidParameters", err)
	}
}

func TestParamNamesMatchArity(t *testing.T) {
	arities := map[Family]int{
		Normal:             2,
		Kurtic:             2,
		GeneralKurtic:      4,
		Exponential:        2,
		Roughgarden:        4,
		ExponentPolynomial: 4,
		Constant:           2,
	}
	for f, want := range arities {
		if got := len(ParamNames(f)); got != want {
			t.Errorf("%s: %d parameter names, expected %d", f, got, want)
		}
	}
}
