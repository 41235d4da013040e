package kernel

import "fmt"

// ParseFamily resolves a family by its canonical name, the spelling
// String() produces.
func ParseFamily(name string) (Family, error) {
	for _, f := range []Family{Normal, Kurtic, GeneralKurtic, Exponential, Roughgarden, ExponentPolynomial, Constant} {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown kernel family %q: %w", name, ErrInvalidParameters)
}

// ParamNames lists the positional shape parameters of a family, in the
// order New expects them.
func ParamNames(f Family) []string {
	switch f {
	case Normal:
		return []string{"sigma_m", "sigma_w"}
	case Kurtic:
		return []string{"s0", "s1"}
	case GeneralKurtic:
		return []string{"s0m", "s1m", "s0w", "s1w"}
	case Exponential:
		return []string{"a", "b"}
	case Roughgarden:
		return []string{"sm", "gamma_m", "sw", "gamma_w"}
	case ExponentPolynomial:
		return []string{"am", "bm", "aw", "bw"}
	case Constant:
		return []string{"radius_m", "radius_w"}
	default:
		return nil
	}
}

// New constructs a kernel of the given family from positional parameters.
func New(f Family, params []float64) (Kernel, error) {
	if want := len(ParamNames(f)); len(params) != want {
		return Kernel{}, fmt.Errorf("%s kernel takes %d parameters, got %d: %w", f, want, len(params), ErrInvalidParameters)
	}
	switch f {
	case Normal:
		return NewNormal(params[0], params[1])
	case Kurtic:
		return NewKurtic(params[0], params[1])
	case GeneralKurtic:
		return NewGeneralKurtic(params[0], params[1], params[2], params[3])
	case Exponential:
		return NewExponential(params[0], params[1])
	case Roughgarden:
		return NewRoughgarden(params[0], params[1], params[2], params[3])
	case ExponentPolynomial:
		return NewExponentPolynomial(params[0], params[1], params[2], params[3])
	case Constant:
		return NewConstant(params[0], params[1])
	default:
		return Kernel{}, fmt.Errorf("unhandled family %d: %w", f, ErrInvalidParameters)
	}
}

// Families lists every family name, for help output.
func Families() []string {
	out := make([]string, 0, 7)
	for _, f := range []Family{Normal, Kurtic, GeneralKurtic, Exponential, Roughgarden, ExponentPolynomial, Constant} {
		out = append(out, f.String())
	}
	return out
}
