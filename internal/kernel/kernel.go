package kernel

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameters indicates kernel shape parameters that cannot yield
// a valid dispersal density.
var ErrInvalidParameters = errors.New("kernel: parameters cannot yield a valid density")

// Family enumerates the closed set of dispersal-kernel families.
type Family int

const (
	Normal Family = iota
	Kurtic
	GeneralKurtic
	Exponential
	Roughgarden
	ExponentPolynomial
	Constant
)

func (f Family) String() string {
	switch f {
	case Normal:
		return "normal"
	case Kurtic:
		return "kurtic"
	case GeneralKurtic:
		return "general-kurtic"
	case Exponential:
		return "exponential"
	case Roughgarden:
		return "roughgarden"
	case ExponentPolynomial:
		return "exponent-polynomial"
	case Constant:
		return "constant"
	default:
		return "unknown"
	}
}

// profile holds up to two shape parameters; their meaning depends on the
// family (see the constructors).
type profile struct {
	a, b float64
}

// Kernel is a birth/death pair of radial dispersal profiles. A Kernel is
// unnormalized; binding it to a dimension and domain radius (Bind) fixes
// the normalization so each density integrates to 1 over its truncated
// support.
type Kernel struct {
	family Family
	birth  profile
	death  profile
}

func (k Kernel) Family() Family { return k.family }

// NewNormal builds Gaussian kernels with the given birth and death
// standard deviations.
func NewNormal(sigmaM, sigmaW float64) (Kernel, error) {
	if sigmaM <= 0 || sigmaW <= 0 {
		return Kernel{}, fmt.Errorf("normal kernels need positive sigmas (got %g, %g): %w", sigmaM, sigmaW, ErrInvalidParameters)
	}
	return Kernel{family: Normal, birth: profile{a: sigmaM}, death: profile{a: sigmaW}}, nil
}

// NewKurtic builds kurtic kernels exp(-(r/s0)^2 - (r/s1)^4) shared by the
// birth and death densities.
func NewKurtic(s0, s1 float64) (Kernel, error) {
	if s0 <= 0 || s1 <= 0 {
		return Kernel{}, fmt.Errorf("kurtic kernels need positive scales (got %g, %g): %w", s0, s1, ErrInvalidParameters)
	}
	p := profile{a: s0, b: s1}
	return Kernel{family: Kurtic, birth: p, death: p}, nil
}

// NewGeneralKurtic builds kurtic kernels with independent scales for the
// birth and death densities.
func NewGeneralKurtic(s0m, s1m, s0w, s1w float64) (Kernel, error) {
	if s0m <= 0 || s1m <= 0 || s0w <= 0 || s1w <= 0 {
		return Kernel{}, fmt.Errorf("general kurtic kernels need positive scales: %w", ErrInvalidParameters)
	}
	return Kernel{
		family: GeneralKurtic,
		birth:  profile{a: s0m, b: s1m},
		death:  profile{a: s0w, b: s1w},
	}, nil
}

// NewExponential builds Danchencko's exponential kernels exp(-A*r) for
// birth and exp(-B*r) for death.
func NewExponential(a, b float64) (Kernel, error) {
	if a <= 0 || b <= 0 {
		return Kernel{}, fmt.Errorf("exponential kernels need positive rates (got %g, %g): %w", a, b, ErrInvalidParameters)
	}
	return Kernel{family: Exponential, birth: profile{a: a}, death: profile{a: b}}, nil
}

// NewRoughgarden builds stretched-exponential kernels exp(-(r/s)^gamma)
// with scale and shape exponent per density. The exponent must be positive
// for the density to stay integrable.
func NewRoughgarden(sm, gammaM, sw, gammaW float64) (Kernel, error) {
	if sm <= 0 || sw <= 0 {
		return Kernel{}, fmt.Errorf("roughgarden kernels need positive scales: %w", ErrInvalidParameters)
	}
	if gammaM <= 0 || gammaW <= 0 {
		return Kernel{}, fmt.Errorf("roughgarden kernels need positive shape exponents: %w", ErrInvalidParameters)
	}
	return Kernel{
		family: Roughgarden,
		birth:  profile{a: sm, b: gammaM},
		death:  profile{a: sw, b: gammaW},
	}, nil
}

// NewExponentPolynomial builds kernels exp(a*r + b*r^2). Integrability
// requires b < 0, or b = 0 with a < 0.
func NewExponentPolynomial(am, bm, aw, bw float64) (Kernel, error) {
	check := func(a, b float64) error {
		if b < 0 {
			return nil
		}
		if b == 0 && a < 0 {
			return nil
		}
		return fmt.Errorf("exponent polynomial exp(%g*r%+g*r^2) does not decay: %w", a, b, ErrInvalidParameters)
	}
	if err := check(am, bm); err != nil {
		return Kernel{}, err
	}
	if err := check(aw, bw); err != nil {
		return Kernel{}, err
	}
	return Kernel{
		family: ExponentPolynomial,
		birth:  profile{a: am, b: bm},
		death:  profile{a: aw, b: bw},
	}, nil
}

// NewConstant builds uniform kernels on balls of the given birth and
// death radii.
func NewConstant(radiusM, radiusW float64) (Kernel, error) {
	if radiusM <= 0 || radiusW <= 0 {
		return Kernel{}, fmt.Errorf("constant kernels need positive radii (got %g, %g): %w", radiusM, radiusW, ErrInvalidParameters)
	}
	return Kernel{family: Constant, birth: profile{a: radiusM}, death: profile{a: radiusW}}, nil
}

// profileAt evaluates the unnormalized radial profile p at r >= 0.
func (k Kernel) profileAt(p profile, r float64) float64 {
	switch k.family {
	case Normal:
		return math.Exp(-r * r / (2 * p.a * p.a))
	case Kurtic, GeneralKurtic:
		q := r / p.a
		u := r / p.b
		return math.Exp(-q*q - u*u*u*u)
	case Exponential:
		return math.Exp(-p.a * r)
	case Roughgarden:
		return math.Exp(-math.Pow(r/p.a, p.b))
	case ExponentPolynomial:
		return math.Exp(p.a*r + p.b*r*r)
	case Constant:
		if r <= p.a {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// BirthProfile and DeathProfile evaluate the unnormalized densities.
func (k Kernel) BirthProfile(r float64) float64 { return k.profileAt(k.birth, r) }
func (k Kernel) DeathProfile(r float64) float64 { return k.profileAt(k.death, r) }

// cutoff is the decay exponent beyond which a profile is considered zero
// when estimating its reach (exp(-14) ~ 8e-7).
const cutoff = 14.0

func (k Kernel) profileReach(p profile) float64 {
	switch k.family {
	case Normal:
		return 5 * p.a
	case Kurtic, GeneralKurtic:
		return math.Min(5*p.a, 4*p.b)
	case Exponential:
		return cutoff / p.a
	case Roughgarden:
		return p.a * math.Pow(cutoff, 1/p.b)
	case ExponentPolynomial:
		if p.b == 0 {
			return cutoff / -p.a
		}
		// solve a*r + b*r^2 = -cutoff, b < 0
		return (p.a + math.Sqrt(p.a*p.a-4*p.b*cutoff)) / (-2 * p.b)
	case Constant:
		return p.a
	default:
		return 0
	}
}

// Reach returns a radius beyond which both densities carry negligible
// mass, used for auto-sizing the solve domain.
func (k Kernel) Reach() float64 {
	return math.Max(k.profileReach(k.birth), k.profileReach(k.death))
}

// Params reports the shape parameters by conventional names, for display
// and run metadata.
func (k Kernel) Params() map[string]float64 {
	switch k.family {
	case Normal:
		return map[string]float64{"sigma_m": k.birth.a, "sigma_w": k.death.a}
	case Kurtic:
		return map[string]float64{"s0": k.birth.a, "s1": k.birth.b}
	case GeneralKurtic:
		return map[string]float64{"s0m": k.birth.a, "s1m": k.birth.b, "s0w": k.death.a, "s1w": k.death.b}
	case Exponential:
		return map[string]float64{"a": k.birth.a, "b": k.death.a}
	case Roughgarden:
		return map[string]float64{"sm": k.birth.a, "gamma_m": k.birth.b, "sw": k.death.a, "gamma_w": k.death.b}
	case ExponentPolynomial:
		return map[string]float64{"am": k.birth.a, "bm": k.birth.b, "aw": k.death.a, "bw": k.death.b}
	case Constant:
		return map[string]float64{"radius_m": k.birth.a, "radius_w": k.death.a}
	default:
		return nil
	}
}
