// Package closure implements the second-order (power-2) closure of the
// third spatial moment used by the equilibrium solvers:
//
//	             1    (    C(x)C(y)     C(x)C(y-x)     C(y)C(y-x)       )
//	T(x, y) = ------- ( A·-------- + B·---------- + G·---------- - B·N³ )
//	           A + B  (       N             N              N            )
package closure

import (
	"errors"
	"fmt"
)

// ErrDegenerateWeights indicates alpha+beta = 0, for which the closure is
// undefined.
var ErrDegenerateWeights = errors.New("closure: alpha+beta must be non-zero")

// Weights are the alpha/beta/gamma coefficients of the closure.
type Weights struct {
	Alpha float64
	Beta  float64
	Gamma float64
}

// Linearized is the asymmetric linear closure forced by the linear
// solution methods.
func Linearized() Weights {
	return Weights{Alpha: 1}
}

func (w Weights) Validate() error {
	if w.Alpha+w.Beta == 0 {
		return fmt.Errorf("%w (alpha=%g beta=%g)", ErrDegenerateWeights, w.Alpha, w.Beta)
	}
	return nil
}

// Linear reports whether the weights reduce to the asymmetric linear
// closure, under which T never reads C(y-x).
func (w Weights) Linear() bool {
	return w.Alpha == 1 && w.Beta == 0 && w.Gamma == 0
}

// T evaluates the third-moment approximation from the correlation values
// cx = C(x), cy = C(y), cyx = C(y-x) and the first moment n. When both
// beta and gamma are zero, cyx is never referenced, so callers may pass
// any value for offsets that fall outside the sampled grid.
func (w Weights) T(cx, cy, cyx, n float64) float64 {
	s := w.Alpha * cx * cy / n
	if w.Beta != 0 {
		s += w.Beta*cx*cyx/n - w.Beta*n*n*n
	}
	if w.Gamma != 0 {
		s += w.Gamma * cy * cyx / n
	}
	return s / (w.Alpha + w.Beta)
}
