package solver

// Result is the outcome of one solve: the sampled correlation function C
// over the radial grid and the equilibrium first moment N, both rounded
// to the configured decimal accuracy. Ownership passes to the caller;
// nothing in the solver retains it.
type Result struct {
	// C holds one sample per grid node, spacing Step, starting at zero
	// separation.
	C []float64
	// N is the equilibrium mean density.
	N float64
	// Step is the radial grid spacing, recorded for persistence.
	Step float64
	// Converged reports whether the iteration reached the accuracy
	// threshold within its budget. Direct methods always converge.
	// A false value is not an error: C and N hold the last iterate.
	Converged bool
	// Iterations actually performed.
	Iterations int
}

// GetC0 returns the correlation at zero separation, the first grid
// sample.
func (r *Result) GetC0() float64 {
	return r.C[0]
}
