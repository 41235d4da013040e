// Package metrics derives summary statistics from a solved correlation
// function: how strongly individuals cluster, over what range the
// structure persists and what density a typical individual experiences.
package metrics

import (
	"math"

	"github.com/san-kum/pairmom/internal/problem"
	"github.com/san-kum/pairmom/internal/solver"
)

// ExcessAtOrigin is the relative deviation of the pair density at zero
// separation from the mean-field background, C(0)/N^2 - 1. Positive
// values mean clustering, negative values overdispersion. Zero at
// extinction.
func ExcessAtOrigin(res *solver.Result) float64 {
	n2 := res.N * res.N
	if n2 == 0 {
		return 0
	}
	return res.GetC0()/n2 - 1
}

// CorrelationLength is the smallest sampled separation at which the
// excess |C(r) - N^2| has fallen to 1/e of its value at the origin. When
// the excess never decays that far the domain radius is returned.
func CorrelationLength(res *solver.Result) float64 {
	n2 := res.N * res.N
	c0 := math.Abs(res.GetC0() - n2)
	if c0 == 0 {
		return 0
	}
	threshold := c0 / math.E
	for i, c := range res.C {
		if math.Abs(c-n2) <= threshold {
			return float64(i) * res.Step
		}
	}
	return float64(len(res.C)) * res.Step
}

// MeanCrowding is the competition-weighted density experienced by a
// typical individual, N + int w(xi) (C(xi) - N^2) dxi / N. It equals N in
// a spatially uniform population.
func MeanCrowding(p *problem.Problem, res *solver.Result) float64 {
	if res.N == 0 {
		return 0
	}
	g := p.Grid()
	ws := p.Kernels().SampleDeath(g)
	excess := make([]float64, len(res.C))
	n2 := res.N * res.N
	for i, c := range res.C {
		excess[i] = c - n2
	}
	return res.N + g.IntegrateProduct(ws, excess)/res.N
}

// Summary collects the metrics recorded with a stored run.
func Summary(p *problem.Problem, res *solver.Result) map[string]float64 {
	return map[string]float64{
		"n":                  res.N,
		"c0":                 res.GetC0(),
		"excess_at_origin":   ExcessAtOrigin(res),
		"correlation_length": CorrelationLength(res),
		"mean_crowding":      MeanCrowding(p, res),
	}
}
