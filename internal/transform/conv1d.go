// Package transform implements the radial convolution engines the
// equilibrium solvers are built on: spectral convolution for dimensions 1
// and 3 and a direct quadrature fallback for general dimension.
package transform

import (
	"github.com/mjibson/go-dsp/fft"
)

// Convolve1D computes the one-dimensional convolution (f*g)(r_i) of two
// even radial fields sampled at r_i = i*h. Both fields are extended
// evenly onto the full line, zero-padded to the next power of two and
// convolved through the FFT, so the result is an exact linear convolution
// of the sampled fields (no circular wrap).
func Convolve1D(f, g []float64, h float64) []float64 {
	n := len(f)
	if n == 1 {
		return []float64{h * f[0] * g[0]}
	}
	ext := 2*n - 1
	m := nextPow2(2 * ext)
	a := make([]float64, m)
	b := make([]float64, m)
	for k := 0; k < ext; k++ {
		idx := k - (n - 1)
		if idx < 0 {
			idx = -idx
		}
		a[k] = f[idx]
		b[k] = g[idx]
	}
	fa := fft.FFTReal(a)
	fb := fft.FFTReal(b)
	for i := range fa {
		fa[i] *= fb[i]
	}
	inv := fft.IFFT(fa)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		// Sample i sits at line position i*h; in the linear convolution of
		// the two extensions that is offset i + 2(n-1).
		out[i] = h * real(inv[i+2*n-2])
	}
	return out
}

func nextPow2(n int) int {
	m := 1
	for m < n {
		m *= 2
	}
	return m
}
