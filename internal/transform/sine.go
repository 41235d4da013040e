package transform

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// DST computes the type-I discrete sine transform
// S_k = sum_{j=1..m} x_j sin(pi*j*k/(m+1)), k = 1..m,
// through the FFT of the odd extension of x. DST-I is its own inverse up
// to the factor 2/(m+1).
func DST(x []float64) []float64 {
	m := len(x)
	if m == 0 {
		return nil
	}
	n := 2 * (m + 1)
	y := make([]float64, n)
	for j, v := range x {
		y[j+1] = v
		y[n-1-j] = -v
	}
	spec := fft.FFTReal(y)
	out := make([]float64, m)
	for k := 0; k < m; k++ {
		out[k] = -0.5 * imag(spec[k+1])
	}
	return out
}

// Convolve3D computes the three-dimensional convolution of two radial
// fields sampled at r_i = i*h, i = 0..n-1, with both fields assumed to
// have decayed by the domain radius R = n*h.
//
// The radial symmetry collapses the 3D Fourier transform to a sine
// transform of the profile r*f(r): with S_f(k) = int r f(r) sin(kr) dr,
// the transform of the convolution is S_conv(k) = 4*pi*S_f(k)*S_g(k)/k,
// inverted by the same sine transform. The r=0 sample, where the
// reduction is singular, is computed directly as 4*pi*int s^2 f g ds.
func Convolve3D(f, g []float64, h float64) []float64 {
	n := len(f)
	out := make([]float64, n)
	if n < 3 {
		out[0] = originConv3D(f, g, h)
		return out
	}
	m := n - 1
	u := make([]float64, m)
	v := make([]float64, m)
	for j := 1; j < n; j++ {
		r := h * float64(j)
		u[j-1] = r * f[j]
		v[j-1] = r * g[j]
	}
	su := DST(u)
	sv := DST(v)
	radius := h * float64(n)
	s := make([]float64, m)
	for k := 1; k <= m; k++ {
		wave := math.Pi * float64(k) / radius
		s[k-1] = 4 * math.Pi * (h * su[k-1]) * (h * sv[k-1]) / wave
	}
	w := DST(s)
	for i := 1; i < n; i++ {
		r := h * float64(i)
		out[i] = 2 / (radius * r) * w[i-1]
	}
	out[0] = originConv3D(f, g, h)
	return out
}

// originConv3D evaluates (f*g)(0) = 4*pi*int s^2 f(s) g(s) ds by
// trapezoid quadrature (the s=0 term vanishes).
func originConv3D(f, g []float64, h float64) float64 {
	n := len(f)
	sum := 0.0
	for j := 1; j < n; j++ {
		w := h
		if j == n-1 {
			w = h / 2
		}
		r := h * float64(j)
		sum += w * r * r * f[j] * g[j]
	}
	return 4 * math.Pi * sum
}
