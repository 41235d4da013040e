// Package compute provides hardware-accelerated computation backends.
//
// The package automatically selects the best available backend:
//
//   - CUDA: GPU-accelerated dense matrix application
//   - CPU: Fallback for systems without GPU
//
// The naive-quadrature solver applies its precomputed convolution
// matrices through the active backend:
//
//	backend := compute.GetBackend()
//	conv := backend.MatVecMul(kernelMatrix, iterate)
//
// Backends are drop-in replacements; each one is deterministic for a
// given input, though the GPU path computes in single precision.
package compute
