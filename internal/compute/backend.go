package compute

// Backend supplies the dense linear-algebra primitive the quadrature
// solvers lean on. Each output element is an independent reduction over a
// fixed index order, so a given backend reproduces its results exactly no
// matter how rows are scheduled.
type Backend interface {
	Name() string
	Available() bool
	MatVecMul(mat [][]float64, vec []float64) []float64
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

func AutoSelectBackend() Backend {
	cuda := NewCUDABackend()
	if cuda.Available() {
		return cuda
	}
	return NewCPUBackend()
}
