//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lkernels -lstdc++
#include <stdlib.h>

extern int cuda_device_count();
extern const char* cuda_device_name_get();
extern void matvec_gpu(float* mat, float* vec, float* out, int rows, int cols);
*/
import "C"

type CUDABackend struct {
	available  bool
	deviceName string
}

func NewCUDABackend() *CUDABackend {
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &CUDABackend{
		available:  count > 0,
		deviceName: name,
	}
}

func (c *CUDABackend) Name() string {
	if c.available {
		return "cuda (" + c.deviceName + ")"
	}
	return "cuda (not available)"
}

func (c *CUDABackend) Available() bool { return c.available }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) MatVecMul(mat [][]float64, vec []float64) []float64 {
	if !c.available {
		cpu := NewCPUBackend()
		return cpu.MatVecMul(mat, vec)
	}

	rows := len(mat)
	cols := len(vec)

	flat := make([]float32, rows*cols)
	for i := range mat {
		for j := 0; j < cols && j < len(mat[i]); j++ {
			flat[i*cols+j] = float32(mat[i][j])
		}
	}
	vecF := make([]float32, cols)
	for j, v := range vec {
		vecF[j] = float32(v)
	}
	outF := make([]float32, rows)

	C.matvec_gpu(
		(*C.float)(&flat[0]),
		(*C.float)(&vecF[0]),
		(*C.float)(&outF[0]),
		C.int(rows),
		C.int(cols),
	)

	result := make([]float64, rows)
	for i, v := range outF {
		result[i] = float64(v)
	}
	return result
}
