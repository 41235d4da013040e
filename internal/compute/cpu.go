package compute

import (
	"runtime"
	"sync"
)

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

// MatVecMul applies a dense matrix to a vector. Rows are chunked across
// workers; each row stays a serial left-to-right sum so the result does
// not depend on the worker count.
func (c *CPUBackend) MatVecMul(mat [][]float64, vec []float64) []float64 {
	rows := len(mat)
	result := make([]float64, rows)

	if rows < 16 {
		for i := 0; i < rows; i++ {
			result[i] = dotRow(mat[i], vec)
		}
		return result
	}

	var wg sync.WaitGroup
	chunkSize := (rows + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > rows {
				end = rows
			}

			for i := start; i < end; i++ {
				result[i] = dotRow(mat[i], vec)
			}
		}(w)
	}

	wg.Wait()
	return result
}

func dotRow(row, vec []float64) float64 {
	sum := 0.0
	for j := 0; j < len(vec) && j < len(row); j++ {
		sum += row[j] * vec[j]
	}
	return sum
}
