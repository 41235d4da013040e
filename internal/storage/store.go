package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/pairmom/internal/metrics"
	"github.com/san-kum/pairmom/internal/problem"
	"github.com/san-kum/pairmom/internal/solver"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	Kernel       string             `json:"kernel"`
	KernelParams map[string]float64 `json:"kernel_params"`
	Method       string             `json:"method"`
	Dim          int                `json:"dim"`
	Nodes        int                `json:"nodes"`
	Radius       float64            `json:"radius"`
	Step         float64            `json:"step"`
	Birth        float64            `json:"birth"`
	Death        float64            `json:"death"`
	EnvDeath     float64            `json:"env_death"`
	Alpha        float64            `json:"alpha"`
	Beta         float64            `json:"beta"`
	Gamma        float64            `json:"gamma"`
	Accuracy     int                `json:"accuracy"`
	Converged    bool               `json:"converged"`
	Iterations   int                `json:"iterations"`
	N            float64            `json:"n"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes one run as metadata.json plus correlation.csv under a
// fresh run directory and returns the run id.
func (s *Store) Save(p *problem.Problem, res *solver.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", p.Kernels().Kernel().Family(), p.Method(), time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	w := p.Weights()
	meta := RunMetadata{
		ID:           runID,
		Timestamp:    time.Now(),
		Kernel:       p.Kernels().Kernel().Family().String(),
		KernelParams: p.Kernels().Kernel().Params(),
		Method:       p.Method().String(),
		Dim:          p.Dim(),
		Nodes:        p.Nodes(),
		Radius:       p.Radius(),
		Step:         res.Step,
		Birth:        p.Birth(),
		Death:        p.Death(),
		EnvDeath:     p.EnvDeath(),
		Alpha:        w.Alpha,
		Beta:         w.Beta,
		Gamma:        w.Gamma,
		Accuracy:     p.Accuracy(),
		Converged:    res.Converged,
		Iterations:   res.Iterations,
		N:            res.N,
		Metrics:      metrics.Summary(p, res),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "correlation.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	cw := csv.NewWriter(csvFile)
	defer cw.Flush()

	if err := cw.Write([]string{"r", "c"}); err != nil {
		return "", err
	}
	for i, c := range res.C {
		row := []string{
			strconv.FormatFloat(float64(i)*res.Step, 'g', -1, 64),
			strconv.FormatFloat(c, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadCorrelation reads back the sampled correlation function of a run
// as parallel radius and value slices.
func (s *Store) LoadCorrelation(runID string) ([]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "correlation.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	rs := make([]float64, 0, len(records)-1)
	cs := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		radius, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		rs = append(rs, radius)
		cs = append(cs, value)
	}
	return rs, cs, nil
}
