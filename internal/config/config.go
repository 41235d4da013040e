package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pairmom/internal/closure"
	"github.com/san-kum/pairmom/internal/kernel"
	"github.com/san-kum/pairmom/internal/problem"
)

const (
	DefaultNodes      = 256
	DefaultIterations = 1000
	DefaultBirth      = 1.0
	DefaultDeath      = 0.5
	DefaultEnvDeath   = 0.1
	DefaultAccuracy   = 6
)

type KernelConfig struct {
	Family string    `yaml:"family"`
	Params []float64 `yaml:"params,flow"`
}

type Config struct {
	Dim        int          `yaml:"dim"`
	Nodes      int          `yaml:"nodes"`
	Iterations int          `yaml:"iterations"`
	Radius     float64      `yaml:"radius"`
	Birth      float64      `yaml:"birth"`
	Death      float64      `yaml:"death"`
	EnvDeath   float64      `yaml:"env_death"`
	Alpha      float64      `yaml:"alpha"`
	Beta       float64      `yaml:"beta"`
	Gamma      float64      `yaml:"gamma"`
	Accuracy   int          `yaml:"accuracy"`
	Method     string       `yaml:"method"`
	Kernel     KernelConfig `yaml:"kernel"`
}

func DefaultConfig() *Config {
	return &Config{
		Dim:        1,
		Nodes:      DefaultNodes,
		Iterations: DefaultIterations,
		Radius:     0,
		Birth:      DefaultBirth,
		Death:      DefaultDeath,
		EnvDeath:   DefaultEnvDeath,
		Alpha:      1,
		Accuracy:   DefaultAccuracy,
		Method:     "neuman",
		Kernel: KernelConfig{
			Family: "normal",
			Params: []float64{0.12, 0.12},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params translates the file representation into validated solve
// parameters. Validation proper happens in problem.New.
func (c *Config) Params() (problem.Params, error) {
	family, err := kernel.ParseFamily(c.Kernel.Family)
	if err != nil {
		return problem.Params{}, err
	}
	k, err := kernel.New(family, c.Kernel.Params)
	if err != nil {
		return problem.Params{}, err
	}
	method, err := problem.ParseMethod(c.Method)
	if err != nil {
		return problem.Params{}, err
	}
	return problem.Params{
		Dim:        c.Dim,
		Nodes:      c.Nodes,
		Iterations: c.Iterations,
		Radius:     c.Radius,
		Birth:      c.Birth,
		Death:      c.Death,
		EnvDeath:   c.EnvDeath,
		Weights:    closure.Weights{Alpha: c.Alpha, Beta: c.Beta, Gamma: c.Gamma},
		Accuracy:   c.Accuracy,
		Kernel:     k,
		Method:     method,
	}, nil
}
