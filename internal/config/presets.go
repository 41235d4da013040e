package config

import "sort"

// Presets are named parameter sets for the qualitative regimes of the
// model: short birth dispersal against wide competition clusters the
// population, the reverse spreads it out.
var Presets = map[string]*Config{
	"neutral": {
		Dim: 1, Nodes: 256, Iterations: 1000,
		Birth: 1.0, Death: 0.5, EnvDeath: 0.1,
		Alpha: 1, Accuracy: 6, Method: "neuman",
		Kernel: KernelConfig{Family: "normal", Params: []float64{0.12, 0.12}},
	},
	"clustered": {
		Dim: 1, Nodes: 256, Iterations: 2000,
		Birth: 1.0, Death: 0.5, EnvDeath: 0.1,
		Alpha: 1, Accuracy: 6, Method: "neuman",
		Kernel: KernelConfig{Family: "normal", Params: []float64{0.04, 0.2}},
	},
	"segregated": {
		Dim: 1, Nodes: 256, Iterations: 2000,
		Birth: 1.0, Death: 0.5, EnvDeath: 0.1,
		Alpha: 1, Accuracy: 6, Method: "neuman",
		Kernel: KernelConfig{Family: "normal", Params: []float64{0.2, 0.04}},
	},
	"symmetric-closure": {
		Dim: 1, Nodes: 256, Iterations: 2000,
		Birth: 1.0, Death: 0.5, EnvDeath: 0.1,
		Alpha: 1, Beta: 1, Gamma: 1, Accuracy: 5, Method: "neuman",
		Kernel: KernelConfig{Family: "normal", Params: []float64{0.12, 0.12}},
	},
	"fat-tailed": {
		Dim: 1, Nodes: 512, Iterations: 2000,
		Birth: 1.0, Death: 0.5, EnvDeath: 0.1,
		Alpha: 1, Accuracy: 5, Method: "neuman",
		Kernel: KernelConfig{Family: "roughgarden", Params: []float64{0.1, 1.0, 0.1, 1.0}},
	},
	"plateau": {
		Dim: 1, Nodes: 256, Iterations: 1000,
		Birth: 1.0, Death: 0.5, EnvDeath: 0.1,
		Alpha: 1, Accuracy: 6, Method: "neuman",
		Kernel: KernelConfig{Family: "constant", Params: []float64{0.2, 0.2}},
	},
	"three-dim": {
		Dim: 3, Nodes: 256, Iterations: 1000,
		Birth: 1.0, Death: 0.5, EnvDeath: 0.1,
		Alpha: 1, Accuracy: 6, Method: "neuman",
		Kernel: KernelConfig{Family: "normal", Params: []float64{0.12, 0.12}},
	},
	"planar": {
		Dim: 2, Nodes: 128, Iterations: 500,
		Birth: 1.0, Death: 0.5, EnvDeath: 0.1,
		Alpha: 1, Accuracy: 4, Method: "neuman",
		Kernel: KernelConfig{Family: "normal", Params: []float64{0.12, 0.12}},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
