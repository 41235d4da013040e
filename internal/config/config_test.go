package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pairmom/internal/problem"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dim = 3
	cfg.Nodes = 128
	cfg.Method = "nystrom"
	cfg.Kernel = KernelConfig{Family: "exponential", Params: []float64{2.0, 3.0}}

	path := filepath.Join(t.TempDir(), "solve.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Dim != 3 || loaded.Nodes != 128 || loaded.Method != "nystrom" {
		t.Errorf("roundtrip lost fields: %+v", loaded)
	}
	if loaded.Kernel.Family != "exponential" || len(loaded.Kernel.Params) != 2 {
		t.Errorf("roundtrip lost kernel: %+v", loaded.Kernel)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("birth: 2.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Birth != 2.0 {
		t.Errorf("birth: got %g, expected 2.0", cfg.Birth)
	}
	if cfg.Nodes != DefaultNodes || cfg.Accuracy != DefaultAccuracy {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.Method != problem.Neuman || p.Birth != DefaultBirth {
		t.Errorf("unexpected params: %+v", p)
	}
	if _, err := problem.New(p); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestParamsRejectsBadKernel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kernel.Family = "lognormal"
	if _, err := cfg.Params(); err == nil {
		t.Error("expected an error for an unknown family")
	}

	cfg = DefaultConfig()
	cfg.Kernel.Params = []float64{0.1}
	if _, err := cfg.Params(); err == nil {
		t.Error("expected an error for missing parameters")
	}
}

func TestPresetsAllValid(t *testing.T) {
	if len(ListPresets()) == 0 {
		t.Fatal("no presets registered")
	}
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %q vanished", name)
		}
		p, err := cfg.Params()
		if err != nil {
			t.Errorf("preset %q: %v", name, err)
			continue
		}
		if _, err := problem.New(p); err != nil {
			t.Errorf("preset %q does not validate: %v", name, err)
		}
	}
}
