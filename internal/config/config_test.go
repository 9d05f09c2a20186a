package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/nrsolve/internal/linsolve"
	"github.com/san-kum/nrsolve/internal/models"
	"github.com/san-kum/nrsolve/internal/newton"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "quadratic" {
		t.Errorf("expected model quadratic, got %s", cfg.Model)
	}
	if err := cfg.Newton().Ready(); err != nil {
		t.Errorf("default config should be ready: %v", err)
	}
	if cfg.Epsilon != 1e-12 || cfg.MaxSteps != 10000 || cfg.InitialGuess != 1 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solve.yaml")

	cfg := DefaultConfig()
	cfg.Model = "ruling"
	cfg.Method = "crout"
	cfg.Epsilon = 1e-9
	cfg.PivotEpsilon = 1e-14
	cfg.SetParam("spans", 5)

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Model != "ruling" || got.Method != "crout" || got.Epsilon != 1e-9 || got.PivotEpsilon != 1e-14 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Params["spans"] != 5 {
		t.Errorf("expected spans 5, got %v", got.Params)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("model: circle\nepsilon: 0\nmax_steps: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Method != DefaultMethod || cfg.InitialGuess != DefaultInitialGuess {
		t.Errorf("expected defaults for missing fields, got %+v", cfg)
	}
	nc := cfg.Newton()
	if nc.Epsilon != 0 || nc.MaxSteps != 7 {
		t.Errorf("expected max-steps-only run, got %+v", nc)
	}
}

func TestLoadOverMergesParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("epsilon: 1e-6\nparams:\n  t2: 40\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("sagtension", "hot")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Epsilon != 1e-6 || cfg.MaxSteps != base.MaxSteps || cfg.InitialGuess != base.InitialGuess {
		t.Errorf("unexpected layering: %+v", cfg)
	}
	if cfg.Params["t2"] != 40 || cfg.Params["h1"] != 28000 {
		t.Errorf("expected merged params, got %v", cfg.Params)
	}
	if base.Params["t2"] != 75 {
		t.Errorf("base was modified: %v", base.Params)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("epsilon: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLinearSolver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = "crout"
	cfg.PivotEpsilon = 1e-9

	ls, err := cfg.LinearSolver()
	if err != nil {
		t.Fatal(err)
	}
	c, ok := ls.(*linsolve.CroutLU)
	if !ok {
		t.Fatalf("expected crout, got %T", ls)
	}
	if c.Epsilon() != 1e-9 {
		t.Errorf("expected pivot epsilon 1e-9, got %g", c.Epsilon())
	}

	cfg.Method = "qr"
	if _, err := cfg.LinearSolver(); !errors.Is(err, linsolve.ErrUnknownMethod) {
		t.Errorf("expected unknown method, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("quadratic", "sqrt2")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["a"] != 2 {
		t.Errorf("expected a=2, got %v", cfg.Params["a"])
	}

	cfg.Params["a"] = 99
	if GetPreset("quadratic", "sqrt2").Params["a"] != 2 {
		t.Error("preset mutated through returned config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("quadratic", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "sqrt2"); cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("sagtension")
	if len(presets) != 3 || presets[0] != "cold" {
		t.Errorf("expected sorted sagtension presets, got %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestPresetsAreRunnable(t *testing.T) {
	reg := models.NewRegistry()
	for model, presets := range Presets {
		for name, p := range presets {
			if p.Model != model {
				t.Errorf("%s/%s: model field is %s", model, name, p.Model)
			}
			if err := p.Newton().Ready(); err != nil {
				t.Errorf("%s/%s: %v", model, name, err)
			}
			if _, err := p.LinearSolver(); err != nil {
				t.Errorf("%s/%s: %v", model, name, err)
			}
			if _, err := reg.Get(p.Model, models.Params(p.Params)); err != nil {
				t.Errorf("%s/%s: %v", model, name, err)
			}
		}
	}
}

func TestNewtonConfig(t *testing.T) {
	cfg := &Config{Epsilon: 1e-6, MaxSteps: 3, InitialGuess: 2}
	want := newton.Config{Epsilon: 1e-6, MaxSteps: 3, InitialGuess: 2}
	if cfg.Newton() != want {
		t.Errorf("expected %+v, got %+v", want, cfg.Newton())
	}
}
