package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nrsolve/internal/linsolve"
	"github.com/san-kum/nrsolve/internal/newton"
)

const (
	DefaultModel        = "quadratic"
	DefaultMethod       = "doolittle"
	DefaultEpsilon      = 1e-12
	DefaultMaxSteps     = 10000
	DefaultInitialGuess = 1.0
)

// Config is the file form of a solve. A zero epsilon or max_steps leaves
// that bound unset; pivot_epsilon of zero keeps the method default.
type Config struct {
	Model        string             `yaml:"model" json:"model"`
	Method       string             `yaml:"method" json:"method"`
	Epsilon      float64            `yaml:"epsilon" json:"epsilon"`
	MaxSteps     int                `yaml:"max_steps" json:"max_steps"`
	InitialGuess float64            `yaml:"initial_guess" json:"initial_guess"`
	PivotEpsilon float64            `yaml:"pivot_epsilon,omitempty" json:"pivot_epsilon,omitempty"`
	Params       map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:        DefaultModel,
		Method:       DefaultMethod,
		Epsilon:      DefaultEpsilon,
		MaxSteps:     DefaultMaxSteps,
		InitialGuess: DefaultInitialGuess,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Keys missing from the file
// keep the base values; params are merged key by key.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Clone() *Config {
	out := *c
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}

// SetParam records a model parameter, allocating the map on first use.
func (c *Config) SetParam(key string, v float64) {
	if c.Params == nil {
		c.Params = make(map[string]float64)
	}
	c.Params[key] = v
}

func (c *Config) Newton() newton.Config {
	return newton.Config{
		Epsilon:      c.Epsilon,
		MaxSteps:     c.MaxSteps,
		InitialGuess: c.InitialGuess,
	}
}

func (c *Config) LinearSolver() (linsolve.Solver, error) {
	m, err := linsolve.ParseMethod(c.Method)
	if err != nil {
		return nil, err
	}
	return linsolve.New(m, linsolve.WithEpsilon(c.PivotEpsilon))
}
