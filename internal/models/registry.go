package models

import (
	"fmt"
	"sort"

	"github.com/san-kum/nrsolve/internal/newton"
)

type Factory func(p Params) (newton.Model, error)

type entry struct {
	factory     Factory
	description string
	defaults    Params
}

// Registry maps model names to factories built from parameter maps.
type Registry struct {
	models map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]entry)}

	r.Register("quadratic", "x² − a = 0, root √a", Params{"a": DefaultQuadraticA},
		func(p Params) (newton.Model, error) {
			return &Quadratic{A: p.get("a", DefaultQuadraticA)}, nil
		})

	r.Register("circle", "x² + y² = r² intersected with y = x", Params{"r": DefaultCircleRadius},
		func(p Params) (newton.Model, error) {
			r := p.get("r", DefaultCircleRadius)
			if err := positive("r", r); err != nil {
				return nil, err
			}
			return &Circle{R: r}, nil
		})

	r.Register("singular", "[x1 − x2, x1 − x2], rank-deficient Jacobian", Params{},
		func(Params) (newton.Model, error) {
			return NewSingular(), nil
		})

	r.Register("sagtension", "level-span tension after a temperature change", conductorDefaults(),
		func(p Params) (newton.Model, error) {
			s := &SagTension{
				Conductor: conductorFrom(p),
				Span:      p.get("span", DefaultSpan),
				H1:        p.get("h1", DefaultH1),
				T1:        p.get("t1", DefaultT1),
				T2:        p.get("t2", DefaultT2),
			}
			if err := validateSpan(s.Conductor, s.Span, s.H1); err != nil {
				return nil, err
			}
			return s, nil
		})

	rulingDefaults := conductorDefaults()
	rulingDefaults["spans"] = DefaultRulingN
	rulingDefaults["coupling"] = DefaultCoupling
	r.Register("ruling", "chain of spans coupled through insulator swing", rulingDefaults,
		func(p Params) (newton.Model, error) {
			n := int(p.get("spans", DefaultRulingN))
			if n < 2 {
				return nil, fmt.Errorf("%w: spans must be at least 2, got %d", ErrParameter, n)
			}
			m := NewRuling(n)
			m.Conductor = conductorFrom(p)
			m.Coupling = p.get("coupling", DefaultCoupling)
			m.H1 = p.get("h1", DefaultH1)
			m.T1 = p.get("t1", DefaultT1)
			m.T2 = p.get("t2", DefaultT2)
			base := p.get("span", DefaultSpan)
			for i := range m.Spans {
				m.Spans[i] = p.get(fmt.Sprintf("span%d", i+1), base)
				if err := validateSpan(m.Conductor, m.Spans[i], m.H1); err != nil {
					return nil, err
				}
			}
			if m.Coupling < 0 {
				return nil, fmt.Errorf("%w: coupling must not be negative, got %g", ErrParameter, m.Coupling)
			}
			return m, nil
		})

	return r
}

func (r *Registry) Register(name, description string, defaults Params, f Factory) {
	r.models[name] = entry{factory: f, description: description, defaults: defaults}
}

func (r *Registry) Get(name string, p Params) (newton.Model, error) {
	e, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return e.factory(p)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Describe(name string) string {
	return r.models[name].description
}

// Defaults returns a copy of the default parameters of a model.
func (r *Registry) Defaults(name string) Params {
	out := make(Params)
	for k, v := range r.models[name].defaults {
		out[k] = v
	}
	return out
}

func conductorDefaults() Params {
	return Params{
		"area":    DefaultConductor.Area,
		"modulus": DefaultConductor.Modulus,
		"weight":  DefaultConductor.Weight,
		"alpha":   DefaultConductor.Alpha,
		"span":    DefaultSpan,
		"h1":      DefaultH1,
		"t1":      DefaultT1,
		"t2":      DefaultT2,
	}
}

func conductorFrom(p Params) Conductor {
	return Conductor{
		Area:    p.get("area", DefaultConductor.Area),
		Modulus: p.get("modulus", DefaultConductor.Modulus),
		Weight:  p.get("weight", DefaultConductor.Weight),
		Alpha:   p.get("alpha", DefaultConductor.Alpha),
	}
}

func validateSpan(c Conductor, span, h1 float64) error {
	if err := c.validate(); err != nil {
		return err
	}
	if err := positive("span", span); err != nil {
		return err
	}
	return positive("h1", h1)
}
