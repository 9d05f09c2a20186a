package models

import (
	"github.com/san-kum/nrsolve/internal/linalg"
)

const DefaultCoupling = 1e-5

// Ruling is a chain of level spans strung through suspension insulators.
// Every span obeys the state-change equation, and a tension difference
// between neighbours swings the insulator between them toward the tighter
// span, shortening it:
//
//	δ_k  = Coupling·(H_k − H_{k+1})
//	L'_i = L_i − δ_i + δ_{i−1}
//
// The unknowns are the span tensions x = [H_0 … H_{n−1}], and the Jacobian
// is tridiagonal.
type Ruling struct {
	Conductor
	Spans    []float64
	Coupling float64
	H1       float64
	T1       float64
	T2       float64
}

func NewRuling(n int) *Ruling {
	spans := make([]float64, n)
	for i := range spans {
		spans[i] = DefaultSpan
	}
	return &Ruling{
		Conductor: DefaultConductor,
		Spans:     spans,
		Coupling:  DefaultCoupling,
		H1:        DefaultH1,
		T1:        DefaultT1,
		T2:        DefaultT2,
	}
}

func (r *Ruling) VectorSize() int { return len(r.Spans) }

// effective returns the span lengths after insulator swing at tensions h.
func (r *Ruling) effective(h linalg.Vector) []float64 {
	n := len(r.Spans)
	out := make([]float64, n)
	copy(out, r.Spans)
	for k := 0; k < n-1; k++ {
		d := r.Coupling * (h[k] - h[k+1])
		out[k] -= d
		out[k+1] += d
	}
	return out
}

func (r *Ruling) Residual(x linalg.Vector) linalg.Vector {
	eq := newStateChange(r.Conductor, r.H1, r.T1, r.T2)
	spans := r.effective(x)
	f := make(linalg.Vector, len(x))
	for i := range x {
		f[i] = eq.eval(x[i], spans[i])
	}
	return f
}

func (r *Ruling) Jacobian(x linalg.Vector) linalg.Matrix {
	eq := newStateChange(r.Conductor, r.H1, r.T1, r.T2)
	spans := r.effective(x)
	n := len(x)
	c := r.Coupling
	jac := linalg.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		ds := eq.dSpan(x[i], spans[i])
		jac[i][i] = eq.dH(x[i], spans[i])
		if i > 0 {
			jac[i][i] -= ds * c
			jac[i][i-1] = ds * c
		}
		if i < n-1 {
			jac[i][i] -= ds * c
			jac[i][i+1] = ds * c
		}
	}
	return jac
}

// EffectiveSpans reports the span lengths at tensions h.
func (r *Ruling) EffectiveSpans(h linalg.Vector) []float64 {
	return r.effective(h)
}
