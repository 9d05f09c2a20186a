package models

import (
	"github.com/san-kum/nrsolve/internal/linalg"
)

const (
	DefaultSpan    = 300.0
	DefaultH1      = 28000.0
	DefaultT1      = 15.0
	DefaultT2      = 75.0
	DefaultRulingN = 4
)

// SagTension finds the horizontal tension in a level span at temperature
// T2, given the tension H1 at T1. The unknown is x = [H2].
type SagTension struct {
	Conductor
	Span float64
	H1   float64
	T1   float64
	T2   float64
}

func NewSagTension() *SagTension {
	return &SagTension{
		Conductor: DefaultConductor,
		Span:      DefaultSpan,
		H1:        DefaultH1,
		T1:        DefaultT1,
		T2:        DefaultT2,
	}
}

func (s *SagTension) eq() stateChange {
	return newStateChange(s.Conductor, s.H1, s.T1, s.T2)
}

func (s *SagTension) VectorSize() int { return 1 }

func (s *SagTension) Residual(x linalg.Vector) linalg.Vector {
	return linalg.Vector{s.eq().eval(x[0], s.Span)}
}

func (s *SagTension) Jacobian(x linalg.Vector) linalg.Matrix {
	return linalg.FromRows([]float64{s.eq().dH(x[0], s.Span)})
}

// Sag is the mid-span sag at tension h.
func (s *SagTension) Sag(h float64) float64 {
	return Sag(s.Weight, s.Span, h)
}
