package models

// Conductor describes an overhead line conductor in SI units.
type Conductor struct {
	Area    float64 // m²
	Modulus float64 // Pa
	Weight  float64 // N/m
	Alpha   float64 // thermal expansion, 1/°C
}

// DefaultConductor is roughly an ACSR Drake.
var DefaultConductor = Conductor{
	Area:    4.68e-4,
	Modulus: 6.9e10,
	Weight:  16,
	Alpha:   1.9e-5,
}

func (c Conductor) EA() float64 { return c.Modulus * c.Area }

func (c Conductor) validate() error {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"area", c.Area}, {"modulus", c.Modulus}, {"weight", c.Weight},
	} {
		if err := positive(p.name, p.v); err != nil {
			return err
		}
	}
	return nil
}

// stateChange is the parabolic state-change equation for a level span,
// solved for the horizontal tension H at a new temperature:
//
//	H²·(H − H1 + EA·w²L²/(24·H1²) + EA·α·(T2 − T1)) − EA·w²L²/24 = 0
type stateChange struct {
	ea     float64
	w      float64
	h1     float64
	strain float64
}

func newStateChange(c Conductor, h1, t1, t2 float64) stateChange {
	return stateChange{
		ea:     c.EA(),
		w:      c.Weight,
		h1:     h1,
		strain: c.Alpha * (t2 - t1),
	}
}

func (s stateChange) k(span float64) float64 {
	return s.ea * s.w * s.w * span * span / 24
}

func (s stateChange) coeff(span float64) float64 {
	return -s.h1 + s.k(span)/(s.h1*s.h1) + s.ea*s.strain
}

func (s stateChange) eval(h, span float64) float64 {
	return h*h*(h+s.coeff(span)) - s.k(span)
}

func (s stateChange) dH(h, span float64) float64 {
	return 3*h*h + 2*h*s.coeff(span)
}

func (s stateChange) dSpan(h, span float64) float64 {
	dk := s.ea * s.w * s.w * span / 12
	return dk * (h*h/(s.h1*s.h1) - 1)
}

// Sag is the parabolic mid-span sag for tension h.
func Sag(weight, span, h float64) float64 {
	return weight * span * span / (8 * h)
}
