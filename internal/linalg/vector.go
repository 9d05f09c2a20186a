// Package linalg holds the dense vector and matrix types shared by the solvers.
package linalg

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Vector []float64

// Filled returns a vector of length n with every component set to v.
func Filled(n int, v float64) Vector {
	x := make(Vector, n)
	for i := range x {
		x[i] = v
	}
	return x
}

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, 2)
}

// MaxAbs is the infinity norm, max |v_i|.
func (v Vector) MaxAbs() float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, math.Inf(1))
}

// Add returns v + other. Both vectors must have the same length.
func (v Vector) Add(other Vector) Vector {
	result := v.Clone()
	floats.Add(result, other)
	return result
}

// Sub returns v - other. Both vectors must have the same length.
func (v Vector) Sub(other Vector) Vector {
	result := v.Clone()
	floats.Sub(result, other)
	return result
}

func (v Vector) Scale(factor float64) Vector {
	result := v.Clone()
	floats.Scale(factor, result)
	return result
}

// Negated returns -v.
func (v Vector) Negated() Vector {
	return v.Scale(-1)
}
