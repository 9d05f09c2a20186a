package models

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownModel = errors.New("models: unknown model")
	ErrParameter    = errors.New("models: parameter out of valid bounds")
)

// Params holds named model parameters. A missing key takes the model default.
type Params map[string]float64

func (p Params) get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrParameter, name, v)
	}
	return nil
}
