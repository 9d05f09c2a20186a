package linsolve

import "errors"

var (
	// ErrDimensionMismatch indicates a non-square or ragged coefficient matrix,
	// or a right-hand side whose length differs from the matrix order.
	ErrDimensionMismatch = errors.New("linsolve: dimension mismatch")

	// ErrSingular indicates a pivot magnitude at or below the pivot epsilon.
	ErrSingular = errors.New("linsolve: singular matrix")

	// ErrUnknownMethod is returned by ParseMethod and New for names or values
	// outside the Method enum.
	ErrUnknownMethod = errors.New("linsolve: unknown method")
)
