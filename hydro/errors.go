package hydro

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfDomain indicates a lookup outside the table's draft or
	// displacement range. Fatal: callers must halt and verify their data,
	// never substitute a default coefficient.
	ErrOutOfDomain = errors.New("hydro: lookup outside table domain")

	// ErrTooFewPoints indicates a table with fewer than two points.
	ErrTooFewPoints = errors.New("hydro: table needs at least two points")

	// ErrNotMonotonic indicates points whose mean draft or displacement is
	// not strictly increasing.
	ErrNotMonotonic = errors.New("hydro: table must be strictly increasing")

	// ErrBadValue indicates a non-finite or non-positive coefficient.
	ErrBadValue = errors.New("hydro: coefficients must be finite and positive")
)

// DomainError carries the offending query and the table's valid range.
// It matches ErrOutOfDomain under errors.Is.
type DomainError struct {
	Axis  string  // "draft" or "displacement"
	Query float64 // the out-of-range value
	Min   float64 // table lower bound on Axis
	Max   float64 // table upper bound on Axis
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("hydro: %s %.4f outside table domain [%.4f, %.4f]",
		e.Axis, e.Query, e.Min, e.Max)
}

// Unwrap lets errors.Is(err, ErrOutOfDomain) succeed.
func (e *DomainError) Unwrap() error { return ErrOutOfDomain }
