// Package check holds the error taxonomy shared by the domain packages and a
// few numeric range guards used at every assignment point.
package check

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalid marks type, range and enumeration violations.
	ErrInvalid = errors.New("invalid value")
	// ErrMismatch marks aggregation preconditions that do not hold, such as
	// merging typologies of different program or era.
	ErrMismatch = errors.New("aggregation precondition failed")
	// ErrLookup marks reference-table keys that are absent.
	ErrLookup = errors.New("reference table lookup failed")
	// ErrEmptyAggregate marks a weighted average whose weights sum to zero.
	ErrEmptyAggregate = errors.New("weighted average over zero total weight")
	// ErrParented marks an attempt to attach a typology to a second district.
	ErrParented = errors.New("typology already belongs to a district")
)

// FieldError describes a rejected assignment.
type FieldError struct {
	Field    string
	Expected string
	Actual   any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s must be %s, got %v", e.Field, e.Expected, e.Actual)
}

func (e *FieldError) Unwrap() error { return ErrInvalid }

// Invalid returns a *FieldError for field.
func Invalid(field, expected string, actual any) error {
	return &FieldError{Field: field, Expected: expected, Actual: actual}
}

// LookupError describes a missing reference-table key.
type LookupError struct {
	Table string
	Key   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s has no entry for %q", e.Table, e.Key)
}

func (e *LookupError) Unwrap() error { return ErrLookup }

// InRange returns an error unless lo <= v <= hi.
func InRange(v, lo, hi float64, field string) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return Invalid(field, fmt.Sprintf("between %v and %v", lo, hi), v)
	}
	return nil
}

// Fraction returns an error unless v is in [0, 1].
func Fraction(v float64, field string) error {
	return InRange(v, 0, 1, field)
}

// NonNegative returns an error unless v is a finite number >= 0.
func NonNegative(v float64, field string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return Invalid(field, "a finite number >= 0", v)
	}
	return nil
}

// Positive returns an error unless v is a finite number > 0.
func Positive(v float64, field string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Invalid(field, "a finite number > 0", v)
	}
	return nil
}
