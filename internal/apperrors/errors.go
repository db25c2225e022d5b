package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// FieldError locates a single validation failure within the input payload.
// Loc is a dotted/indexed path such as "costs.variable_ratios.COGS_MAT" or
// "loans.loans[2].principal".
type FieldError struct {
	Loc string `json:"loc"`
	Msg string `json:"msg"`
}

// ValidationError aggregates every field-level failure found while parsing
// one payload, so callers can map each entry back to a specific form field.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError from a list of field errors.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Loc, f.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Add appends a field error.
func (e *ValidationError) Add(loc, msg string) {
	e.Fields = append(e.Fields, FieldError{Loc: loc, Msg: msg})
}

// Merge folds another ValidationError's fields into this one, prefixing each
// location with prefix (joined with a dot unless the child loc is empty).
func (e *ValidationError) Merge(prefix string, other *ValidationError) {
	if other == nil {
		return
	}
	for _, f := range other.Fields {
		loc := prefix
		if f.Loc != "" {
			loc = prefix + "." + f.Loc
		}
		e.Fields = append(e.Fields, FieldError{Loc: loc, Msg: f.Msg})
	}
}

// HasErrors reports whether any field error was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error when fields were recorded, nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
