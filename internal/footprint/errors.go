package footprint

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrInvalidEnumValue = errors.New("invalid enum value")
	ErrInvalidRange     = errors.New("value out of range")
	ErrNotFinite        = errors.New("value is not a finite number")
	ErrInvalidFactors   = errors.New("invalid emission factors")
	ErrInvalidEngine    = errors.New("invalid engine configuration")
)

// InvalidInputError describes a single rejected input field.
type InvalidInputError struct {
	// Field is the dotted JSON path of the field, e.g. "energy.renewablePercentage".
	Field string
	// Message is a human-readable explanation.
	Message string
	// Err is one of ErrInvalidEnumValue, ErrInvalidRange or ErrNotFinite.
	Err error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// Code returns a stable machine-readable code for the failure kind.
func (e *InvalidInputError) Code() string {
	switch {
	case errors.Is(e.Err, ErrInvalidEnumValue):
		return "invalid_enum_value"
	case errors.Is(e.Err, ErrNotFinite):
		return "not_finite"
	default:
		return "invalid_range"
	}
}

// enumError reports an unknown enum value found while decoding.
func enumError(field, kind string, text []byte) error {
	return &InvalidInputError{
		Field:   field,
		Message: fmt.Sprintf("unknown %s %q", kind, string(text)),
		Err:     ErrInvalidEnumValue,
	}
}

// ValidationError aggregates every invalid field found in an Input.
type ValidationError struct {
	Errors []*InvalidInputError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Error())
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the field errors so errors.Is matches the sentinels.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, fe := range e.Errors {
		errs = append(errs, fe)
	}
	return errs
}

// Field returns the error for the given field path, or nil.
func (e *ValidationError) Field(path string) *InvalidInputError {
	for _, fe := range e.Errors {
		if fe.Field == path {
			return fe
		}
	}
	return nil
}
