package errors

import (
	"errors"
	"fmt"
)

// InvalidSectionDataError is returned by a section transformer when a raw
// record does not satisfy the expected variant shape: the _type discriminant
// does not match, or a required structural field is absent or of the wrong
// container kind. The transformer never attempts partial recovery.
type InvalidSectionDataError struct {
	// Variant is the section variant the transformer attempted.
	Variant string
	// Reason describes the first structural check that failed.
	Reason string
	// Unknown marks a discriminant no transformer is registered for, as
	// opposed to a known variant with malformed data.
	Unknown bool
}

// Error implements the error interface.
func (e *InvalidSectionDataError) Error() string {
	return fmt.Sprintf("invalid section data for variant %q: %s", e.Variant, e.Reason)
}

// ToPipelineError converts the error to the structured pipeline form.
func (e *InvalidSectionDataError) ToPipelineError() *PipelineError {
	code := ErrCodeInvalidSectionData
	if e.Unknown {
		code = ErrCodeUnknownSectionType
	}
	return NewValidationError(code, e.Error()).
		WithContext("variant", e.Variant)
}

// NewInvalidSectionDataError creates a transformer validation error for the
// given variant.
func NewInvalidSectionDataError(variant, reason string) *InvalidSectionDataError {
	return &InvalidSectionDataError{Variant: variant, Reason: reason}
}

// IsInvalidSectionData checks whether err is a section validation failure.
func IsInvalidSectionData(err error) bool {
	var se *InvalidSectionDataError
	return errors.As(err, &se)
}
