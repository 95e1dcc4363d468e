package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineError_Format(t *testing.T) {
	err := NewValidationError(ErrCodeBadRequest, "missing path")
	assert.Equal(t, "[ERR_BAD_REQUEST] missing path", err.Error())

	wrapped := ErrFetchFailed(fmt.Errorf("connection refused"))
	assert.Contains(t, wrapped.Error(), "ERR_FETCH_FAILED")
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestPipelineError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := ErrFetchFailed(cause)

	assert.ErrorIs(t, err, cause)
}

func TestPipelineError_IsMatchesTypeAndCode(t *testing.T) {
	a := NewSecurityError(ErrCodeUnauthorized, "unauthorized")
	b := ErrUnauthorized()

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, NewValidationError(ErrCodeBadRequest, "x")))
}

func TestRecoverability(t *testing.T) {
	assert.True(t, IsRecoverable(NewValidationError(ErrCodeInvalidSectionData, "x")))
	assert.False(t, IsRecoverable(ErrUnauthorized()))
	assert.False(t, IsRecoverable(fmt.Errorf("plain")))
}

func TestIsSecurityError(t *testing.T) {
	assert.True(t, IsSecurityError(ErrUnauthorized()))
	assert.False(t, IsSecurityError(ErrBadRequest("path")))
}

func TestInvalidSectionDataError(t *testing.T) {
	err := NewInvalidSectionDataError("cardsSection", "missing cards")

	assert.Contains(t, err.Error(), "cardsSection")
	assert.True(t, IsInvalidSectionData(err))
	assert.False(t, IsInvalidSectionData(fmt.Errorf("other")))

	pe := err.ToPipelineError()
	assert.Equal(t, ErrCodeInvalidSectionData, pe.Code)
	assert.Equal(t, "cardsSection", pe.Context["variant"])
	assert.True(t, pe.Recoverable)

	unknown := &InvalidSectionDataError{Variant: "bannerSection", Reason: "unknown", Unknown: true}
	assert.Equal(t, ErrCodeUnknownSectionType, unknown.ToPipelineError().Code)
}

func TestWithContext(t *testing.T) {
	err := NewValidationError(ErrCodeBadRequest, "x").
		WithContext("field", "path").
		WithContext("remote", "10.0.0.1")

	assert.Equal(t, "path", err.Context["field"])
	assert.Equal(t, "10.0.0.1", err.Context["remote"])
}
