package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryNew(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "thing not found")

	err := reg.New(code)
	require.NotNil(t, err)
	assert.Equal(t, Code("TEST_NOT_FOUND"), err.Code)
	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "thing not found", err.Message)
}

func TestNewWithCauseUnwraps(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BROKEN", TypeInternal, http.StatusInternalServerError, "broken")

	cause := errors.New("disk on fire")
	err := reg.NewWithCause(code, cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestWithDetailChaining(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BAD_INPUT", TypeValidation, http.StatusUnprocessableEntity, "bad input")

	err := reg.New(code).
		WithDetail("field", "name").
		WithDetails(map[string]any{"min": 2, "got": 1})

	assert.Equal(t, "name", err.Details["field"])
	assert.Equal(t, 2, err.Details["min"])

	resp := err.ToHTTPResponse()
	assert.Equal(t, Code("TEST_BAD_INPUT"), resp["code"])
	assert.NotNil(t, resp["details"])
}

func TestWrapPreservesExistingError(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "gone")

	orig := reg.New(code)
	wrapped := Wrap(fmt.Errorf("layered: %w", orig), "something else", TypeInternal)

	// The original classification must survive re-wrapping.
	assert.Equal(t, TypeNotFound, wrapped.Type)
	assert.Equal(t, orig.Code, wrapped.Code)
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrap(errors.New("boom"), "processing failed", TypeExternal)
	assert.Equal(t, TypeExternal, wrapped.Type)
	assert.Equal(t, http.StatusBadGateway, wrapped.HTTPStatus)
	assert.True(t, IsType(wrapped, TypeExternal))
}
