package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAppErrorThroughWrapping(t *testing.T) {
	base := NewInsufficientStock("p1", "l1", "7", "3")
	wrapped := fmt.Errorf("apply delta: %w", base)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeInsufficientStock, appErr.Code)
	assert.Equal(t, "7", appErr.Details["requested"])
	assert.Equal(t, "3", appErr.Details["available"])

	assert.True(t, IsInsufficientStock(wrapped))
	assert.False(t, IsNotFound(wrapped))
}

func TestAsAppErrorPlainError(t *testing.T) {
	_, ok := AsAppError(errors.New("boom"))
	assert.False(t, ok)
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NewValidation("bad"), http.StatusBadRequest},
		{NewNotFound("product", "x"), http.StatusNotFound},
		{NewInsufficientStock("p", "l", "1", "0"), http.StatusUnprocessableEntity},
		{NewInvalidLocation("l", "CUSTOMER"), http.StatusUnprocessableEntity},
		{NewInvalidMove("no endpoints"), http.StatusInternalServerError},
		{NewConcurrency("stock", "p"), http.StatusConflict},
		{NewDuplicate("product", "sku", "A"), http.StatusConflict},
		{NewUnauthorized("no token"), http.StatusUnauthorized},
		{NewForbidden("nope"), http.StatusForbidden},
		{NewInternal(errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, GetHTTPStatus(tt.err), tt.err.Error())
	}
}

func TestWithDetailAndCause(t *testing.T) {
	cause := errors.New("row locked")
	err := NewConcurrency("stock", "p1").
		WithDetail("retry", true).
		WithCause(cause)

	assert.Equal(t, true, err.Details["retry"])
	assert.ErrorIs(t, err, cause)
}
