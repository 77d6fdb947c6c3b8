package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetErrorStatusCode(t *testing.T) {
	type TestCase struct {
		Name     string
		Err      error
		Expected int
	}

	testCases := []TestCase{
		{Name: "Sentinel", Err: ErrOrderNotFound, Expected: http.StatusNotFound},
		{Name: "Wrapped sentinel", Err: fmt.Errorf("loading order: %w", ErrForbidden), Expected: http.StatusForbidden},
		{Name: "Write conflict", Err: ErrCartWriteConflict, Expected: http.StatusConflict},
		{Name: "Not logged in", Err: ErrNotLoggedIn, Expected: http.StatusUnauthorized},
		{Name: "Validation error", Err: NewValidationError("bad"), Expected: http.StatusBadRequest},
		{Name: "Wrapped validation", Err: WrapValidation(ErrCartEmpty), Expected: http.StatusBadRequest},
		{Name: "Upstream", Err: fmt.Errorf("gemini: %w", ErrUpstreamUnavailable), Expected: http.StatusBadGateway},
		{Name: "Unknown", Err: errors.New("disk on fire"), Expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, GetErrorStatusCode(tc.Err))
		})
	}
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrCartItemNotFound))
	assert.False(t, IsClientError(errors.New("boom")))
}

func TestWrapValidation(t *testing.T) {
	err := WrapValidation(ErrCartEmpty, FieldError{Field: "items", Tag: "required"})

	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.ErrorIs(t, err, ErrClient)
	assert.Equal(t, ErrCartEmpty.Error(), err.Error())
	assert.Equal(t, []FieldError{{Field: "items", Tag: "required"}}, FieldErrors(err))
}

func TestFromValidator(t *testing.T) {
	type request struct {
		Name     string `validate:"required"`
		Quantity int    `validate:"min=1"`
	}

	err := FromValidator(validator.New().Struct(request{}))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid or missing fields: Name, Quantity", validationErr.Message)
	assert.Equal(t, []FieldError{{Field: "Name", Tag: "required"}, {Field: "Quantity", Tag: "min"}}, validationErr.Fields)

	other := errors.New("not a validation error")
	assert.Same(t, other, FromValidator(other))
	assert.NoError(t, FromValidator(nil))
}
