package errs

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// ValidationError is returned for client-fixable input problems. Fields is empty
// when the failure is not tied to a single request field (e.g. an empty cart).
type ValidationError struct {
	Message string
	Fields  []FieldError
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrClient, e.Err}
	}
	return []error{ErrClient}
}

func NewValidationError(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// WrapValidation reports a sentinel as a validation failure while keeping it
// matchable with errors.Is.
func WrapValidation(err error, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: err.Error(), Fields: fields, Err: err}
}

// FromValidator converts the output of validator.Struct. Errors of any other
// kind are returned untouched.
func FromValidator(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make([]FieldError, 0, len(validationErrs))
	names := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, FieldError{Field: fe.Field(), Tag: fe.Tag()})
		names = append(names, fe.Field())
	}

	return &ValidationError{
		Message: "Invalid or missing fields: " + strings.Join(names, ", "),
		Fields:  fields,
	}
}

// FieldErrors returns the field details carried by err, if any.
func FieldErrors(err error) []FieldError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Fields) > 0 {
		return validationErr.Fields
	}
	return nil
}
