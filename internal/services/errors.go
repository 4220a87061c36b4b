package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidInput marks request data that failed validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrCreateFailed marks a store rejection of a new customer. Its message
	// is safe to show to the client.
	ErrCreateFailed = errors.New("create failed")
)

// ValidationError lists the fields of a request that failed validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// CreateError carries the store's own message for a failed insert
type CreateError struct {
	Err error
}

func (e *CreateError) Error() string {
	return e.Err.Error()
}

func (e *CreateError) Unwrap() []error {
	return []error{ErrCreateFailed, e.Err}
}

// IsInvalidInput reports whether err came from input validation
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCreateFailed reports whether err is a store rejection of a create
func IsCreateFailed(err error) bool {
	return errors.Is(err, ErrCreateFailed)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			fields = append(fields, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			fields = append(fields, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			fields = append(fields, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}

	return &ValidationError{Fields: fields}
}
