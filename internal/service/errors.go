package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrSuspended          = errors.New("account suspended")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

var (
	ErrTooManyImages = &ValidationError{Message: "Max 10 images allowed"}
	ErrNoImages      = &ValidationError{Message: "Please upload at least one image"}
)

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// checkID rejects ids that cannot name a row. Malformed ids read as missing.
func checkID(id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		return ErrNotFound
	}
	return nil
}

// validate is shared by every service. Field names in messages are the json names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs struct validation and turns the first failure into a ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return invalid("%s is required", fe.Field())
	case "email":
		return invalid("%s must be a valid email address", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return invalid("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return invalid("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return invalid("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return invalid("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return invalid("%s must not be negative", fe.Field())
	case "oneof":
		return invalid("%s must be one of: %s", fe.Field(), fe.Param())
	case "url":
		return invalid("%s must be a valid URL", fe.Field())
	}
	return invalid("%s is invalid", fe.Field())
}
