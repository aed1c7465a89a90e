package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-tracker/internal/domain"
)

// payloadValidator reports fields by their JSON names.
var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validatePayload checks a create payload against its struct tags and returns
// the first failure as a *domain.ValidationError.
func validatePayload(payload any) error {
	err := payloadValidator.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError("", err.Error(), nil)
	}

	fe := fieldErrs[0]
	return domain.NewValidationError(fe.Field(), fieldMessage(fe), nil)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isNumber(fe) {
			return fmt.Sprintf("must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if isNumber(fe) {
			return fmt.Sprintf("must be at most %s", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "is not a valid address"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func isNumber(fe validator.FieldError) bool {
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// minLength returns a patch check requiring at least n characters.
func minLength(field string, n int) func(string) error {
	return func(s string) error {
		if len([]rune(s)) < n {
			return domain.NewValidationError(field, fmt.Sprintf("must be at least %d characters", n), nil)
		}
		return nil
	}
}

// externalTaskError rewrites a task validation error to use the wire field name.
func externalTaskError(err error) error {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	if name, ok := ExternalField(ve.Field); ok {
		return &domain.ValidationError{Field: name, Message: ve.Message, Err: ve.Err}
	}
	return err
}
