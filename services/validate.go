package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateInput turns the first failed rule into a ValidationError
func validateInput(v *validator.Validate, in interface{}) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return validationError("invalid input")
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return validationError("%s is required", fe.Field())
	case "email":
		return validationError("%s must be a valid email address", fe.Field())
	case "min":
		return validationError("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return validationError("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return validationError("%s is invalid", fe.Field())
	}
}

func requirePositive(field string, n int) error {
	if n < 1 {
		return validationError("%s must be at least 1", field)
	}
	return nil
}
