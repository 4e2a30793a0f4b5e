package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Empty values pass; pair with required or required_if.
	v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		_, err := ParseRole(s)
		return s == "" || err == nil
	})
	v.RegisterValidation("shift", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		_, err := ParseShift(s)
		return s == "" || err == nil
	})
	return v
}

// Validate checks the validate tags of a struct and reports the first
// failing field by its JSON name.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return err
	}
	return errors.New(describe(fields[0]))
}

func describe(fe validator.FieldError) string {
	name := fe.Namespace()
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", name)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", name, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s entries", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s cannot be below %s", name, fe.Param())
	case "number":
		return fmt.Sprintf("%s must be numeric", name)
	case "email":
		return fmt.Sprintf("%s is not an email address", name)
	case "datetime":
		return fmt.Sprintf("%s must match %s", name, fe.Param())
	case "role", "shift":
		return fmt.Sprintf("%s %q is not a known %s", name, fe.Value(), fe.Tag())
	}
	return fmt.Sprintf("%s failed %s", name, fe.Tag())
}
