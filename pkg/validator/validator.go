package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator reports fields by their json name.
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// layoutNames renders time layouts the way users type them.
var layoutNames = map[string]string{
	"2006-01-02": "YYYY-MM-DD",
	"15:04":      "HH:MM",
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fieldErrors
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			fieldErrors[field] = field + " is required"
		case "email":
			fieldErrors[field] = field + " must be a valid email address"
		case "uuid":
			fieldErrors[field] = field + " must be a valid UUID"
		case "datetime":
			layout := e.Param()
			if name, ok := layoutNames[layout]; ok {
				layout = name
			}
			fieldErrors[field] = field + " must use the format " + layout
		case "min":
			fieldErrors[field] = field + " must be at least " + e.Param() + " characters"
		case "max":
			fieldErrors[field] = field + " must be at most " + e.Param() + " characters"
		default:
			fieldErrors[field] = field + " is invalid"
		}
	}

	return fieldErrors
}
