package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// Validate runs struct tag validation.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// Var validates a single value against a tag, e.g. "min=1000,max=20000".
func Var(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func GetValidator() *validator.Validate {
	return validate
}
