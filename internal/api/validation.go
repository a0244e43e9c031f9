package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// BindingMessage turns a gin binding failure into the single user-facing
// message the envelope carries. Only the first failed field is reported.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	return fieldMessage(verrs[0])
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "Parameter " + err.Field() + " is required"
	case "email":
		return "Parameter " + err.Field() + " must be a valid email address"
	case "min":
		return "Parameter " + err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return "Parameter " + err.Field() + " must be at most " + err.Param() + " characters"
	case "gte":
		return "Parameter " + err.Field() + " must be a number greater than or equal to " + err.Param()
	default:
		return "Parameter " + err.Field() + " is invalid"
	}
}
