package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationErrorResponse maps each failing field to its messages. Validation
// failures are recovered at the handler boundary and returned in this shape;
// they never propagate further as errors.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

// NewValidationErrorResponse translates a binding error into field messages.
// Non-validator errors (malformed JSON and the like) collapse into a single
// "body" entry.
func NewValidationErrorResponse(err error) ValidationErrorResponse {
	resp := ValidationErrorResponse{Errors: map[string][]string{}}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		resp.Errors["body"] = []string{"invalid request body"}
		return resp
	}
	for _, fe := range verrs {
		field := fe.Field()
		resp.Errors[field] = append(resp.Errors[field], messageForTag(fe))
	}
	return resp
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short (minimum " + fe.Param() + ")"
	case "max":
		return "is too long (maximum " + fe.Param() + ")"
	case "alphanum":
		return "must contain only letters and digits"
	default:
		return "is invalid"
	}
}
