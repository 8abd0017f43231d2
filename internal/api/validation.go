package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationDetails extracts field-level errors from a gin binding error.
// Returns nil when the error is not a validator error (e.g. malformed JSON).
func ValidationDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Message: fieldErrorMessage(fe),
		})
	}
	return details
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "gte":
		return fe.Field() + " must be greater than or equal to " + fe.Param()
	case "datetime":
		return fe.Field() + " must match format " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
