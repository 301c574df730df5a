package middleware

import (
	"github.com/go-playground/validator/v10"

	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
)

var validate = validator.New()

// ValidateStruct runs tag validation on a bound request and returns a
// formatted error detail, or nil when the request is valid.
func ValidateStruct(obj interface{}) *dto.ErrorDetail {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	}

	details := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		details = append(details, formatValidationError(fieldError))
	}

	return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(details)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
