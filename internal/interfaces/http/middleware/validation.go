package middleware

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/shoprank/backend/internal/interfaces/http/dto"
)

// SetupValidator configures gin's validator to report query and JSON field names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// FormatValidationErrors converts a binding error into an error payload.
// Non-validation errors (e.g. a non-numeric limit) are reported as-is.
func FormatValidationErrors(err error, now time.Time) dto.ErrorResponse {
	resp := dto.NewErrorResponse(dto.ErrorInvalidRequest, err.Error(), now)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return resp
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		detail := dto.ValidationError{
			Field:   e.Field(),
			Message: getValidationMessage(e),
		}
		resp.Details = append(resp.Details, detail)
		messages = append(messages, detail.Field+": "+detail.Message)
	}
	resp.Message = strings.Join(messages, "; ")
	return resp
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
