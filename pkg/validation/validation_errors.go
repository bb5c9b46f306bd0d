package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failing field, suitable for per-field UI feedback.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Struct validates s and returns every failing field, or nil when s is valid.
// Errors other than field failures (for example a nil pointer) are returned as err.
func Struct(v *validator.Validate, s interface{}) ([]FieldError, error) {
	err := v.Struct(s)
	if err == nil {
		return nil, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}
	return FormatValidationErrors(validationErrors), nil
}

// FormatValidationErrors converts validator.ValidationErrors to field/reason pairs
func FormatValidationErrors(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, FieldError{
			Field:  fieldPath(e),
			Reason: formatReason(e),
		})
	}
	return out
}

// fieldPath drops the root struct name: "ContactRequest.message" -> "message".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func formatReason(e validator.FieldError) string {
	param := e.Param()
	isString := e.Kind().String() == "string"

	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return fmt.Sprintf("must be at most %s", param)
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", param)
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	case "alphanum":
		return "must contain only letters and digits"
	case "single_line":
		return "must not contain line breaks"
	default:
		return fmt.Sprintf("failed validation (%s)", e.Tag())
	}
}
