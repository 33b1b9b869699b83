// internal/utils/validator.go
package utils

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("product_id", validateProductID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar checks a single value against a tag such as "product_id".
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func validateProductID(fl validator.FieldLevel) bool {
	id := fl.Field().String()

	// Product IDs are opaque, but must be printable and fit in a route segment
	if strings.TrimSpace(id) == "" || len(id) > 128 {
		return false
	}

	for _, char := range id {
		if unicode.IsControl(char) || char == '/' {
			return false
		}
	}

	return true
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "numeric":
		return e.Field() + " must be a number"
	case "uuid":
		return e.Field() + " must be a UUID"
	case "product_id":
		return "Product ID must be 1-128 printable characters without '/'"
	default:
		return e.Field() + " is invalid"
	}
}
