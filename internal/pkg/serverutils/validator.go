package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts the first
// failure into a 400 AppError with a readable field message.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return NewBadRequest("invalid request body")
	}

	fe := validationErrors[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return NewBadRequest(fmt.Sprintf("%s is required", field))
	case "max":
		return NewBadRequest(fmt.Sprintf("%s must be at most %s", field, fe.Param()))
	case "min":
		return NewBadRequest(fmt.Sprintf("%s must be at least %s", field, fe.Param()))
	default:
		return NewBadRequest(fmt.Sprintf("%s is invalid", field))
	}
}
