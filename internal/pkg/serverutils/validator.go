package serverutils

import (
	"fmt"
	"strings"

	"communal-canon-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into a
// single validation error the error handler can render.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, len(validationErrors))
	for i, fe := range validationErrors {
		messages[i] = fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag())
	}
	return apperror.Validation("INVALID_REQUEST", strings.Join(messages, "; "))
}
