package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the `validate` struct tags of v.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, formatValidationError(e))
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(msgs, ", "))
}

func formatValidationError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "oneof":
		return fmt.Sprintf("%s (oneof=%s, got %q)", field, e.Param(), fmt.Sprint(e.Value()))
	default:
		return fmt.Sprintf("%s (%s)", field, e.Tag())
	}
}
