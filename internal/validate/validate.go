// Package validate plugs go-playground/validator into echo so handlers can
// call c.Validate on bound request payloads.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error carries one message per failing field.
type Error struct {
	Details []string
}

func (e *Error) Error() string {
	return strings.Join(e.Details, "; ")
}

// Echo adapts a validator.Validate to echo's Validator interface.
type Echo struct {
	v *validator.Validate
}

func New() *Echo {
	return &Echo{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate runs the struct tags and converts failures into an *Error with
// one human-readable detail per field.
func (e *Echo) Validate(i interface{}) error {
	err := e.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{}
	for _, fe := range verrs {
		out.Details = append(out.Details, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match the %s format", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
