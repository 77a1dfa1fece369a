// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	"github.com/go-playground/validator/v10"

	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
)

// EchoValidator validates request payloads against their struct tags.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates a validator for echo.
func New() *EchoValidator {
	return &EchoValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Tag failures surface as a validation
// AppError so the error handler renders a 400 envelope.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
