// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	domainerrors "agenda/internal/domain/errors"

	validatorlib "github.com/go-playground/validator/v10"
)

// EchoValidator wraps a shared validator instance.
type EchoValidator struct {
	validate *validatorlib.Validate
}

// New creates the validator used by the echo server.
func New() *EchoValidator {
	return &EchoValidator{validate: validatorlib.New()}
}

// Validate checks the struct tags of a bound request payload. Failures
// surface as the domain validation error so the error handler renders
// them with the standard envelope.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
