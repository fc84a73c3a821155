package validator

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so DTO validate tags are checked at bind time.
type RequestValidator struct {
	validate *validator.Validate
}

// New builds the validator used for request DTOs
func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks the struct's validate tags
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}
