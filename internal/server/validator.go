package server

import "github.com/go-playground/validator/v10"

type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{
		validate: validator.New(),
	}
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
