package http

import (
	"movers/internal/core/application/usecases/commands"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("phone", validatePhoneNumber); err != nil {
		panic(err)
	}
	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i any) error {
	return rv.validate.Struct(i)
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	number, err := phonenumbers.Parse(fl.Field().String(), commands.DefaultPhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}
