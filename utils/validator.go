package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"attack_game/sdk"
)

var (
	once sync.Once
	v    *validator.Validate
)

// validateAddress accepts strings usable as ledger addresses and state key parts.
func validateAddress(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && sdk.Address(s).IsValid()
}

// Validator returns a singleton that can be used to validate configs and scenarios
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())

		if err := v.RegisterValidation("ledger_address", validateAddress); err != nil {
			panic("failed to register validation: " + err.Error())
		}
	})
	return v
}
