package dto

import (
	"github.com/Rodfox31/cierre-caja-backend/internal/utils"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs custom binding validators on gin's validator
// engine. Called once at startup.
func RegisterValidations(v *validator.Validate) error {
	// closingdate accepts the canonical YYYY-MM-DD plus the legacy
	// DD/MM/YYYY and DD-MM-YYYY client formats.
	return v.RegisterValidation("closingdate", func(fl validator.FieldLevel) bool {
		return utils.IsValidClosingDate(fl.Field().String())
	})
}
