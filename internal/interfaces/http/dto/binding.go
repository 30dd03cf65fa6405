package dto

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/openfms/backend/internal/domain/shared"
)

// RegisterValidations installs custom binding validations on gin's
// validator engine. Call once at startup before serving requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return shared.Role(fl.Field().String()).IsValid()
	})
}
