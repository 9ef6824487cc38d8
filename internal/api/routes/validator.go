package routes

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern accepts digits with optional leading + and common separators.
var phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)

// RegisterValidations installs the custom binding rules. Registering the same
// tag twice is a no-op for the validator, so calling this per-router is safe.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	}
}
