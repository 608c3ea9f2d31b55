package validator

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs project-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Startup misconfiguration, the app must not run like this.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'notblank': a string that is present must contain something besides
	// whitespace. 'required' alone accepts "   ".
	mustRegister("notblank", validateNotBlank)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
