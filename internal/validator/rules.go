package validator

import (
	"log"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the guestbook validation tags on the given
// validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'author_name': allowlist of letters (incl. accented Latin) and spaces,
	// 3-50 characters. Applied to already sanitized input.
	mustRegister("author_name", validateAuthorName)
}

func validateAuthorName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty values are handled by 'required'
	}
	return ValidName(value)
}
