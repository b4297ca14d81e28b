package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Indian mobile numbers: optional +91 prefix, then 10 digits starting 6-9.
var phonePattern = regexp.MustCompile(`^(\+91)?[6-9][0-9]{9}$`)

// RegisterValidators installs the custom tags used by request structs.
// Call once on the shared *validator.Validate and on gin's binding engine.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("valid_name", validName); err != nil {
		return err
	}
	return v.RegisterValidation("valid_phone", validPhone)
}

func validName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if len(name) < 2 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '.' && r != '\'' && r != '-' {
			return false
		}
	}
	return true
}

func validPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}
