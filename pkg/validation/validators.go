package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", NotBlank)
}

// NotBlank rejects strings made only of whitespace. Use together with
// required; an empty string passes so the two tags report separately.
func NotBlank(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return strings.TrimSpace(val) != ""
}
