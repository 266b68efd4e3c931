package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// TagName is the struct tag read by both gin binding and the usecase layer,
// so request DTOs and domain inputs share one set of rules.
const TagName = "binding"

// New returns a validator that reads `binding` tags and knows the custom rules.
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName(TagName)
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", NotBlank)
	_ = v.RegisterValidation("no_control", NoControl)
}

// NotBlank rejects strings that are empty after trimming whitespace.
// Pointers are dereferenced by the validator; nil pointers are left to omitempty.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// NoControl rejects control characters other than newline and tab.
func NoControl(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r == '\n' || r == '\t' || r == '\r' {
			continue
		}
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
