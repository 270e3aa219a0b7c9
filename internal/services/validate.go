package services

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailPattern requires at least six alphanumerics before the @, a domain of
// at least three letters and a lowercase TLD of two to ten letters.
var emailPattern = regexp.MustCompile(`^([a-zA-Z0-9]{6,})@[a-zA-Z]{3,}\.[a-z]{2,10}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidEmail reports whether email has the accepted account email format.
func ValidEmail(email string) bool {
	return validate.Var(email, "account_email") == nil
}

// missingRequired reports whether s fails any of its `validate:"required"` tags.
// Callers pass copies with surrounding spaces trimmed.
func missingRequired(s any) bool {
	return validate.Struct(s) != nil
}
