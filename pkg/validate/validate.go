package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// passwordSpecials are the symbols accepted by the password policy.
const passwordSpecials = "!@#$%^&*"

// passwordMaxBytes is the longest input bcrypt accepts.
const passwordMaxBytes = 72

// Validator checks request structs against their `validate` tags.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom "password" rule registered.
// Field names in errors follow the json tag of the field.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("password", validatePassword)
	return &Validator{v: v}
}

var std = New()

// Struct validates s with the package level Validator.
func Struct(s any) error {
	return std.Struct(s)
}

// Struct validates s and returns a ValidationError listing every failed field.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := make(ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), fieldMessage(fe))
	}
	return out
}

// validatePassword requires 8 characters to 72 bytes with a lower-case
// letter, an upper-case letter, a digit and one of !@#$%^&*.
func validatePassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 || len(s) > passwordMaxBytes {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "hexadecimal":
		return "must be hexadecimal"
	case "password":
		return fmt.Sprintf("must be at least 8 characters (at most %d bytes) and contain a lower-case letter, an upper-case letter, a digit and one of %s", passwordMaxBytes, passwordSpecials)
	default:
		return "is invalid"
	}
}
