package rest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/gamemate/gamemate/internal/httperr"
)

// passwordSpecials is the character set accepted as "special" by the
// password strength rule.
const passwordSpecials = "@$!%*#?&.,/_-"

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report field names as they appear on the wire
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// strongpassword: at least one letter, one digit and one special
	// character (length bounds come from min/max tags)
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		var letter, digit, special bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLetter(r):
				letter = true
			case unicode.IsDigit(r):
				digit = true
			case strings.ContainsRune(passwordSpecials, r):
				special = true
			}
		}
		return letter && digit && special
	})

	return v
}

// validationError converts a validator failure into the client-facing 400
// with per-field detail. Non-validator errors pass through untouched and
// surface as server faults.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]httperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, httperr.FieldError{
			Field:   fe.Field(),
			Message: constraintMessage(fe),
		})
	}
	return httperr.Validation(fields)
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "strongpassword":
		return "the password does not meet security standards"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
