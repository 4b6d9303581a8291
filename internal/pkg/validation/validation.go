// Package validation runs ordered field rules before a request reaches the
// store.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"hrms/backend/foundation/web"
)

var validate = validator.New()

// Rule checks one field. It returns nil when the field is acceptable.
type Rule func() *web.FieldError

// Validate evaluates every rule in order and reports all failures together.
func Validate(rules ...Rule) error {
	var fields []web.FieldError
	for _, rule := range rules {
		if fe := rule(); fe != nil {
			fields = append(fields, *fe)
		}
	}

	if len(fields) > 0 {
		return web.NewValidationError(fields)
	}

	return nil
}

// NotBlank trims and NFC-normalizes *value in place and rejects it when
// nothing is left.
func NotBlank(field, label string, value *string) Rule {
	return func() *web.FieldError {
		*value = norm.NFC.String(strings.TrimSpace(*value))
		if *value == "" {
			return &web.FieldError{Field: field, Error: label + " cannot be empty"}
		}
		return nil
	}
}

// Email trims *value in place and checks it is a syntactically valid address.
func Email(field string, value *string) Rule {
	return func() *web.FieldError {
		*value = strings.TrimSpace(*value)
		if err := validate.Var(*value, "required,email"); err != nil {
			return &web.FieldError{Field: field, Error: "value is not a valid email address"}
		}
		return nil
	}
}

// OneOf accepts value only when it equals one of allowed exactly.
func OneOf(field, label, value string, allowed ...string) Rule {
	return func() *web.FieldError {
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}

		quoted := make([]string, len(allowed))
		for i, a := range allowed {
			quoted[i] = fmt.Sprintf("%q", a)
		}
		return &web.FieldError{
			Field: field,
			Error: fmt.Sprintf("%s must be either %s", label, strings.Join(quoted, " or ")),
		}
	}
}

// Required rejects a field that was not supplied.
func Required(field string, present bool) Rule {
	return func() *web.FieldError {
		if !present {
			return &web.FieldError{Field: field, Error: field + " is required"}
		}
		return nil
	}
}
