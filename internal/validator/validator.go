package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 50
)

var (
	emailRgx = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	timestampLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04",
		"2006-01-02",
	}
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterTagNameFunc(jsonFieldName)

	validator.RegisterValidation("strict_email", validateEmail)
	validator.RegisterValidation("password_len", validatePasswordLength)
	validator.RegisterValidation("password_digits", validatePasswordNotDigits)
	validator.RegisterValidation("password_letters", validatePasswordNotLetters)
	validator.RegisterValidation("password_upper", validatePasswordHasUpper)
	validator.RegisterValidation("roles", validateRoles)
	validator.RegisterValidation("location", validateLocation)
	validator.RegisterValidation("iso8601", validateTimestamp)

	validator.RegisterAlias("password_required", "required")
	validator.RegisterAlias("rating", "gte=0,lte=10")
	validator.RegisterAlias("genre", "gte=1,lte=8")

	return validator
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return fld.Name
	}

	return name
}

func validateEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()

	return strings.Contains(email, "@") && emailRgx.MatchString(email)
}

func validatePasswordLength(fl validator.FieldLevel) bool {
	return len([]rune(fl.Field().String())) >= minPasswordLength
}

func validatePasswordNotDigits(fl validator.FieldLevel) bool {
	return !allRunes(fl.Field().String(), unicode.IsDigit)
}

func validatePasswordNotLetters(fl validator.FieldLevel) bool {
	return !allRunes(fl.Field().String(), unicode.IsLetter)
}

// validatePasswordHasUpper fails when the password has cased letters and
// none of them is upper case. A password with no letters at all passes.
func validatePasswordHasUpper(fl validator.FieldLevel) bool {
	hasLower := false

	for _, ch := range fl.Field().String() {
		switch {
		case unicode.IsUpper(ch), unicode.IsTitle(ch):
			return true
		case unicode.IsLower(ch):
			hasLower = true
		}
	}

	return !hasLower
}

func validateRoles(fl validator.FieldLevel) bool {
	roles, ok := fl.Field().Interface().(domain.Roles)
	if !ok || len(roles) == 0 {
		return false
	}

	for _, r := range roles {
		if !r.Valid() {
			return false
		}
	}

	return true
}

func validateLocation(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case domain.Location:
		return v.Valid()
	case string:
		return domain.Location(v).Valid()
	default:
		return false
	}
}

func validateTimestamp(fl validator.FieldLevel) bool {
	_, err := ParseTimestamp(fl.Field().String())
	return err == nil
}

// ParseTimestamp parses an ISO 8601 timestamp. A trailing Z is read as +00:00.
func ParseTimestamp(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func allRunes(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}

	for _, ch := range s {
		if !pred(ch) {
			return false
		}
	}

	return true
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "password_required":
		return "Password cannot be empty"
	case "strict_email":
		if !strings.Contains(fmt.Sprint(err.Value()), "@") {
			return "Email must contain '@'"
		}
		return "Invalid email format"
	case "password_len":
		return "Password must be at least 8 characters long"
	case "password_digits":
		return "Password cannot consist only of digits"
	case "password_letters":
		return "Password must contain both letters and numbers/symbols"
	case "password_upper":
		return "Password should contain at least one uppercase letter"
	case "eqfield":
		return "Passwords do not match"
	case "roles":
		if roles, ok := err.Value().(domain.Roles); ok && len(roles) > 0 {
			return "Roles list contains an unknown role"
		}
		return "Roles list cannot be empty"
	case "location":
		return "Location must be one of MSK, SPB"
	case "iso8601":
		return "Invalid date-time format. Expected ISO 8601 format"
	case "rating":
		return "must be between 0 and 10"
	case "genre":
		return "must be between 1 and 8"
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

type FieldIssue struct {
	Field string
	Issue string
}

type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = fmt.Sprintf("%s: %s", issue.Field, issue.Issue)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any issue message contains substr.
func (e *ValidationError) Has(substr string) bool {
	for _, issue := range e.Issues {
		if strings.Contains(issue.Issue, substr) {
			return true
		}
	}

	return false
}

// Check validates s and turns validator errors into a *ValidationError.
func Check(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Issues: make([]FieldIssue, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Issues = append(verr.Issues, FieldIssue{
			Field: fe.Field(),
			Issue: ValidationMessage(fe),
		})
	}

	return verr
}
