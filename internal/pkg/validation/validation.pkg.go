package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"transfer-storefront/internal/common/enum"
	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/helper"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	val       *validator.Validate
	setupOnce sync.Once
	setupErr  error

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperRe      = regexp.MustCompile(`[A-Z]`)
	lowerRe      = regexp.MustCompile(`[a-z]`)
	digitRe      = regexp.MustCompile(`[0-9]`)
	specialRe    = regexp.MustCompile(`[^a-zA-Z0-9]`)
	phoneRe      = regexp.MustCompile(`^\+?[0-9 ()\-]+$`)
)

var validationMessages = map[string]string{
	"e164":         "must be a e164 formatted phone number",
	"required":     "is required",
	"url":          "must be a valid URL",
	"datetime":     "must be a valid date-time format (2006-01-02T15:04:05Z07:00)",
	"number":       "must be a number",
	"oneof":        "must be one of the allowed values: %s",
	"email":        "must be a valid email address",
	"min":          "must be greater than or equal to %s",
	"max":          "must be less than or equal to %s",
	"len":          "must have the exact length of %s",
	"alpha":        "must contain only alphabetic characters",
	"alphanum":     "must contain only alphanumeric characters",
	"eqfield":      "must be equal to the value of the %s field",
	"nefield":      "must not be equal to the value of the %s field",
	"gt":           "must be greater than %s",
	"gte":          "must be greater than or equal to %s",
	"lt":           "must be less than %s",
	"lte":          "must be less than or equal to %s",
	"excludes":     "must not contain the value %s",
	"excludesall":  "must not contain any of the values: %s",
	"enum":         "must be one of the allowed enum values: %s",
	"stringToBool": "must be a boolean value",
	"password":     "must be at least 8 characters long and contain uppercase, lowercase, number, and special character",
	"phone":        "must be a valid phone number",
	"emailaddr":    "must be a valid email address",
	"decimal":      "must be a positive decimal amount",
}

// Setup builds the validator and registers the custom tags on gin's binding
// engine too. Later calls return the first result.
func Setup() error {
	setupOnce.Do(func() { setupErr = setup() })
	return setupErr
}

func setup() error {
	val = validator.New(validator.WithRequiredStructEnabled())

	if err := registerValidations(val); err != nil {
		return fmt.Errorf("failed to register custom validations: %w", err)
	}

	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := registerValidations(v); err != nil {
			return fmt.Errorf("failed to register custom validations in Gin engine: %w", err)
		}
	} else {
		return fmt.Errorf("failed to get validation engine")
	}

	return nil
}

func registerValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("enum", enum.ValidateEnum); err != nil {
		return fmt.Errorf("failed to register enum validation: %w", err)
	}
	if err := v.RegisterValidation("stringToBool", types.ValidateStringToBool); err != nil {
		return fmt.Errorf("failed to register stringToBool validation: %w", err)
	}
	if err := v.RegisterValidation("password", validatePassword); err != nil {
		return fmt.Errorf("failed to register password validation: %w", err)
	}
	if err := v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register emailaddr validation: %w", err)
	}
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return fmt.Errorf("failed to register phone validation: %w", err)
	}
	if err := v.RegisterValidation("decimal", validatePositiveDecimal); err != nil {
		return fmt.Errorf("failed to register decimal validation: %w", err)
	}
	return nil
}

// IsEmail reports whether s has a local part, an @ and a dotted domain.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// validatePhone accepts digits with the separators our masks produce and
// between 7 and 15 digits in total.
func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if !phoneRe.MatchString(phone) {
		return false
	}
	n := len(helper.OnlyDigits(phone))
	return n >= 7 && n <= 15
}

func validatePositiveDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && d.IsPositive()
}

// validatePassword requires at least 8 characters with an upper and lower
// case letter, a digit and a symbol.
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return len(password) >= 8 &&
		upperRe.MatchString(password) &&
		lowerRe.MatchString(password) &&
		digitRe.MatchString(password) &&
		specialRe.MatchString(password)
}

// FieldError describes one failed rule using the json field name.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error is returned by Validate when the payload breaks at least one rule.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "Validation failed: " + strings.Join(parts, ", ")
}

func Validate(payload interface{}) error {
	if val == nil {
		if err := Setup(); err != nil {
			return err
		}
	}
	err := val.Struct(payload)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(errs))}
	for _, e := range errs {
		out.Fields = append(out.Fields, FieldError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Message: messageFor(e),
		})
	}
	return out
}

func messageFor(e validator.FieldError) string {
	msg, ok := validationMessages[e.Tag()]
	if !ok {
		return "is invalid"
	}
	switch {
	case e.Tag() == "enum":
		return fmt.Sprintf(msg, e.Type())
	case strings.Contains(msg, "%s"):
		return fmt.Sprintf(msg, e.Param())
	}
	return msg
}
