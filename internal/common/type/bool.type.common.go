package types

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateStringToBool accepts string fields that parse as a boolean.
func ValidateStringToBool(fl validator.FieldLevel) bool {
	_, err := strconv.ParseBool(strings.ToLower(fl.Field().String()))
	return err == nil
}
