package schema

import (
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Enum is implemented by string enums that know their members.
type Enum interface {
	IsValid() bool
}

// validate is configured once here and only read afterwards; validator.Validate
// is safe for concurrent use after registration.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := jsonName(f)
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("enum", validEnum)
	_ = v.RegisterValidation("quota", validQuota)

	return v
}

func validEnum(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(Enum)
	return ok && e.IsValid()
}

// validQuota accepts base-10 integer strings that are >= 0. Trailing text,
// whitespace and fractions are rejected.
func validQuota(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return IsQuota(fl.Field().String())
}

// IsQuota reports whether s is a non-negative base-10 integer string.
func IsQuota(s string) bool {
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n >= 0
}
