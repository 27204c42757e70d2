package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct tags and returns a field→tag map of failures,
// or nil when the value is valid. Used outside gin's binding path (the
// seeder, service-level checks).
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

// Var validates a single value against a tag expression, e.g.
// Var(lang, "bcp47_language_tag").
func Var(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}
