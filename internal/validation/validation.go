package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// PhonePattern accepts an optional leading "+" then at least ten digits, spaces or hyphens.
var PhonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)

// FieldErrors maps a field name to a display-ready message.
type FieldErrors map[string]string

// Messages holds the display message for each field; fields without one get a generic message.
type Messages map[string]string

var (
	once     sync.Once
	instance *validator.Validate
)

// Default returns the shared validator with the custom rules registered.
func Default() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return PhonePattern.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Struct validates s and converts failures into per-field messages. A nil map means valid.
// Errors other than validation failures (for instance a non-struct argument) are returned as is.
func Struct(s any, messages Messages) (FieldErrors, error) {
	err := Default().Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		if msg, ok := messages[name]; ok {
			fields[name] = msg
			continue
		}
		fields[name] = "Invalid " + strings.ReplaceAll(name, "_", " ")
	}
	return fields, nil
}
