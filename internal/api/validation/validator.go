package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator so Echo can call c.Validate(req).
// Field errors are reported under the request-facing name (json, query or
// param tag) with a readable message.
type Validator struct {
	v      *validator.Validate
	labels sync.Map // reflect.Type -> map[string]string
}

// New returns a Validator ready to be assigned to echo.Echo.Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return &Validator{v: v}
}

// Validate satisfies the echo.Validator interface. Rule failures come back
// as Errors with no Location set.
func (ev *Validator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	labels := ev.labelsFor(reflect.TypeOf(i))
	out := make(Errors, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: message(fe, labelOf(labels, fe.Field())),
		})
	}
	return out
}

// label returns the display name of a request field of i.
func (ev *Validator) label(i any, field string) string {
	return labelOf(ev.labelsFor(reflect.TypeOf(i)), field)
}

func (ev *Validator) labelsFor(t reflect.Type) map[string]string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := ev.labels.Load(t); ok {
		return cached.(map[string]string)
	}

	labels := make(map[string]string)
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := fieldName(f)
			if name == "" {
				continue
			}
			if l := f.Tag.Get("label"); l != "" {
				labels[name] = l
			}
		}
	}
	ev.labels.Store(t, labels)
	return labels
}

func labelOf(labels map[string]string, field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// fieldName resolves the request-facing name of a struct field.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "query", "param"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// message converts a single FieldError into a human-readable message.
func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "number":
		return label + " must be a number"
	case "alpha":
		return label + " must be alphabetic"
	case "uuid", "uuid4":
		return label + " must be a valid UUID"
	case "oneof":
		opts := strings.Fields(fe.Param())
		if len(opts) == 2 {
			return fmt.Sprintf("%s must be either %s or %s", label, opts[0], opts[1])
		}
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(opts, ", "))
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, fe.Tag())
	}
}
