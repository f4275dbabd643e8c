// Package validation is the request validation pipeline: each route declares
// the request sources it expects, and the pipeline decodes, sanitizes and
// checks all of them before the handler runs.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/labstack/echo/v4"
)

// Normalizer is implemented by payloads that derive coerced values from their
// validated raw fields. Normalize only runs when the source had no errors.
type Normalizer interface {
	Normalize()
}

// Source decodes and checks one part of the request into a typed payload.
type Source interface {
	run(c echo.Context) (Errors, error)
}

type source[T any] struct {
	loc    Location
	key    string
	decode func(c echo.Context, ev *Validator, dst *T) Errors
}

// Body declares a JSON request body of type T.
func Body[T any]() Source {
	return source[T]{loc: LocationBody, key: keyFor[T](LocationBody), decode: decodeBody[T]}
}

// Query declares query-string parameters bound through `query` tags.
func Query[T any]() Source {
	return source[T]{loc: LocationQuery, key: keyFor[T](LocationQuery), decode: func(c echo.Context, _ *Validator, dst *T) Errors {
		if err := (&echo.DefaultBinder{}).BindQueryParams(c, dst); err != nil {
			return Errors{{Field: "query", Message: "Malformed query string"}}
		}
		return nil
	}}
}

// Params declares path parameters bound through `param` tags.
func Params[T any]() Source {
	return source[T]{loc: LocationParams, key: keyFor[T](LocationParams), decode: func(c echo.Context, _ *Validator, dst *T) Errors {
		if err := (&echo.DefaultBinder{}).BindPathParams(c, dst); err != nil {
			return Errors{{Field: "params", Message: "Malformed path parameters"}}
		}
		return nil
	}}
}

func (s source[T]) run(c echo.Context) (Errors, error) {
	ev, ok := c.Echo().Validator.(*Validator)
	if !ok {
		return nil, echo.ErrValidatorNotRegistered
	}

	var payload T
	errs := s.decode(c, ev, &payload)

	sanitize(&payload, preRules)
	if err := ev.Validate(&payload); err != nil {
		var rules Errors
		if !errors.As(err, &rules) {
			return nil, err
		}
		errs = merge(errs, rules)
	}
	sanitize(&payload, postRules)
	if n, ok := any(&payload).(Normalizer); ok && len(errs) == 0 {
		n.Normalize()
	}

	for i := range errs {
		errs[i].Location = s.loc
	}
	c.Set(s.key, payload)
	return errs, nil
}

// Validate returns route middleware that evaluates every source and responds
// 400 with the union of field errors when any of them fails. The handler only
// runs on fully valid input.
func Validate(sources ...Source) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var all Errors
			for _, s := range sources {
				errs, err := s.run(c)
				if err != nil {
					return err
				}
				all = append(all, errs...)
			}
			if len(all) > 0 {
				return all
			}
			return next(c)
		}
	}
}

// BodyOf returns the validated body stored by Validate.
func BodyOf[T any](c echo.Context) T { return payloadOf[T](c, LocationBody) }

// QueryOf returns the validated query stored by Validate.
func QueryOf[T any](c echo.Context) T { return payloadOf[T](c, LocationQuery) }

// ParamsOf returns the validated path parameters stored by Validate.
func ParamsOf[T any](c echo.Context) T { return payloadOf[T](c, LocationParams) }

func payloadOf[T any](c echo.Context, loc Location) T {
	v, _ := c.Get(keyFor[T](loc)).(T)
	return v
}

func keyFor[T any](loc Location) string {
	return fmt.Sprintf("validation.%s.%s", loc, reflect.TypeOf((*T)(nil)).Elem().String())
}

// decodeBody decodes each top-level field on its own so that every type
// mismatch is reported, not only the first one.
func decodeBody[T any](c echo.Context, ev *Validator, dst *T) Errors {
	req := c.Request()
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	var raw json.RawMessage
	if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return Errors{{Field: "body", Message: "Malformed JSON body"}}
	}

	v := reflect.ValueOf(dst).Elem()
	if v.Kind() != reflect.Struct {
		if err := json.Unmarshal(raw, dst); err != nil {
			return Errors{{Field: "body", Message: "Request body must be a JSON " + jsonKind(v.Type())}}
		}
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Errors{{Field: "body", Message: "Request body must be a JSON object"}}
	}

	var errs Errors
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := fieldName(f)
		if !f.IsExported() || name == "" {
			continue
		}
		value, ok := lookupField(fields, name)
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, v.Field(i).Addr().Interface()); err != nil {
			errs = append(errs, FieldError{
				Field:   name,
				Message: fmt.Sprintf("%s must be a %s", ev.label(dst, name), jsonKind(f.Type)),
			})
		}
	}
	return errs
}

// lookupField matches keys the way encoding/json does: exact first, then
// case-insensitively.
func lookupField(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if v, ok := fields[name]; ok {
		return v, true
	}
	for k, v := range fields {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	}
	return t.Kind().String()
}
