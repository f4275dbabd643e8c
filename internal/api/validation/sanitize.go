package validation

import (
	"html"
	"reflect"
	"strings"
)

type phase int

const (
	// preRules runs before rule evaluation: trim, lower.
	preRules phase = iota
	// postRules runs after rule evaluation: escape.
	postRules
)

// sanitize applies the `sanitize:"..."` operations of the given phase to every
// string or *string field of the struct pointed to by ptr.
func sanitize(ptr any, p phase) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("sanitize")
		if tag == "" {
			continue
		}
		f := v.Field(i)
		if !f.CanSet() {
			continue
		}
		switch {
		case f.Kind() == reflect.String:
			f.SetString(applyOps(f.String(), tag, p))
		case f.Kind() == reflect.Pointer && !f.IsNil() && f.Elem().Kind() == reflect.String:
			f.Elem().SetString(applyOps(f.Elem().String(), tag, p))
		}
	}
}

func applyOps(s, tag string, p phase) string {
	for _, op := range strings.Split(tag, ",") {
		switch strings.TrimSpace(op) {
		case "trim":
			if p == preRules {
				s = strings.TrimSpace(s)
			}
		case "lower":
			if p == preRules {
				s = strings.ToLower(s)
			}
		case "escape":
			if p == postRules {
				s = html.EscapeString(s)
			}
		}
	}
	return s
}
