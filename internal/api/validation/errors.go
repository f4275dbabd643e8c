package validation

import "strings"

// Location names the part of the request a field came from.
type Location string

const (
	LocationBody   Location = "body"
	LocationQuery  Location = "query"
	LocationParams Location = "params"
)

type FieldError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// Errors is the union of field errors across every evaluated source.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether a field error exists for field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// merge appends rule failures, skipping fields that already failed decoding.
func merge(decoded, rules Errors) Errors {
	for _, fe := range rules {
		if !decoded.Has(fe.Field) {
			decoded = append(decoded, fe)
		}
	}
	return decoded
}
