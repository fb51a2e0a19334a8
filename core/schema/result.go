package schema

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Result is the typed output of one evaluation: the coerced values,
// the failures, and a validity flag. It is freshly allocated per
// evaluation and owned by the request cycle.
type Result struct {
	Values map[string]any `json:"values"`
	Errors []FieldError   `json:"errors,omitempty"`
	Valid  bool           `json:"valid"`
}

// NewResult returns an empty, valid result.
func NewResult() Result {
	return Result{Values: make(map[string]any), Valid: true}
}

// AddError records a data-time failure for an argument path.
func (r *Result) AddError(path, kind string, value any, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, FieldError{
		Path:    path,
		Kind:    kind,
		Value:   value,
		Message: message,
	})
}

// Get returns the coerced value for an argument name.
// The second return is false when the argument produced no value
// (absent optional without default, or failed).
func (r Result) Get(name string) (any, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// Error returns a combined message for all failures.
func (r Result) Error() string {
	if r.Valid {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Decode maps the coerced values onto a caller-provided struct.
// Field matching follows mapstructure tags.
func (r Result) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "param",
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(r.Values); err != nil {
		return fmt.Errorf("decode values: %w", err)
	}
	return nil
}
