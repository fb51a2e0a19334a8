// Package schema defines the declarative model for an action's expected
// arguments: requiredness, type coercion, defaults, validators, munges,
// and nested sub-schemas. Schemas are checked for internal consistency
// once, at compile time; request data never reaches an unchecked schema.
package schema

// ValidateFunc is a predicate over the final (coerced, munged) value.
// A nil return means the value is acceptable; the error message is
// surfaced to the caller. It must be a PURE function.
type ValidateFunc func(value any) error

// MungeFunc is a post-coercion, pre-validation normalization transform.
// It is assumed not to fail; it must be a PURE function.
type MungeFunc func(value any) any

// Arg declares one expected argument of an action.
type Arg struct {
	// Name is the key looked up in the raw parameter map.
	// Must be unique within its owning schema.
	Name string `yaml:"name"`

	// Required arguments must be present in the raw map.
	// A required argument must not carry a default.
	Required bool `yaml:"required,omitempty"`

	// Type is the coercion tag. Empty means no coercion; the raw
	// value is passed through unchanged.
	Type string `yaml:"type,omitempty"`

	// Default is used when an optional argument is absent.
	// It is coerced and validated once, at compile time.
	Default any `yaml:"default,omitempty"`

	// Constraints are declarative validation rules, compiled into the
	// validator chain ahead of Validate.
	Constraints []Constraint `yaml:"constraints,omitempty"`

	// Munges names registered normalization transforms, applied in
	// order after coercion and before validation.
	Munges []string `yaml:"munge,omitempty"`

	// Validate is an arbitrary predicate for Go-declared schemas.
	// It runs after Constraints.
	Validate ValidateFunc `yaml:"-"`

	// Munge is an arbitrary transform for Go-declared schemas.
	// It runs after the named Munges.
	Munge MungeFunc `yaml:"-"`

	// Args declares the members of a hash-typed argument. When set,
	// Type must be empty and the raw value must be a nested map.
	Args []Arg `yaml:"args,omitempty"`
}

// IsHash reports whether the argument expects a nested map.
func (a Arg) IsHash() bool {
	return len(a.Args) > 0
}

// Schema is an ordered collection of argument declarations for one
// named action, plus its error-reporting mode.
type Schema struct {
	// Action is the name the host uses to select this schema.
	Action string `yaml:"action"`

	// Args are evaluated in declaration order. Order has no semantic
	// effect but is preserved for reporting.
	Args []Arg `yaml:"args"`

	// CollectErrors switches evaluation from raise-on-first-error
	// (the default) to accumulate-all-errors.
	CollectErrors bool `yaml:"collect_errors,omitempty"`
}

// RaiseOnError reports whether the first data error should abort the
// request instead of being accumulated.
func (s Schema) RaiseOnError() bool {
	return !s.CollectErrors
}
