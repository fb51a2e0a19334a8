package schema

import "fmt"

// Definition error kinds, reported at compile time. These are
// programmer mistakes and are fatal to startup.
const (
	DefDuplicateArgument   = "duplicate_argument"
	DefRequiredWithDefault = "required_with_default"
	DefDefaultType         = "default_type"
	DefDefaultValidation   = "default_validation"
	DefUnknownType         = "unknown_type"
	DefUnknownMunge        = "unknown_munge"
	DefBadConstraint       = "bad_constraint"
	DefHashWithType        = "hash_with_type"
	DefBadName             = "bad_name"
)

// Data error kinds, reported per argument at evaluation time.
const (
	ErrMissingRequired = "missing_required"
	ErrCoercion        = "coercion"
	ErrValidation      = "validation"
)

// DefinitionError reports a schema that is internally inconsistent.
// It is raised during compilation, before any request data is seen.
type DefinitionError struct {
	Action string
	Arg    string // dotted path for nested args
	Kind   string
	Msg    string
}

func (e *DefinitionError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("schema %q: %s: %s", e.Action, e.Kind, e.Msg)
	}
	return fmt.Sprintf("schema %q: argument %q: %s: %s", e.Action, e.Arg, e.Kind, e.Msg)
}

// FieldError is one data-time validation failure, scoped to an
// argument path (dot-qualified for nested hashes).
type FieldError struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// InvalidError aborts a request when a raise-mode schema rejects its
// input. It carries the first accumulated failure.
type InvalidError struct {
	Action string
	First  FieldError
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("action %q: invalid parameters: %s", e.Action, e.First.Error())
}
