package schema

import (
	"fmt"

	"github.com/artpar/paramgate/core/coerce"
)

// Compiled is the checked, frozen form of a Schema. Compilation is the
// config-time validation phase: it runs once at startup, touches no
// request data, and fails fatally on the first inconsistency found.
type Compiled struct {
	Action       string
	Args         []CompiledArg
	RaiseOnError bool
}

// CompiledArg is one checked argument declaration with its resolved
// coercer, munge chain, validator chain, and coerced default.
type CompiledArg struct {
	Name     string
	Required bool
	Type     coerce.Tag

	// HasDefault distinguishes "no default" from a nil default.
	HasDefault bool
	// Default is the coerced, validated default value.
	Default any

	// Nested is non-nil for hash arguments.
	Nested []CompiledArg

	// Declared is the original declaration, kept for introspection.
	Declared Arg

	coercer    coerce.Func
	munges     []MungeFunc
	validators []ValidateFunc
}

// CoerceValue converts a raw value through the declared coercion.
// Without a declared type the raw value passes through unchanged.
func (a *CompiledArg) CoerceValue(raw any) (any, error) {
	if a.coercer == nil {
		return raw, nil
	}
	return a.coercer(raw)
}

// ApplyMunges runs the munge chain over a coerced value.
func (a *CompiledArg) ApplyMunges(value any) any {
	for _, m := range a.munges {
		value = m(value)
	}
	return value
}

// RunValidators applies the validator chain to the munged value.
// The first failure wins.
func (a *CompiledArg) RunValidators(value any) error {
	for _, v := range a.validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// Compile checks a schema for internal consistency and resolves every
// declaration against the coercion registry. The returned Compiled is
// read-only for the remainder of the process lifetime.
func Compile(s Schema, reg *coerce.Registry) (*Compiled, error) {
	if !isValidIdentifier(s.Action) {
		return nil, &DefinitionError{
			Action: s.Action,
			Kind:   DefBadName,
			Msg:    fmt.Sprintf("action name %q is not a valid identifier", s.Action),
		}
	}

	args, err := compileArgs(s.Action, "", s.Args, reg)
	if err != nil {
		return nil, err
	}

	return &Compiled{
		Action:       s.Action,
		Args:         args,
		RaiseOnError: s.RaiseOnError(),
	}, nil
}

func compileArgs(action, prefix string, args []Arg, reg *coerce.Registry) ([]CompiledArg, error) {
	seen := make(map[string]bool, len(args))
	compiled := make([]CompiledArg, 0, len(args))

	for _, a := range args {
		path := joinPath(prefix, a.Name)

		if !isValidIdentifier(a.Name) {
			return nil, defErr(action, path, DefBadName,
				fmt.Sprintf("argument name %q is not a valid identifier", a.Name))
		}
		if seen[a.Name] {
			return nil, defErr(action, path, DefDuplicateArgument,
				"argument is declared more than once")
		}
		seen[a.Name] = true

		ca, err := compileArg(action, path, a, reg)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, ca)
	}

	return compiled, nil
}

func compileArg(action, path string, a Arg, reg *coerce.Registry) (CompiledArg, error) {
	ca := CompiledArg{
		Name:     a.Name,
		Required: a.Required,
		Type:     coerce.Tag(a.Type),
		Declared: a,
	}

	if a.Required && a.Default != nil {
		return ca, defErr(action, path, DefRequiredWithDefault,
			"required argument cannot have a default")
	}

	if a.IsHash() {
		if a.Type != "" {
			return ca, defErr(action, path, DefHashWithType,
				fmt.Sprintf("hash argument cannot declare type %q", a.Type))
		}
		if a.Default != nil {
			return ca, defErr(action, path, DefDefaultType,
				"hash argument cannot carry a default")
		}
		nested, err := compileArgs(action, path, a.Args, reg)
		if err != nil {
			return ca, err
		}
		ca.Nested = nested
		return ca, nil
	}

	if a.Type != "" {
		fn, ok := reg.Lookup(coerce.Tag(a.Type))
		if !ok {
			return ca, defErr(action, path, DefUnknownType,
				fmt.Sprintf("unknown type %q", a.Type))
		}
		ca.coercer = fn
	}

	for _, name := range a.Munges {
		fn, err := lookupMunge(name)
		if err != nil {
			return ca, defErr(action, path, DefUnknownMunge, err.Error())
		}
		ca.munges = append(ca.munges, fn)
	}
	if a.Munge != nil {
		ca.munges = append(ca.munges, a.Munge)
	}

	for _, c := range a.Constraints {
		fn, err := compileConstraint(c)
		if err != nil {
			return ca, defErr(action, path, DefBadConstraint, err.Error())
		}
		ca.validators = append(ca.validators, fn)
	}
	if a.Validate != nil {
		ca.validators = append(ca.validators, a.Validate)
	}

	if a.Default != nil {
		// The default is coerced and validated here, once; evaluation
		// uses it as-is. Munges do not apply: they are reserved for
		// values actually present in the request.
		def, err := ca.CoerceValue(a.Default)
		if err != nil {
			return ca, defErr(action, path, DefDefaultType,
				fmt.Sprintf("default %v: %v", a.Default, err))
		}
		if err := ca.RunValidators(def); err != nil {
			return ca, defErr(action, path, DefDefaultValidation,
				fmt.Sprintf("default %v: %v", a.Default, err))
		}
		ca.HasDefault = true
		ca.Default = def
	}

	return ca, nil
}

func defErr(action, arg, kind, msg string) *DefinitionError {
	return &DefinitionError{Action: action, Arg: arg, Kind: kind, Msg: msg}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// isValidIdentifier checks action and argument names.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if i == 0 {
			if !isLetter(c) && c != '_' {
				return false
			}
		} else {
			if !isLetter(c) && !isDigit(c) && c != '_' {
				return false
			}
		}
	}
	return true
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
