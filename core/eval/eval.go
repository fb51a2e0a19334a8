// Package eval is the data-time half of the validation protocol: it
// walks a compiled schema against one raw parameter map and produces a
// Result. Evaluation is pure and synchronous; it allocates a fresh
// Result per call and raises nothing itself. Raise-mode propagation is
// the registry's concern.
package eval

import (
	"github.com/artpar/paramgate/core/schema"
)

// Evaluate walks the schema's arguments in declaration order and
// coerces, munges, and validates the raw map. In raise mode the walk
// stops at the first failure; in collect mode every failure is
// accumulated and successfully processed values are kept.
func Evaluate(cs *schema.Compiled, raw map[string]any) schema.Result {
	res := schema.NewResult()
	evalArgs(cs.Args, raw, "", cs.RaiseOnError, &res, res.Values)
	return res
}

// evalArgs processes one nesting level. Errors are appended to res
// with dot-qualified paths; values land in the values map for this
// level. Returns true when a raise-mode walk must stop.
func evalArgs(args []schema.CompiledArg, raw map[string]any, prefix string, raise bool, res *schema.Result, values map[string]any) bool {
	for i := range args {
		a := &args[i]
		path := a.Name
		if prefix != "" {
			path = prefix + "." + a.Name
		}

		rawVal, present := raw[a.Name]
		if !present || rawVal == nil {
			if a.Required {
				res.AddError(path, schema.ErrMissingRequired, nil, "argument is required")
				if raise {
					return true
				}
				continue
			}
			// Optional and absent: the compile-time-checked default,
			// or no entry at all.
			if a.HasDefault {
				values[a.Name] = a.Default
			}
			continue
		}

		if a.Nested != nil {
			if evalHash(a, rawVal, path, raise, res, values) && raise {
				return true
			}
			continue
		}

		value, err := a.CoerceValue(rawVal)
		if err != nil {
			res.AddError(path, schema.ErrCoercion, rawVal, err.Error())
			if raise {
				return true
			}
			continue
		}

		value = a.ApplyMunges(value)

		if err := a.RunValidators(value); err != nil {
			res.AddError(path, schema.ErrValidation, value, err.Error())
			if raise {
				return true
			}
			continue
		}

		values[a.Name] = value
	}
	return false
}

// evalHash recurses into a present hash argument. The nested values
// are stored as a sub-map only when every nested member passed.
// Returns true when any error was recorded.
func evalHash(a *schema.CompiledArg, rawVal any, path string, raise bool, res *schema.Result, values map[string]any) bool {
	sub, ok := rawVal.(map[string]any)
	if !ok {
		res.AddError(path, schema.ErrCoercion, rawVal, "must be a map")
		return true
	}

	before := len(res.Errors)
	subValues := make(map[string]any)
	evalArgs(a.Nested, sub, path, raise, res, subValues)

	if len(res.Errors) > before {
		return true
	}
	values[a.Name] = subValues
	return false
}
