package schema

import (
	"fmt"
	"strings"
)

// Named munges addressable from YAML schema files. Munges normalize a
// coerced value before validation sees it; validators always observe
// the same value the action will consume.
var namedMunges = map[string]MungeFunc{
	"trim":            mungeString(strings.TrimSpace),
	"lower":           mungeString(strings.ToLower),
	"upper":           mungeString(strings.ToUpper),
	"collapse_spaces": mungeString(collapseSpaces),
}

// mungeString lifts a string transform into a MungeFunc that leaves
// non-string values untouched.
func mungeString(fn func(string) string) MungeFunc {
	return func(value any) any {
		if s, ok := value.(string); ok {
			return fn(s)
		}
		return value
	}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// lookupMunge resolves a named munge.
func lookupMunge(name string) (MungeFunc, error) {
	fn, ok := namedMunges[name]
	if !ok {
		return nil, fmt.Errorf("unknown munge %q", name)
	}
	return fn, nil
}
