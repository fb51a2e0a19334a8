// Package coerce converts raw request values into typed values.
// Coercers are pure functions keyed by a type tag. The registry is
// populated before schemas are compiled and never mutated afterwards.
package coerce

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Tag identifies a registered coercion.
type Tag string

const (
	TagString Tag = "string"
	TagInt    Tag = "int"
	TagSymbol Tag = "symbol"
	TagBool   Tag = "bool"
)

// Symbol is an interned identifier value produced by the symbol coercion.
type Symbol string

// Func converts a raw value into its typed form.
// It must be pure: no I/O, no shared state.
type Func func(raw any) (any, error)

// Registry maps type tags to coercion functions.
type Registry struct {
	funcs map[Tag]Func
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{funcs: make(map[Tag]Func)}
}

// Builtin returns a registry pre-loaded with the built-in coercions.
func Builtin() *Registry {
	r := New()
	r.Register(TagString, coerceString)
	r.Register(TagInt, coerceInt)
	r.Register(TagSymbol, coerceSymbol)
	r.Register(TagBool, coerceBool)
	return r
}

// Register adds a coercion function under the given tag.
// Registering an existing tag replaces it; this is only legal before
// any schema referencing the registry has been compiled.
func (r *Registry) Register(tag Tag, fn Func) {
	r.funcs[tag] = fn
}

// Lookup returns the coercion function for a tag.
func (r *Registry) Lookup(tag Tag) (Func, bool) {
	fn, ok := r.funcs[tag]
	return fn, ok
}

// Coerce runs the tagged coercion against a raw value.
func (r *Registry) Coerce(tag Tag, raw any) (any, error) {
	fn, ok := r.funcs[tag]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", tag)
	}
	return fn(raw)
}

// Tags returns all registered tags, sorted for stable output.
func (r *Registry) Tags() []Tag {
	tags := make([]Tag, 0, len(r.funcs))
	for t := range r.funcs {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

func coerceString(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string, got %T", raw)
	}
	return s, nil
}

// coerceInt parses base-10 integers. An already-typed int passes
// through so that typed schema defaults check cleanly.
func coerceInt(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		if v == "" {
			return nil, fmt.Errorf("must be an integer, got empty string")
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("must be an integer, got %q", v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("must be an integer, got %T", raw)
	}
}

func coerceSymbol(raw any) (any, error) {
	switch v := raw.(type) {
	case Symbol:
		return v, nil
	case string:
		if v == "" {
			return nil, fmt.Errorf("must be a non-empty symbol")
		}
		return Symbol(v), nil
	default:
		return nil, fmt.Errorf("must be a symbol, got %T", raw)
	}
}

var boolTokens = map[string]bool{
	"true": true, "t": true, "1": true, "yes": true, "on": true,
	"false": false, "f": false, "0": false, "no": false, "off": false,
}

func coerceBool(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, ok := boolTokens[strings.ToLower(v)]
		if !ok {
			return nil, fmt.Errorf("must be a boolean token, got %q", v)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("must be a boolean, got %T", raw)
	}
}
