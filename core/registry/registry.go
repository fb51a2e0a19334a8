// Package registry stores compiled schemas keyed by action name.
// It has a two-phase lifecycle: a Builder accepts registrations during
// startup, then Freeze produces an immutable snapshot. Concurrent
// request-time reads need no locking because no writes occur after the
// freeze.
package registry

import (
	"fmt"
	"sort"

	"github.com/artpar/paramgate/core/coerce"
	"github.com/artpar/paramgate/core/eval"
	"github.com/artpar/paramgate/core/schema"
)

// Builder collects schema registrations during the initialization
// phase. Each registration is compiled eagerly; the first definition
// error rejects the whole registration.
type Builder struct {
	coercions *coerce.Registry
	schemas   map[string]*schema.Compiled
	order     []string
}

// NewBuilder creates a builder using the given coercion registry.
// A nil registry means the built-in coercions.
func NewBuilder(coercions *coerce.Registry) *Builder {
	if coercions == nil {
		coercions = coerce.Builtin()
	}
	return &Builder{
		coercions: coercions,
		schemas:   make(map[string]*schema.Compiled),
	}
}

// Register compiles and stores one action schema.
// Duplicate action names and definition errors reject the registration.
func (b *Builder) Register(s schema.Schema) error {
	if _, exists := b.schemas[s.Action]; exists {
		return fmt.Errorf("action %q already registered", s.Action)
	}

	cs, err := schema.Compile(s, b.coercions)
	if err != nil {
		return err
	}

	b.schemas[s.Action] = cs
	b.order = append(b.order, s.Action)
	return nil
}

// RegisterAll registers schemas in order, stopping at the first error.
func (b *Builder) RegisterAll(schemas []schema.Schema) error {
	for _, s := range schemas {
		if err := b.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// Freeze ends the initialization phase and returns the read-only
// registry. The builder must not be used afterwards.
func (b *Builder) Freeze() *Registry {
	schemas := make(map[string]*schema.Compiled, len(b.schemas))
	for name, cs := range b.schemas {
		schemas[name] = cs
	}
	b.schemas = nil
	return &Registry{schemas: schemas}
}

// Registry is the immutable serving-phase store of compiled schemas.
type Registry struct {
	schemas map[string]*schema.Compiled
}

// Get returns the compiled schema for an action.
func (r *Registry) Get(action string) (*schema.Compiled, bool) {
	cs, ok := r.schemas[action]
	return cs, ok
}

// Actions returns all registered action names, sorted.
func (r *Registry) Actions() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	return len(r.schemas)
}

// Bind evaluates the raw parameter map against the named action's
// schema. For a raise-mode schema an invalid result comes back with a
// non-nil *schema.InvalidError wrapping the first failure; the host is
// expected to abort the request with it. Collect-mode schemas always
// return a nil error and a Result whose Valid flag reports the
// outcome.
func (r *Registry) Bind(action string, raw map[string]any) (schema.Result, error) {
	cs, ok := r.schemas[action]
	if !ok {
		return schema.Result{}, fmt.Errorf("unknown action %q", action)
	}

	res := eval.Evaluate(cs, raw)
	if cs.RaiseOnError && !res.Valid {
		return res, &schema.InvalidError{Action: action, First: res.Errors[0]}
	}
	return res, nil
}
