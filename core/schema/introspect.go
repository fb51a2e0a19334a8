package schema

// Introspection types expose registered schemas via the REST API so
// clients can discover actions, their arguments, and constraints.

// ActionListResponse is returned by GET /schemas.
type ActionListResponse struct {
	Actions []ActionSummary `json:"actions"`
	Count   int             `json:"count"`
}

// ActionSummary provides a brief overview of a registered action.
type ActionSummary struct {
	Action       string `json:"action"`
	Args         int    `json:"args"`
	RaiseOnError bool   `json:"raise_on_error"`
}

// ActionSchemaResponse is returned by GET /schemas/{action}.
type ActionSchemaResponse struct {
	Action       string      `json:"action"`
	RaiseOnError bool        `json:"raise_on_error"`
	Args         []ArgSchema `json:"args"`
}

// ArgSchema describes one argument declaration for introspection.
type ArgSchema struct {
	Name        string       `json:"name"`
	Required    bool         `json:"required"`
	Type        string       `json:"type,omitempty"`
	Default     any          `json:"default,omitempty"`
	Munges      []string     `json:"munge,omitempty"`
	Constraints []Constraint `json:"constraints,omitempty"`
	Args        []ArgSchema  `json:"args,omitempty"` // nested hash members

	// Opaque marks arguments whose validator or munge is a Go
	// function that cannot be rendered declaratively.
	Opaque bool `json:"opaque,omitempty"`
}

// Describe builds the introspection view of a compiled schema.
func Describe(cs *Compiled) ActionSchemaResponse {
	return ActionSchemaResponse{
		Action:       cs.Action,
		RaiseOnError: cs.RaiseOnError,
		Args:         describeArgs(cs.Args),
	}
}

// Summarize builds the list view of a compiled schema.
func Summarize(cs *Compiled) ActionSummary {
	return ActionSummary{
		Action:       cs.Action,
		Args:         len(cs.Args),
		RaiseOnError: cs.RaiseOnError,
	}
}

func describeArgs(args []CompiledArg) []ArgSchema {
	out := make([]ArgSchema, 0, len(args))
	for _, a := range args {
		as := ArgSchema{
			Name:        a.Name,
			Required:    a.Required,
			Type:        string(a.Type),
			Munges:      a.Declared.Munges,
			Constraints: a.Declared.Constraints,
			Opaque:      a.Declared.Validate != nil || a.Declared.Munge != nil,
		}
		if a.HasDefault {
			as.Default = a.Default
		}
		if a.Nested != nil {
			as.Args = describeArgs(a.Nested)
		}
		out = append(out, as)
	}
	return out
}
