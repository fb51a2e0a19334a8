package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Constraint is a declarative validation rule for one argument.
// Constraints are compiled into the argument's validator chain when
// the schema is compiled; a malformed constraint is a definition
// error, never a silent skip.
type Constraint struct {
	// Type is the constraint type. See ConstraintType constants.
	Type ConstraintType `yaml:"type" json:"type"`

	// Value is the constraint parameter (number, regex pattern, list).
	Value any `yaml:"value,omitempty" json:"value,omitempty"`

	// Message overrides the default error message.
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// ConstraintType identifies the type of constraint.
type ConstraintType string

const (
	// Numeric constraints
	ConstraintMin ConstraintType = "min" // minimum numeric value
	ConstraintMax ConstraintType = "max" // maximum numeric value

	// String constraints
	ConstraintMinLength ConstraintType = "min_length" // minimum string length
	ConstraintMaxLength ConstraintType = "max_length" // maximum string length
	ConstraintPattern   ConstraintType = "pattern"    // regex match
	ConstraintNotEmpty  ConstraintType = "not_empty"  // not empty/whitespace

	// Membership constraints
	ConstraintOneOf ConstraintType = "one_of" // value must be in list
)

// compileConstraint turns a declarative constraint into a validator.
// Returns an error when the constraint itself is malformed.
func compileConstraint(c Constraint) (ValidateFunc, error) {
	switch c.Type {
	case ConstraintMin:
		return compileMin(c)
	case ConstraintMax:
		return compileMax(c)
	case ConstraintMinLength:
		return compileMinLength(c)
	case ConstraintMaxLength:
		return compileMaxLength(c)
	case ConstraintPattern:
		return compilePattern(c)
	case ConstraintNotEmpty:
		return compileNotEmpty(c)
	case ConstraintOneOf:
		return compileOneOf(c)
	default:
		return nil, fmt.Errorf("unknown constraint type %q", c.Type)
	}
}

func compileMin(c Constraint) (ValidateFunc, error) {
	min, err := toFloat64(c.Value)
	if err != nil {
		return nil, fmt.Errorf("min: %w", err)
	}
	msg := c.Message
	if msg == "" {
		msg = fmt.Sprintf("must be at least %v", c.Value)
	}
	return func(value any) error {
		val, err := toFloat64(value)
		if err != nil {
			return fmt.Errorf("must be numeric")
		}
		if val < min {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}, nil
}

func compileMax(c Constraint) (ValidateFunc, error) {
	max, err := toFloat64(c.Value)
	if err != nil {
		return nil, fmt.Errorf("max: %w", err)
	}
	msg := c.Message
	if msg == "" {
		msg = fmt.Sprintf("must be at most %v", c.Value)
	}
	return func(value any) error {
		val, err := toFloat64(value)
		if err != nil {
			return fmt.Errorf("must be numeric")
		}
		if val > max {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}, nil
}

func compileMinLength(c Constraint) (ValidateFunc, error) {
	minLen, err := toInt(c.Value)
	if err != nil {
		return nil, fmt.Errorf("min_length: %w", err)
	}
	msg := c.Message
	if msg == "" {
		msg = fmt.Sprintf("must be at least %d characters", minLen)
	}
	return func(value any) error {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("must be a string")
		}
		if len(str) < minLen {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}, nil
}

func compileMaxLength(c Constraint) (ValidateFunc, error) {
	maxLen, err := toInt(c.Value)
	if err != nil {
		return nil, fmt.Errorf("max_length: %w", err)
	}
	msg := c.Message
	if msg == "" {
		msg = fmt.Sprintf("must be at most %d characters", maxLen)
	}
	return func(value any) error {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("must be a string")
		}
		if len(str) > maxLen {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}, nil
}

func compilePattern(c Constraint) (ValidateFunc, error) {
	pattern, ok := c.Value.(string)
	if !ok {
		return nil, fmt.Errorf("pattern: value must be a string, got %T", c.Value)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}
	msg := c.Message
	if msg == "" {
		msg = "does not match required pattern"
	}
	return func(value any) error {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("must be a string")
		}
		if !re.MatchString(str) {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}, nil
}

func compileNotEmpty(c Constraint) (ValidateFunc, error) {
	msg := c.Message
	if msg == "" {
		msg = "must not be empty"
	}
	return func(value any) error {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("must be a string")
		}
		if strings.TrimSpace(str) == "" {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}, nil
}

func compileOneOf(c Constraint) (ValidateFunc, error) {
	var allowed []string
	switch vals := c.Value.(type) {
	case []any:
		for _, v := range vals {
			allowed = append(allowed, fmt.Sprintf("%v", v))
		}
	case []string:
		allowed = append(allowed, vals...)
	default:
		return nil, fmt.Errorf("one_of: value must be a list, got %T", c.Value)
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("one_of: list must not be empty")
	}
	msg := c.Message
	if msg == "" {
		msg = fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))
	}
	return func(value any) error {
		str := fmt.Sprintf("%v", value)
		for _, a := range allowed {
			if a == str {
				return nil
			}
		}
		return fmt.Errorf("%s", msg)
	}, nil
}

// toFloat64 converts numeric constraint parameters and values.
func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to number", v)
	}
}

// toInt converts length constraint parameters.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}
