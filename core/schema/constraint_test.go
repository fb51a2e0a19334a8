package schema

import "testing"

func compileOK(t *testing.T, c Constraint) ValidateFunc {
	t.Helper()
	fn, err := compileConstraint(c)
	if err != nil {
		t.Fatalf("compile constraint %v: %v", c, err)
	}
	return fn
}

func TestMinMax(t *testing.T) {
	min := compileOK(t, Constraint{Type: ConstraintMin, Value: 0})
	if err := min(5); err != nil {
		t.Errorf("5 >= 0 should pass: %v", err)
	}
	if err := min(0); err != nil {
		t.Errorf("boundary value should pass: %v", err)
	}
	if err := min(-1); err == nil {
		t.Error("-1 should fail min 0")
	}

	max := compileOK(t, Constraint{Type: ConstraintMax, Value: 10})
	if err := max(10); err != nil {
		t.Errorf("boundary value should pass: %v", err)
	}
	if err := max(11); err == nil {
		t.Error("11 should fail max 10")
	}
}

func TestLengthConstraints(t *testing.T) {
	minLen := compileOK(t, Constraint{Type: ConstraintMinLength, Value: 3})
	if err := minLen("abc"); err != nil {
		t.Errorf("len 3 should pass: %v", err)
	}
	if err := minLen("ab"); err == nil {
		t.Error("len 2 should fail min_length 3")
	}

	maxLen := compileOK(t, Constraint{Type: ConstraintMaxLength, Value: 3})
	if err := maxLen("abcd"); err == nil {
		t.Error("len 4 should fail max_length 3")
	}
}

func TestPattern(t *testing.T) {
	fn := compileOK(t, Constraint{Type: ConstraintPattern, Value: "^[A-Z]{3}-[0-9]{4}$"})
	if err := fn("ABC-1234"); err != nil {
		t.Errorf("matching value should pass: %v", err)
	}
	if err := fn("abc-1234"); err == nil {
		t.Error("non-matching value should fail")
	}

	if _, err := compileConstraint(Constraint{Type: ConstraintPattern, Value: "("}); err == nil {
		t.Error("invalid regex must be a compile error")
	}
	if _, err := compileConstraint(Constraint{Type: ConstraintPattern, Value: 5}); err == nil {
		t.Error("non-string pattern must be a compile error")
	}
}

func TestNotEmpty(t *testing.T) {
	fn := compileOK(t, Constraint{Type: ConstraintNotEmpty})
	if err := fn("x"); err != nil {
		t.Errorf("non-empty should pass: %v", err)
	}
	if err := fn("   "); err == nil {
		t.Error("whitespace should fail not_empty")
	}
}

func TestOneOf(t *testing.T) {
	fn := compileOK(t, Constraint{Type: ConstraintOneOf, Value: []any{"a", "b"}})
	if err := fn("a"); err != nil {
		t.Errorf("listed value should pass: %v", err)
	}
	if err := fn("c"); err == nil {
		t.Error("unlisted value should fail")
	}

	// Symbols compare by their string form.
	fn = compileOK(t, Constraint{Type: ConstraintOneOf, Value: []string{"member", "admin"}})
	if err := fn("member"); err != nil {
		t.Errorf("expected pass: %v", err)
	}

	if _, err := compileConstraint(Constraint{Type: ConstraintOneOf, Value: "a"}); err == nil {
		t.Error("scalar one_of value must be a compile error")
	}
	if _, err := compileConstraint(Constraint{Type: ConstraintOneOf, Value: []any{}}); err == nil {
		t.Error("empty one_of list must be a compile error")
	}
}

func TestCustomMessage(t *testing.T) {
	fn := compileOK(t, Constraint{Type: ConstraintMin, Value: 1, Message: "need at least one"})
	err := fn(0)
	if err == nil {
		t.Fatal("expected failure")
	}
	if err.Error() != "need at least one" {
		t.Errorf("expected custom message, got %q", err.Error())
	}
}

func TestUnknownConstraintType(t *testing.T) {
	if _, err := compileConstraint(Constraint{Type: "divisible_by", Value: 3}); err == nil {
		t.Error("unknown constraint type must be a compile error")
	}
}
