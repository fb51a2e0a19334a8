package schema

import "testing"

func TestResultAddError(t *testing.T) {
	res := NewResult()
	if !res.Valid {
		t.Fatal("new result should be valid")
	}

	res.AddError("age", ErrCoercion, "abc", "must be an integer")
	if res.Valid {
		t.Error("result with errors should be invalid")
	}
	if len(res.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(res.Errors))
	}
	if res.Errors[0].Error() != "age: must be an integer" {
		t.Errorf("unexpected message: %q", res.Errors[0].Error())
	}
}

func TestResultGet(t *testing.T) {
	res := NewResult()
	res.Values["x"] = 5

	if v, ok := res.Get("x"); !ok || v != 5 {
		t.Errorf("expected (5, true), got (%v, %v)", v, ok)
	}
	if _, ok := res.Get("missing"); ok {
		t.Error("expected absence marker for missing value")
	}
}

func TestResultDecode(t *testing.T) {
	res := NewResult()
	res.Values["email"] = "a@b.c"
	res.Values["age"] = 30
	res.Values["address"] = map[string]any{"city": "Berlin"}

	var out struct {
		Email   string `param:"email"`
		Age     int    `param:"age"`
		Address struct {
			City string `param:"city"`
		} `param:"address"`
	}

	if err := res.Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Email != "a@b.c" || out.Age != 30 || out.Address.City != "Berlin" {
		t.Errorf("unexpected decode result: %+v", out)
	}
}

func TestResultCombinedError(t *testing.T) {
	res := NewResult()
	res.AddError("a", ErrMissingRequired, nil, "argument is required")
	res.AddError("b.c", ErrValidation, 0, "must be at least 1")

	want := "a: argument is required; b.c: must be at least 1"
	if res.Error() != want {
		t.Errorf("expected %q, got %q", want, res.Error())
	}
}
