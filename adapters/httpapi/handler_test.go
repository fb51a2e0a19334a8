package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/artpar/paramgate/core/registry"
	"github.com/artpar/paramgate/core/schema"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()

	b := registry.NewBuilder(nil)
	err := b.RegisterAll([]schema.Schema{
		{
			Action: "create_user",
			Args: []schema.Arg{
				{Name: "email", Required: true, Type: "string", Munges: []string{"trim", "lower"}},
				{Name: "age", Type: "int", Default: 18},
			},
		},
		{
			Action:        "search",
			CollectErrors: true,
			Args: []schema.Arg{
				{Name: "query", Required: true, Type: "string"},
				{Name: "page", Type: "int", Default: 1},
			},
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	return New(b.Freeze(), zerolog.Nop(), nil)
}

func do(t *testing.T, h *Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, testHandler(t), "GET", "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestActionValid(t *testing.T) {
	rec := do(t, testHandler(t), "POST", "/actions/create_user", `{"email": "  A@B.C "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res schema.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Valid {
		t.Errorf("expected valid result: %v", res.Errors)
	}
	if res.Values["email"] != "a@b.c" {
		t.Errorf("expected munged email, got %v", res.Values["email"])
	}
	if res.Values["age"] != float64(18) { // JSON numbers decode as float64
		t.Errorf("expected defaulted age, got %v", res.Values["age"])
	}
}

func TestActionRaiseModeHidesDetails(t *testing.T) {
	rec := do(t, testHandler(t), "POST", "/actions/create_user", `{"age": "30"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body ErrorResponseBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "invalid_parameters" {
		t.Errorf("expected generic code, got %q", body.Error.Code)
	}
	// No partial values and no per-argument detail leak in raise mode.
	if strings.Contains(rec.Body.String(), "email") {
		t.Errorf("raise-mode response must not name arguments: %s", rec.Body.String())
	}
}

func TestActionCollectModeReturnsFullResult(t *testing.T) {
	rec := do(t, testHandler(t), "POST", "/actions/search", `{"page": "abc"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var res schema.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Valid {
		t.Error("expected invalid result")
	}
	if len(res.Errors) != 2 {
		t.Errorf("expected both failures reported, got %v", res.Errors)
	}
}

func TestActionQueryParams(t *testing.T) {
	rec := do(t, testHandler(t), "POST", "/actions/search?query=hello", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestActionUnknown(t *testing.T) {
	rec := do(t, testHandler(t), "POST", "/actions/nope", `{}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestActionBadBody(t *testing.T) {
	rec := do(t, testHandler(t), "POST", "/actions/search", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestListSchemas(t *testing.T) {
	rec := do(t, testHandler(t), "GET", "/schemas", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp schema.ActionListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected 2 actions, got %d", resp.Count)
	}
}

func TestGetSchema(t *testing.T) {
	rec := do(t, testHandler(t), "GET", "/schemas/create_user", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp schema.ActionSchemaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Action != "create_user" || len(resp.Args) != 2 {
		t.Errorf("unexpected schema: %+v", resp)
	}
	if !resp.Args[0].Required {
		t.Error("email should be reported required")
	}

	rec = do(t, testHandler(t), "GET", "/schemas/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	rec := do(t, testHandler(t), "GET", "/healthz", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}
}
