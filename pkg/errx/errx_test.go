package errx_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Abraxas-365/applymint/pkg/errx"
)

var (
	testRegistry  = errx.NewRegistry("TEST")
	codeMissing   = testRegistry.Register("MISSING", errx.TypeNotFound, http.StatusNotFound, "Thing not found")
	codeDown      = testRegistry.Register("DOWN", errx.TypeUnavailable, 0, "Storage unavailable")
	codeForbidden = testRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Forbidden")
)

// ── Registry ───────────────────────────────────────────────────────────────

func TestRegister_QualifiesCode(t *testing.T) {
	if codeMissing != "TEST.MISSING" {
		t.Errorf("Register(MISSING) = %q, want %q", codeMissing, "TEST.MISSING")
	}
}

func TestRegister_DefaultsStatusFromType(t *testing.T) {
	e := testRegistry.New(codeDown)
	if e.HTTPStatus != http.StatusServiceUnavailable {
		t.Errorf("HTTPStatus = %d, want %d", e.HTTPStatus, http.StatusServiceUnavailable)
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	r := errx.NewRegistry("DUP")
	r.Register("X", errx.TypeInternal, 0, "x")
	defer func() {
		if recover() == nil {
			t.Error("second Register(X) should panic")
		}
	}()
	r.Register("X", errx.TypeInternal, 0, "x")
}

func TestNew_UnknownCode(t *testing.T) {
	e := testRegistry.New("TEST.NOPE")
	if e.Type != errx.TypeInternal {
		t.Errorf("Type = %s, want INTERNAL", e.Type)
	}
}

// ── Error values ───────────────────────────────────────────────────────────

func TestWithDetail_DoesNotMutateOriginal(t *testing.T) {
	base := testRegistry.New(codeMissing)
	withID := base.WithDetail("id", "42")

	if len(base.Details) != 0 {
		t.Errorf("base.Details = %v, want empty", base.Details)
	}
	if withID.Details["id"] != "42" {
		t.Errorf("Details[id] = %v, want 42", withID.Details["id"])
	}
}

func TestErrorsIs_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", testRegistry.New(codeMissing).WithDetail("id", "1"))
	if !errors.Is(err, testRegistry.New(codeMissing)) {
		t.Error("errors.Is should match on code")
	}
	if errors.Is(err, testRegistry.New(codeForbidden)) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestToHTTPResponse(t *testing.T) {
	resp := testRegistry.New(codeMissing).WithDetail("id", "7").ToHTTPResponse()
	if resp["code"] != codeMissing {
		t.Errorf("code = %v, want %v", resp["code"], codeMissing)
	}
	if resp["type"] != errx.TypeNotFound {
		t.Errorf("type = %v, want NOT_FOUND", resp["type"])
	}
	if _, ok := resp["details"]; !ok {
		t.Error("details should be present")
	}
}

// ── Wrap / classification ──────────────────────────────────────────────────

func TestWrap_Nil(t *testing.T) {
	if errx.Wrap(nil, "msg", errx.TypeInternal) != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrap_PreservesInnerClassification(t *testing.T) {
	inner := testRegistry.NewWithCause(codeDown, errors.New("dial tcp: refused"))
	wrapped := errx.Wrap(inner, "failed to search jobs", errx.TypeInternal)

	if wrapped.Type != errx.TypeUnavailable {
		t.Errorf("Type = %s, want UNAVAILABLE", wrapped.Type)
	}
	if wrapped.HTTPStatus != http.StatusServiceUnavailable {
		t.Errorf("HTTPStatus = %d, want 503", wrapped.HTTPStatus)
	}
	if !errx.IsCode(wrapped, codeDown) {
		t.Error("IsCode should see the inner code")
	}
}

func TestWrap_PlainError(t *testing.T) {
	wrapped := errx.Wrap(errors.New("boom"), "failed", errx.TypeInternal)
	if wrapped.Type != errx.TypeInternal || wrapped.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("got (%s, %d), want (INTERNAL, 500)", wrapped.Type, wrapped.HTTPStatus)
	}
}

func TestIsType(t *testing.T) {
	cases := []struct {
		name string
		err  error
		typ  errx.Type
		want bool
	}{
		{"direct", testRegistry.New(codeDown), errx.TypeUnavailable, true},
		{"fmt wrapped", fmt.Errorf("x: %w", testRegistry.New(codeDown)), errx.TypeUnavailable, true},
		{"other type", testRegistry.New(codeMissing), errx.TypeUnavailable, false},
		{"plain", errors.New("x"), errx.TypeInternal, false},
		{"nil", nil, errx.TypeInternal, false},
	}
	for _, c := range cases {
		if got := errx.IsType(c.err, c.typ); got != c.want {
			t.Errorf("%s: IsType = %v, want %v", c.name, got, c.want)
		}
	}
}
