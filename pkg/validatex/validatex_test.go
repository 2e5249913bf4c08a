package validatex_test

import (
	"errors"
	"testing"

	"github.com/Abraxas-365/applymint/pkg/validatex"
)

type sample struct {
	Name    string   `json:"name" validate:"required,min=3"`
	Website *string  `json:"website,omitempty" validate:"omitempty,url"`
	Tags    []string `json:"tags" validate:"dive,required"`
}

func TestStruct_Valid(t *testing.T) {
	site := "https://example.com"
	if err := validatex.Struct(sample{Name: "Acme", Website: &site, Tags: []string{"go"}}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestFields_UsesJSONNames(t *testing.T) {
	bad := "not a url"
	err := validatex.Struct(sample{Name: "ab", Website: &bad, Tags: []string{""}})
	if err == nil {
		t.Fatal("expected validation error")
	}

	fields := validatex.Fields(err)
	want := map[string]string{
		"name":    "min=3",
		"website": "url",
		"tags[0]": "required",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("fields[%q] = %q, want %q (all: %v)", k, fields[k], v, fields)
		}
	}
}

func TestFields_NonValidationError(t *testing.T) {
	fields := validatex.Fields(errors.New("boom"))
	if fields["_"] != "boom" {
		t.Errorf("expected passthrough under _, got %v", fields)
	}
	if len(validatex.Fields(nil)) != 0 {
		t.Error("nil error should give no fields")
	}
}
