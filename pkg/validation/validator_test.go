package validation

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Gin's binding engine validates the "binding" tag.
type onboardingPayload struct {
	Name           string `json:"name" binding:"required,notblank"`
	GraduationYear int    `json:"graduation_year" binding:"required,gradyear"`
	Link           string `json:"link" binding:"omitempty,httplink"`
	Consent        bool   `json:"consent" binding:"eq=true"`
}

func engine(t *testing.T) *validator.Validate {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("binding validator engine unavailable")
	}
	return v
}

func valid() onboardingPayload {
	return onboardingPayload{
		Name:           "Jane Doe",
		GraduationYear: 2019,
		Link:           "https://example.com/jane",
		Consent:        true,
	}
}

func TestValidPayloadPasses(t *testing.T) {
	v := engine(t)
	if err := v.Struct(valid()); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestNotBlankRejectsWhitespace(t *testing.T) {
	v := engine(t)

	p := valid()
	p.Name = "   "
	err := v.Struct(p)
	if err == nil {
		t.Fatal("whitespace-only name accepted")
	}
	details := ToDetails(err)
	if details["name"] != "must not be blank" {
		t.Fatalf("details = %v", details)
	}
}

func TestGradYearBounds(t *testing.T) {
	v := engine(t)

	p := valid()
	p.GraduationYear = 1850
	if v.Struct(p) == nil {
		t.Fatal("year 1850 accepted")
	}

	p.GraduationYear = time.Now().Year() + 11
	if v.Struct(p) == nil {
		t.Fatal("far-future year accepted")
	}

	p.GraduationYear = time.Now().Year()
	if err := v.Struct(p); err != nil {
		t.Fatalf("current year rejected: %v", err)
	}
	p.GraduationYear = MinGraduationYear
	if err := v.Struct(p); err != nil {
		t.Fatalf("minimum year rejected: %v", err)
	}
}

func TestHTTPLink(t *testing.T) {
	v := engine(t)

	p := valid()
	p.Link = "ftp://example.com"
	if v.Struct(p) == nil {
		t.Fatal("non-http scheme accepted")
	}

	p.Link = "javascript:alert(1)"
	if v.Struct(p) == nil {
		t.Fatal("javascript scheme accepted")
	}

	p.Link = ""
	if err := v.Struct(p); err != nil {
		t.Fatalf("optional empty link rejected: %v", err)
	}
}

func TestConsentRequired(t *testing.T) {
	v := engine(t)

	p := valid()
	p.Consent = false
	err := v.Struct(p)
	if err == nil {
		t.Fatal("unchecked consent accepted")
	}
	details := ToDetails(err)
	if details["consent"] != "must be accepted" {
		t.Fatalf("details = %v", details)
	}
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	v := engine(t)

	p := valid()
	p.GraduationYear = 0
	err := v.Struct(p)
	if err == nil {
		t.Fatal("zero year accepted")
	}
	details := ToDetails(err)
	if _, ok := details["graduation_year"]; !ok {
		t.Fatalf("expected json field name in details, got %v", details)
	}
}

func TestToDetailsNil(t *testing.T) {
	if ToDetails(nil) != nil {
		t.Fatal("nil error should produce nil details")
	}
}
