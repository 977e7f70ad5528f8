package validator

import (
	"strings"
	"testing"
)

func TestValidateRegister(t *testing.T) {
	cases := []struct {
		name      string
		username  string
		email     string
		password  string
		badFields []string
	}{
		{"valid", "alice", "alice@example.com", "secret1", nil},
		{"valid with underscore and dash", "dev_ops-1", "dev@example.com", "secret1", nil},
		{"all empty", "", "", "", []string{"username", "email", "password"}},
		{"username too short", "ab", "a@b.co", "secret1", []string{"username"}},
		{"username bad chars", "al ice!", "a@b.co", "secret1", []string{"username"}},
		{"username too long", strings.Repeat("a", 51), "a@b.co", "secret1", []string{"username"}},
		{"bad email", "alice", "not-an-email", "secret1", []string{"email"}},
		{"short password", "alice", "a@b.co", "12345", []string{"password"}},
		{"long password", "alice", "a@b.co", strings.Repeat("x", 129), []string{"password"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateRegister(tc.username, tc.email, tc.password)
			if len(tc.badFields) == 0 {
				if errs.HasErrors() {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if len(errs) != len(tc.badFields) {
				t.Fatalf("errors = %v, want fields %v", errs, tc.badFields)
			}
			for _, field := range tc.badFields {
				if _, ok := errs[field]; !ok {
					t.Errorf("missing error for field %q: %v", field, errs)
				}
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	if errs := ValidateEmail("ok@example.com"); errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if errs := ValidateEmail(""); !errs.HasErrors() {
		t.Fatal("empty email accepted")
	}
	if errs := ValidateEmail("nope"); !errs.HasErrors() {
		t.Fatal("malformed email accepted")
	}
}

func TestValidationErrorsDetails(t *testing.T) {
	errs := make(ValidationErrors)
	errs.Add("email", "Invalid email address")
	details := errs.Details()
	if details["email"] != "Invalid email address" {
		t.Fatalf("details = %v", details)
	}
}
