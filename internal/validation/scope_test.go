package validation

import (
	"strings"
	"testing"
)

func TestValidScopeName_Valid(t *testing.T) {
	valids := []string{
		"a",
		"openid",
		"profile",
		"email:read",
		"grant_management_query",
		"a_b-c.d:scope2",
		// 64 chars (start/end alnum)
		strings.Repeat("a", 63) + "b",
	}
	for _, v := range valids {
		if !ValidScopeName(v) {
			t.Fatalf("expected valid: %q", v)
		}
	}
}

func TestValidScopeName_Invalid(t *testing.T) {
	invalids := []string{
		"",                      // empty
		":lead",                 // starts with non-alnum
		"trail:",                // ends with non-alnum
		"bad space",             // space
		"UPPER",                 // uppercase
		"semicolon;hack",        // semicolon
		strings.Repeat("a", 65), // > 64
	}
	for _, v := range invalids {
		if ValidScopeName(v) {
			t.Fatalf("expected invalid: %q", v)
		}
	}
}
