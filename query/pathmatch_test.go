package query

import (
	"strings"
	"testing"
)

func TestCompilePathConstraintBranches(t *testing.T) {
	cases := []struct {
		name        string
		value       string
		wantClause  string
		wantArg     interface{}
	}{
		{"lower_nonglob_substring", "photo", "LIKE", "photo"},
		{"lower_glob", "*.jpg", "GLOB", "*.jpg"},
		{"mixedcase_glob", "*.JPG", "GLOB", "*.JPG"},
		{"mixedcase_nonglob_literal", "PHOTO", "GLOB", "*PHOTO*"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clause, args := compilePathConstraint(tc.value)
			if len(args) != 1 {
				t.Fatalf("args = %v, want exactly 1", args)
			}
			if args[0] != tc.wantArg {
				t.Fatalf("arg = %v, want %v", args[0], tc.wantArg)
			}
			if !strings.Contains(clause, tc.wantClause) {
				t.Fatalf("clause = %q, want it to contain %q", clause, tc.wantClause)
			}
		})
	}
}

func TestEscapeGlobLiteralProtectsWildcards(t *testing.T) {
	got := escapeGlobLiteral("a*b?c")
	want := "a[*]b[?]c"
	if got != want {
		t.Fatalf("escapeGlobLiteral = %q, want %q", got, want)
	}
}

func TestEscapeLikeProtectsWildcards(t *testing.T) {
	got := escapeLike("50%_off")
	want := `50\%\_off`
	if got != want {
		t.Fatalf("escapeLike = %q, want %q", got, want)
	}
}
