package query

import "testing"

func roundTrip(t *testing.T, src string) {
	t.Helper()
	ast, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	rendered := Print(ast)
	ast2, err := Parse(rendered)
	if err != nil {
		t.Fatalf("Parse(render(%q)) = Parse(%q): %v", src, rendered, err)
	}
	if Print(ast2) != rendered {
		t.Fatalf("round trip not stable: %q -> %q -> %q", src, rendered, Print(ast2))
	}
}

func TestRoundTripLaw(t *testing.T) {
	for _, src := range []string{
		"",
		"red",
		"red blue",
		"red AND blue",
		"red OR blue",
		"(red OR blue) AND green",
		"NOT red",
		"NOT (red AND blue)",
		"NOT NOT red",
		"TRUE",
		"FALSE",
		`tag:"two words"`,
		`path:*.JPG`,
		`tag:red[weight="high",source=exif]`,
		"tag_id:42",
		"special:untagged",
	} {
		roundTrip(t, src)
	}
}

func TestPrintQuotesReservedWords(t *testing.T) {
	ast := Constraint{Kind: Tag, Value: "AND"}
	rendered := Print(ast)
	reparsed, err := Parse(rendered)
	if err != nil {
		t.Fatalf("Parse(%q): %v", rendered, err)
	}
	c, ok := reparsed.(Constraint)
	if !ok || c.Value != "AND" {
		t.Fatalf("reparsed = %#v, want Constraint{Value: \"AND\"}", reparsed)
	}
}
