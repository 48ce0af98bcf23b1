package query

import "strings"

// compilePathConstraint implements the smart-case matching rules for a
// Path constraint value v, returning a SQL fragment referencing
// entries.path and its single positional argument.
func compilePathConstraint(v string) (string, []interface{}) {
	lower := v == strings.ToLower(v)
	glob := strings.HasPrefix(v, "*") || strings.HasSuffix(v, "*")

	switch {
	case lower && glob:
		return "lower(entries.path) GLOB lower(?)", []interface{}{v}
	case lower && !glob:
		return "lower(entries.path) LIKE '%' || lower(?) || '%' ESCAPE '\\'", []interface{}{escapeLike(v)}
	case !lower && glob:
		return "entries.path GLOB ?", []interface{}{v}
	default: // case-sensitive, non-glob: exact-case substring match
		return "entries.path GLOB ?", []interface{}{"*" + escapeGlobLiteral(v) + "*"}
	}
}

// escapeLike escapes LIKE metacharacters (% _ \) so v matches literally
// under ESCAPE '\'.
func escapeLike(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(v)
}

// escapeGlobLiteral escapes GLOB metacharacters (* ? [ ]) by wrapping each
// in a single-character class, since SQLite's GLOB has no ESCAPE clause.
func escapeGlobLiteral(v string) string {
	var sb strings.Builder
	for _, r := range v {
		switch r {
		case '*', '?', '[', ']':
			sb.WriteByte('[')
			sb.WriteRune(r)
			sb.WriteByte(']')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
