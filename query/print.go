package query

import "strings"

// Print renders an AST back to query text. Re-parsing the result yields
// an AST semantically equivalent to n under the grammar — Print always
// emits an explicit constraint type rather than relying on carry-forward,
// so round-tripping never depends on term order.
func Print(n Node) string {
	return printOrPosition(n)
}

func printOrPosition(n Node) string {
	if or, ok := n.(Or); ok {
		parts := make([]string, len(or.Children))
		for i, c := range or.Children {
			parts[i] = printAndPosition(c)
		}
		return strings.Join(parts, " OR ")
	}
	return printAndPosition(n)
}

func printAndPosition(n Node) string {
	if and, ok := n.(And); ok {
		if len(and.Children) == 0 {
			return ""
		}
		parts := make([]string, len(and.Children))
		for i, c := range and.Children {
			parts[i] = printTermPosition(c)
		}
		return strings.Join(parts, " AND ")
	}
	return printTermPosition(n)
}

func printTermPosition(n Node) string {
	switch v := n.(type) {
	case Or:
		return "(" + printOrPosition(v) + ")"
	case And:
		if len(v.Children) <= 1 {
			return printAndPosition(v)
		}
		return "(" + printAndPosition(v) + ")"
	case Not:
		return "NOT " + printTermPosition(v.Child)
	case BooleanLit:
		if v.Value {
			return "TRUE"
		}
		return "FALSE"
	case Constraint:
		return printConstraint(v)
	default:
		return ""
	}
}

func printConstraint(c Constraint) string {
	var sb strings.Builder
	sb.WriteString(c.Kind.String())
	sb.WriteByte(':')
	sb.WriteString(quoteLiteral(c.Value))
	if len(c.Properties) > 0 {
		sb.WriteByte('[')
		for i, p := range c.Properties {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(p.Key)
			sb.WriteByte('=')
			sb.WriteString(quoteLiteral(p.Value))
		}
		sb.WriteByte(']')
	}
	return sb.String()
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if isBreak(r) {
			return true
		}
	}
	switch strings.ToUpper(s) {
	case "AND", "OR", "NOT", "TRUE", "FALSE":
		return true
	}
	return false
}

func quoteLiteral(s string) string {
	if !needsQuoting(s) {
		return s
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}
