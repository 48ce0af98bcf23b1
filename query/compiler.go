package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/TagStudioDev/TagStudio-sub002/liberr"
	"github.com/TagStudioDev/TagStudio-sub002/pathutil"
	"github.com/TagStudioDev/TagStudio-sub002/tags"
)

// TagResolver is the subset of *tags.Resolver the compiler needs. Tests
// substitute a fake to avoid a real database.
type TagResolver interface {
	ResolveTagName(q string) ([]int64, error)
	Closure(tagID int64) ([]int64, error)
}

var _ TagResolver = (*tags.Resolver)(nil)

// Compiler translates a query AST into a SQL WHERE fragment over the
// entries table (and its joined tag/field tables).
type Compiler struct {
	resolver TagResolver
}

// NewCompiler builds a Compiler backed by resolver for tag name and
// closure lookups.
func NewCompiler(resolver TagResolver) *Compiler {
	return &Compiler{resolver: resolver}
}

// Compile returns a WHERE-clause fragment (without the "WHERE" keyword)
// and its positional arguments for n.
func (c *Compiler) Compile(n Node) (string, []interface{}, error) {
	if Empty(n) {
		return "1 = 1", nil, nil
	}
	return c.compileNode(n)
}

func (c *Compiler) compileNode(n Node) (string, []interface{}, error) {
	switch v := n.(type) {
	case Or:
		return c.compileOr(v.Children)
	case And:
		return c.compileAnd(v.Children)
	case Not:
		inner, args, err := c.compileNode(v.Child)
		if err != nil {
			return "", nil, err
		}
		return "NOT (" + inner + ")", args, nil
	case BooleanLit:
		if v.Value {
			return "1 = 1", nil, nil
		}
		return "1 = 0", nil, nil
	case Constraint:
		return c.compileConstraint(v)
	default:
		return "", nil, fmt.Errorf("query: unhandled AST node %T", n)
	}
}

// tagLiteralIDs resolves a Tag or TagID constraint to its raw (pre-closure)
// candidate ids. A Tag constraint with no match returns an empty (nil)
// slice; a TagID constraint always returns exactly one id.
func (c *Compiler) tagLiteralIDs(cons Constraint) ([]int64, error) {
	switch cons.Kind {
	case TagID:
		id, err := strconv.ParseInt(cons.Value, 10, 64)
		if err != nil {
			return nil, &liberr.ParseError{Message: fmt.Sprintf("invalid tag id %q", cons.Value)}
		}
		return []int64{id}, nil
	case Tag:
		return c.resolver.ResolveTagName(cons.Value)
	default:
		return nil, fmt.Errorf("query: tagLiteralIDs called on non-tag constraint kind %v", cons.Kind)
	}
}

// expandClosures returns the deduplicated union of the descendant closure
// of every id in raw.
func (c *Compiler) expandClosures(raw []int64) ([]int64, error) {
	seen := make(map[int64]bool)
	var out []int64
	for _, id := range raw {
		closure, err := c.resolver.Closure(id)
		if err != nil {
			return nil, err
		}
		for _, cid := range closure {
			if !seen[cid] {
				seen[cid] = true
				out = append(out, cid)
			}
		}
	}
	return out, nil
}

func isBareTagConstraint(n Node) (Constraint, bool) {
	c, ok := n.(Constraint)
	if !ok || len(c.Properties) > 0 {
		return Constraint{}, false
	}
	return c, c.Kind == Tag || c.Kind == TagID
}

func (c *Compiler) compileOr(children []Node) (string, []interface{}, error) {
	idSet := make(map[int64]bool)
	var otherExprs []string
	var args []interface{}

	for _, child := range children {
		if cons, ok := isBareTagConstraint(child); ok {
			raw, err := c.tagLiteralIDs(cons)
			if err != nil {
				return "", nil, err
			}
			if len(raw) == 0 {
				continue // no matching tag: contributes nothing to the union
			}
			expanded, err := c.expandClosures(raw)
			if err != nil {
				return "", nil, err
			}
			for _, id := range expanded {
				idSet[id] = true
			}
			continue
		}
		expr, childArgs, err := c.compileNode(child)
		if err != nil {
			return "", nil, err
		}
		otherExprs = append(otherExprs, expr)
		args = append(args, childArgs...)
	}

	var parts []string
	if len(idSet) > 0 {
		expr, tagArgs := entryHasAnyTagsSQL(idSet)
		parts = append(parts, expr)
		args = append(tagArgs, args...)
	}
	parts = append(parts, otherExprs...)
	if len(parts) == 0 {
		return "1 = 0", nil, nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args, nil
}

// compileAnd separates an AND's children into the division bucket (tag
// literals whose own closure is a single id, no descendants to expand)
// and everything else (ambiguous names, tags with descendants, and
// non-tag constraints), which are ANDed in as independent subpredicates.
// A literal with descendants is not folded into the division bucket: the
// bucket models "has all of exactly these ids", and a literal with
// descendants really means "has this tag or any descendant", which is an
// OR within itself and would corrupt the count.
func (c *Compiler) compileAnd(children []Node) (string, []interface{}, error) {
	divisionSet := make(map[int64]bool)
	var otherExprs []string
	var args []interface{}

	for _, child := range children {
		if cons, ok := isBareTagConstraint(child); ok {
			raw, err := c.tagLiteralIDs(cons)
			if err != nil {
				return "", nil, err
			}
			if len(raw) == 0 {
				return "1 = 0", nil, nil // an unsatisfiable literal makes the whole AND false
			}
			if len(raw) == 1 {
				closure, err := c.resolver.Closure(raw[0])
				if err != nil {
					return "", nil, err
				}
				if len(closure) == 1 {
					divisionSet[closure[0]] = true
					continue
				}
				expr, tagArgs := entryHasAnyTagsSQL(idSetFrom(closure))
				otherExprs = append(otherExprs, expr)
				args = append(args, tagArgs...)
				continue
			}
			// ambiguous name: entry must bear at least one of the matching
			// tags (or their descendants)
			expanded, err := c.expandClosures(raw)
			if err != nil {
				return "", nil, err
			}
			expr, tagArgs := entryHasAnyTagsSQL(idSetFrom(expanded))
			otherExprs = append(otherExprs, expr)
			args = append(args, tagArgs...)
			continue
		}
		expr, childArgs, err := c.compileNode(child)
		if err != nil {
			return "", nil, err
		}
		otherExprs = append(otherExprs, expr)
		args = append(args, childArgs...)
	}

	var parts []string
	var allArgs []interface{}
	if len(divisionSet) > 0 {
		expr, tagArgs := entryHasAllTagsSQL(divisionSet)
		parts = append(parts, expr)
		allArgs = append(allArgs, tagArgs...)
	}
	parts = append(parts, otherExprs...)
	allArgs = append(allArgs, args...)
	if len(parts) == 0 {
		return "1 = 1", nil, nil
	}
	return "(" + strings.Join(parts, " AND ") + ")", allArgs, nil
}

func idSetFrom(ids []int64) map[int64]bool {
	m := make(map[int64]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func entryHasAnyTagsSQL(ids map[int64]bool) (string, []interface{}) {
	placeholders, args := inClause(ids)
	return fmt.Sprintf(
		"entries.id IN (SELECT entry_id FROM entry_tags WHERE tag_id IN (%s))",
		placeholders,
	), args
}

func entryHasAllTagsSQL(ids map[int64]bool) (string, []interface{}) {
	placeholders, args := inClause(ids)
	args = append(args, len(ids))
	return fmt.Sprintf(
		"entries.id IN (SELECT entry_id FROM entry_tags WHERE tag_id IN (%s) GROUP BY entry_id HAVING COUNT(DISTINCT tag_id) = ?)",
		placeholders,
	), args
}

func inClause(ids map[int64]bool) (string, []interface{}) {
	args := make([]interface{}, 0, len(ids))
	placeholders := make([]string, 0, len(ids))
	for id := range ids {
		args = append(args, id)
		placeholders = append(placeholders, "?")
	}
	return strings.Join(placeholders, ","), args
}

func (c *Compiler) compileConstraint(cons Constraint) (string, []interface{}, error) {
	if len(cons.Properties) > 0 {
		return "", nil, &liberr.NotImplemented{Feature: "constraint properties"}
	}

	switch cons.Kind {
	case Tag, TagID:
		raw, err := c.tagLiteralIDs(cons)
		if err != nil {
			return "", nil, err
		}
		if len(raw) == 0 {
			return "1 = 0", nil, nil
		}
		expanded, err := c.expandClosures(raw)
		if err != nil {
			return "", nil, err
		}
		expr, args := entryHasAnyTagsSQL(idSetFrom(expanded))
		return expr, args, nil

	case Path:
		expr, args := compilePathConstraint(cons.Value)
		return expr, args, nil

	case MediaType:
		cat, ok := pathutil.CategoryByName(cons.Value)
		if !ok {
			return "1 = 0", nil, nil
		}
		exts := make([]string, 0, len(cat.Extensions))
		for e := range cat.Extensions {
			exts = append(exts, e)
		}
		placeholders := strings.Repeat("?,", len(exts))
		placeholders = strings.TrimSuffix(placeholders, ",")
		args := make([]interface{}, len(exts))
		for i, e := range exts {
			args[i] = e
		}
		return fmt.Sprintf("entries.suffix IN (%s)", placeholders), args, nil

	case FileType:
		class := pathutil.FiletypeEquivalencyClass(cons.Value)
		placeholders := strings.Repeat("?,", len(class))
		placeholders = strings.TrimSuffix(placeholders, ",")
		args := make([]interface{}, len(class))
		for i, e := range class {
			args[i] = e
		}
		return fmt.Sprintf("entries.suffix IN (%s)", placeholders), args, nil

	case Special:
		if strings.EqualFold(cons.Value, "untagged") {
			return "entries.id NOT IN (SELECT entry_id FROM entry_tags)", nil, nil
		}
		return "", nil, &liberr.NotImplemented{Feature: fmt.Sprintf("special:%s", cons.Value)}

	default:
		return "", nil, fmt.Errorf("query: unknown constraint kind %v", cons.Kind)
	}
}
