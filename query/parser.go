package query

import (
	"fmt"
	"strings"

	"github.com/TagStudioDev/TagStudio-sub002/liberr"
)

// Parse compiles query text into an AST. An empty or all-whitespace
// string parses to EmptyQuery, which matches every entry.
func Parse(src string) (Node, error) {
	if strings.TrimSpace(src) == "" {
		return EmptyQuery, nil
	}

	p := &parser{lex: newLexer(src), lastKind: Tag}
	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.parseOrList()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, &liberr.ParseError{Start: p.cur.start, End: p.cur.end, Message: "unexpected trailing input"}
	}
	return node, nil
}

type parser struct {
	lex      *lexer
	cur      token
	lastKind ConstraintKind
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) isKeyword(kw string) bool {
	return p.cur.kind == tokULiteral && strings.EqualFold(p.cur.text, kw)
}

func (p *parser) parseOrList() (Node, error) {
	left, err := p.parseAndList()
	if err != nil {
		return nil, err
	}
	children := []Node{left}
	for p.isKeyword("OR") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAndList()
		if err != nil {
			return nil, err
		}
		children = append(children, right)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return Or{Children: children}, nil
}

func (p *parser) startsTerm() bool {
	if p.cur.kind == tokEOF || p.cur.kind == tokRBracketC {
		return false
	}
	if p.isKeyword("OR") {
		return false
	}
	return true
}

func (p *parser) parseAndList() (Node, error) {
	if !p.startsTerm() {
		return nil, &liberr.ParseError{Start: p.cur.start, End: p.cur.end, Message: "expected a term"}
	}
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	children := []Node{first}
	for p.startsTerm() {
		if p.isKeyword("AND") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if !p.startsTerm() {
				return nil, &liberr.ParseError{Start: p.cur.start, End: p.cur.end, Message: "expected a term after AND"}
			}
		}
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		children = append(children, t)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return And{Children: children}, nil
}

func (p *parser) parseTerm() (Node, error) {
	switch {
	case p.isKeyword("NOT"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		child, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if inner, ok := child.(Not); ok {
			return inner.Child, nil // NOT NOT x == x
		}
		return Not{Child: child}, nil

	case p.isKeyword("TRUE"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return BooleanLit{Value: true}, nil

	case p.isKeyword("FALSE"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return BooleanLit{Value: false}, nil

	case p.cur.kind == tokRBracketO:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOrList()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRBracketC {
			return nil, &liberr.ParseError{Start: p.cur.start, End: p.cur.end, Message: "expected ')'"}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return p.parseConstraint()
	}
}

func (p *parser) parseConstraint() (Node, error) {
	kind := p.lastKind
	if p.cur.kind == tokConstraintType {
		k, ok := constraintKeywords[strings.ToLower(p.cur.text)]
		if !ok {
			return nil, &liberr.ParseError{Start: p.cur.start, End: p.cur.end, Message: fmt.Sprintf("unknown constraint type %q", p.cur.text)}
		}
		kind = k
		p.lastKind = kind
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if p.cur.kind != tokQLiteral && p.cur.kind != tokULiteral {
		return nil, &liberr.ParseError{Start: p.cur.start, End: p.cur.end, Message: "expected a constraint value"}
	}
	value := p.cur.text
	if err := p.advance(); err != nil {
		return nil, err
	}

	var props []Property
	if p.cur.kind == tokSBracketO {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			prop, err := p.parseProperty()
			if err != nil {
				return nil, err
			}
			props = append(props, prop)
			if p.cur.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if p.cur.kind != tokSBracketC {
			return nil, &liberr.ParseError{Start: p.cur.start, End: p.cur.end, Message: "expected ']'"}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	return Constraint{Kind: kind, Value: value, Properties: props}, nil
}

func (p *parser) parseProperty() (Property, error) {
	if p.cur.kind != tokULiteral {
		return Property{}, &liberr.ParseError{Start: p.cur.start, End: p.cur.end, Message: "expected a property name"}
	}
	key := p.cur.text
	if err := p.advance(); err != nil {
		return Property{}, err
	}
	if p.cur.kind != tokEquals {
		return Property{}, &liberr.ParseError{Start: p.cur.start, End: p.cur.end, Message: "expected '='"}
	}
	if err := p.advance(); err != nil {
		return Property{}, err
	}
	if p.cur.kind != tokQLiteral && p.cur.kind != tokULiteral {
		return Property{}, &liberr.ParseError{Start: p.cur.start, End: p.cur.end, Message: "expected a property value"}
	}
	val := p.cur.text
	if err := p.advance(); err != nil {
		return Property{}, err
	}
	return Property{Key: key, Value: val}, nil
}
