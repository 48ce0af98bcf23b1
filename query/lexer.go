package query

import (
	"strings"

	"github.com/TagStudioDev/TagStudio-sub002/liberr"
)

type tokenKind int

const (
	tokQLiteral tokenKind = iota
	tokULiteral
	tokConstraintType
	tokRBracketO
	tokRBracketC
	tokSBracketO
	tokSBracketC
	tokComma
	tokEquals
	tokEOF
)

type token struct {
	kind  tokenKind
	text  string // QLITERAL: unescaped content. ULITERAL/CONSTRAINTTYPE: raw word.
	start int
	end   int
}

// lexer produces tokens from query text one at a time.
type lexer struct {
	src []rune
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src)}
}

func isBreak(r rune) bool {
	switch r {
	case ':', ' ', '\t', '\n', '\r', '[', ']', '(', ')', '=', ',':
		return true
	}
	return false
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			l.pos++
			continue
		}
		break
	}
}

// next returns the next token in the stream.
func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, start: start, end: start}, nil
	}

	r := l.src[l.pos]
	switch r {
	case '(':
		l.pos++
		return token{kind: tokRBracketO, start: start, end: l.pos}, nil
	case ')':
		l.pos++
		return token{kind: tokRBracketC, start: start, end: l.pos}, nil
	case '[':
		l.pos++
		return token{kind: tokSBracketO, start: start, end: l.pos}, nil
	case ']':
		l.pos++
		return token{kind: tokSBracketC, start: start, end: l.pos}, nil
	case ',':
		l.pos++
		return token{kind: tokComma, start: start, end: l.pos}, nil
	case '=':
		l.pos++
		return token{kind: tokEquals, start: start, end: l.pos}, nil
	case '"', '\'':
		return l.quoted(r)
	}

	// Bare word. If immediately followed by ':' and it matches a known
	// constraint keyword, it's a CONSTRAINTTYPE; otherwise the ':' folds
	// into the ULITERAL instead of terminating it (e.g. a Windows path
	// "C:/Users/x", or a plural typo like "tags:cat") — mirroring the
	// original tokenizer's fallthrough. Never leave pos unadvanced: a
	// colon with no preceding keyword must still be consumed here, or
	// the next call starts on it and hangs.
	for l.pos < len(l.src) && !isBreak(l.src[l.pos]) {
		l.pos++
	}
	word := string(l.src[start:l.pos])
	if l.pos < len(l.src) && l.src[l.pos] == ':' {
		if _, ok := constraintKeywords[strings.ToLower(word)]; ok {
			l.pos++ // consume ':'
			return token{kind: tokConstraintType, text: word, start: start, end: l.pos}, nil
		}
		for l.pos < len(l.src) && (l.src[l.pos] == ':' || !isBreak(l.src[l.pos])) {
			l.pos++
		}
		word = string(l.src[start:l.pos])
	}
	return token{kind: tokULiteral, text: word, start: start, end: l.pos}, nil
}

// quoted consumes a QLITERAL starting at the opening quote rune q.
func (l *lexer) quoted(q rune) (token, error) {
	start := l.pos
	l.pos++ // skip opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token{}, &liberr.ParseError{Start: start, End: l.pos, Message: "unterminated quoted string"}
		}
		r := l.src[l.pos]
		if r == '\\' {
			l.pos++
			if l.pos >= len(l.src) {
				return token{}, &liberr.ParseError{Start: start, End: l.pos, Message: "unterminated escape in quoted string"}
			}
			switch l.src[l.pos] {
			case '\\', '"', '\'':
				sb.WriteRune(l.src[l.pos])
			default:
				sb.WriteRune('\\')
				sb.WriteRune(l.src[l.pos])
			}
			l.pos++
			continue
		}
		if r == q {
			l.pos++
			return token{kind: tokQLiteral, text: sb.String(), start: start, end: l.pos}, nil
		}
		sb.WriteRune(r)
		l.pos++
	}
}
