// Package step reads and writes IFC models in the STEP physical file
// format (ISO 10303-21). It is the only place the exchange encoding is
// known; the rest of the tool works on the in-memory model graph.
package step

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokRef
	tokInt
	tokReal
	tokString
	tokEnum
	tokLParen
	tokRParen
	tokComma
	tokSemi
	tokEq
	tokDollar
	tokStar
)

type token struct {
	kind tokenKind
	text string
	num  float64
	ival int64
	line int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokRef:
		return "#" + t.text
	case tokEnum:
		return "." + t.text + "."
	case tokString:
		return "'" + t.text + "'"
	}
	return t.text
}

type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func (l *lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", l.line, fmt.Sprintf(format, args...))
}

func (l *lexer) tokens() ([]token, error) {
	var out []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if t.kind == tokEOF {
			return out, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", line: l.line}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", line: l.line}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, text: ",", line: l.line}, nil
	case c == ';':
		l.pos++
		return token{kind: tokSemi, text: ";", line: l.line}, nil
	case c == '=':
		l.pos++
		return token{kind: tokEq, text: "=", line: l.line}, nil
	case c == '$':
		l.pos++
		return token{kind: tokDollar, text: "$", line: l.line}, nil
	case c == '*':
		l.pos++
		return token{kind: tokStar, text: "*", line: l.line}, nil
	case c == '#':
		return l.lexRef()
	case c == '\'':
		return l.lexString()
	case c == '.':
		return l.lexEnum()
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return l.lexNumber()
	case unicode.IsLetter(rune(c)):
		return l.lexIdent()
	}
	return token{}, l.errorf("unexpected character %q", c)
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				l.pos = len(l.src)
				return
			}
			l.line += strings.Count(l.src[l.pos:l.pos+2+end+2], "\n")
			l.pos += 2 + end + 2
		default:
			return
		}
	}
}

func (l *lexer) lexRef() (token, error) {
	start := l.pos
	l.pos++ // '#'
	for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
		l.pos++
	}
	digits := l.src[start+1 : l.pos]
	if digits == "" {
		return token{}, l.errorf("malformed entity reference")
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return token{}, l.errorf("malformed entity reference #%s", digits)
	}
	return token{kind: tokRef, text: digits, ival: n, line: l.line}, nil
}

func (l *lexer) lexString() (token, error) {
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\'' {
			// '' is an escaped quote inside the string
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '\'' {
				sb.WriteByte('\'')
				l.pos += 2
				continue
			}
			l.pos++
			return token{kind: tokString, text: sb.String(), line: l.line}, nil
		}
		if c == '\n' {
			l.line++
		}
		sb.WriteByte(c)
		l.pos++
	}
	return token{}, l.errorf("unterminated string")
}

func (l *lexer) lexEnum() (token, error) {
	l.pos++ // opening dot
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '.' {
			text := l.src[start:l.pos]
			l.pos++
			if text == "" {
				return token{}, l.errorf("empty enumeration value")
			}
			return token{kind: tokEnum, text: text, line: l.line}, nil
		}
		if !isEnumChar(c) {
			break
		}
		l.pos++
	}
	return token{}, l.errorf("unterminated enumeration value")
}

func isEnumChar(c byte) bool {
	return c == '_' || c == '-' || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z')
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	if c := l.src[l.pos]; c == '-' || c == '+' {
		l.pos++
	}
	isReal := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c >= '0' && c <= '9' {
			l.pos++
			continue
		}
		if c == '.' {
			// A dot starting an enum never follows digits directly in
			// valid files, so a dot here always belongs to the number.
			isReal = true
			l.pos++
			continue
		}
		if c == 'E' || c == 'e' {
			isReal = true
			l.pos++
			if l.pos < len(l.src) && (l.src[l.pos] == '-' || l.src[l.pos] == '+') {
				l.pos++
			}
			continue
		}
		break
	}
	text := l.src[start:l.pos]
	if isReal {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, l.errorf("malformed real %q", text)
		}
		return token{kind: tokReal, text: text, num: f, line: l.line}, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token{}, l.errorf("malformed integer %q", text)
	}
	return token{kind: tokInt, text: text, ival: n, line: l.line}, nil
}

func (l *lexer) lexIdent() (token, error) {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '_' || c == '-' || (c >= '0' && c <= '9') ||
			(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			l.pos++
			continue
		}
		break
	}
	return token{kind: tokIdent, text: l.src[start:l.pos], line: l.line}, nil
}
