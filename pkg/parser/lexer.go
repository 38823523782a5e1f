package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type tokenKind string

const (
	tokEOF     tokenKind = "EOF"
	tokIdent   tokenKind = "identifier"
	tokInt     tokenKind = "integer literal"
	tokFloat   tokenKind = "float literal"
	tokChar    tokenKind = "char literal"
	tokString  tokenKind = "string literal"
	tokKeyword tokenKind = "keyword"
	tokPunct   tokenKind = "punctuation"
)

var keywords = map[string]bool{
	"int":    true,
	"float":  true,
	"bool":   true,
	"char":   true,
	"string": true,
	"void":   true,
	"if":     true,
	"else":   true,
	"while":  true,
	"for":    true,
	"sharp":  true,
	"return": true,
	"true":   true,
	"false":  true,
	"print":  true,
}

// Longest operators first so that maximal munch falls out of a linear scan.
var punctuators = []string{
	"++", "--", "+=", "-=", "*=", "/=", "%=", "==", "!=", "<=", ">=", "&&", "||",
	"+", "-", "*", "/", "%", "=", "<", ">", "!",
	"(", ")", "{", "}", "[", "]", ";", ",",
}

type token struct {
	kind   tokenKind
	text   string
	line   int
	column int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokString:
		return fmt.Sprintf("%q", t.text)
	case tokChar:
		return fmt.Sprintf("'%s'", t.text)
	default:
		return t.text
	}
}

type lexer struct {
	src    string
	pos    int
	line   int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, column: 1}
}

// tokenize scans the whole source, ending with a single EOF token.
func tokenize(src string) ([]token, error) {
	lx := newLexer(src)
	var out []token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.kind == tokEOF {
			return out, nil
		}
	}
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else if l.src[l.pos]&0xC0 != 0x80 {
			l.column++
		}
		l.pos++
	}
}

func (l *lexer) errorf(line, column int, format string, args ...any) error {
	return &SyntaxError{Line: line, Column: column, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) skipTrivia() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f':
			l.advance(1)
		case c == '/' && l.peek(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance(1)
			}
		case c == '/' && l.peek(1) == '*':
			line, col := l.line, l.column
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				return l.errorf(line, col, "unterminated block comment")
			}
			l.advance(end + 4)
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) next() (token, error) {
	if err := l.skipTrivia(); err != nil {
		return token{}, err
	}
	line, col := l.line, l.column
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: line, column: col}, nil
	}
	c := l.src[l.pos]
	switch {
	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.advance(1)
		}
		word := l.src[start:l.pos]
		if keywords[word] {
			return token{kind: tokKeyword, text: word, line: line, column: col}, nil
		}
		return token{kind: tokIdent, text: word, line: line, column: col}, nil
	case isDigit(c):
		return l.number(line, col), nil
	case c == '"':
		return l.stringLiteral(line, col)
	case c == '\'':
		return l.charLiteral(line, col)
	}
	for _, p := range punctuators {
		if strings.HasPrefix(l.src[l.pos:], p) {
			l.advance(len(p))
			return token{kind: tokPunct, text: p, line: line, column: col}, nil
		}
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return token{}, l.errorf(line, col, "unexpected character %q", r)
}

// number reads d+ or d+.d+; a trailing dot without digits stays outside the
// literal.
func (l *lexer) number(line, col int) token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.advance(1)
	}
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.advance(1)
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.advance(1)
		}
		return token{kind: tokFloat, text: l.src[start:l.pos], line: line, column: col}
	}
	return token{kind: tokInt, text: l.src[start:l.pos], line: line, column: col}
}

func (l *lexer) stringLiteral(line, col int) (token, error) {
	l.advance(1)
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token{}, l.errorf(line, col, "unterminated string literal")
		}
		c := l.src[l.pos]
		if c == '"' {
			l.advance(1)
			return token{kind: tokString, text: b.String(), line: line, column: col}, nil
		}
		if c == '\n' {
			return token{}, l.errorf(line, col, "unterminated string literal")
		}
		if c == '\\' {
			r, err := l.escape(line, col)
			if err != nil {
				return token{}, err
			}
			b.WriteRune(r)
			continue
		}
		r, w := utf8.DecodeRuneInString(l.src[l.pos:])
		b.WriteRune(r)
		l.advance(w)
	}
}

func (l *lexer) charLiteral(line, col int) (token, error) {
	l.advance(1)
	if l.pos >= len(l.src) || l.src[l.pos] == '\'' || l.src[l.pos] == '\n' {
		return token{}, l.errorf(line, col, "empty char literal")
	}
	var r rune
	if l.src[l.pos] == '\\' {
		esc, err := l.escape(line, col)
		if err != nil {
			return token{}, err
		}
		r = esc
	} else {
		dec, w := utf8.DecodeRuneInString(l.src[l.pos:])
		r = dec
		l.advance(w)
	}
	if l.peek(0) != '\'' {
		return token{}, l.errorf(line, col, "char literal must hold exactly one character")
	}
	l.advance(1)
	return token{kind: tokChar, text: string(r), line: line, column: col}, nil
}

// escape consumes a backslash sequence starting at the current position.
func (l *lexer) escape(line, col int) (rune, error) {
	l.advance(1)
	if l.pos >= len(l.src) {
		return 0, l.errorf(line, col, "unterminated escape sequence")
	}
	c := l.src[l.pos]
	l.advance(1)
	switch c {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case '0':
		return 0, nil
	case '\\', '"', '\'':
		return rune(c), nil
	default:
		return 0, l.errorf(line, col, "unknown escape sequence \\%c", c)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
