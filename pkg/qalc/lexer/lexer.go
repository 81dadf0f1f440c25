// Package lexer splits qalc source text into tokens.
//
// The lexer is pull-based: Open reads the first token, Current returns it
// without consuming it, and Pop advances one token at a time. Whitespace and
// comments (// to end of line, /* ... */ blocks) are skipped. Every token
// carries an ast.Location holding its lexeme, the text of its source line,
// its 1-based line and its 0-based rune column.
package lexer

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"qalc-hq/qalc/pkg/qalc/ast"
	"qalc-hq/qalc/pkg/qalc/errors"
)

// TokenType classifies a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdentifier
	TokenOperator
	TokenInteger
	TokenReal
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdentifier:
		return "identifier"
	case TokenOperator:
		return "operator"
	case TokenInteger:
		return "integer"
	case TokenReal:
		return "real"
	default:
		return "unknown"
	}
}

// Token is a lexeme with its classification and source location.
type Token struct {
	Type     TokenType
	Text     string
	Int      int     // Parsed value of an integer token
	Real     float64 // Parsed value of a real token
	Location ast.Location
}

// Is reports whether the token has the given type and text.
func (t Token) Is(typ TokenType, text string) bool {
	return t.Type == typ && t.Text == text
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	return t.Type.String() + "(" + strconv.Quote(t.Text) + ")"
}

// Lexer produces tokens from a source string.
type Lexer struct {
	src     []rune
	lines   []string
	pos     int
	line    int
	col     int
	current Token
	popped  int
	opened  bool
}

// New creates a lexer over src. Call Open before reading tokens.
func New(src string) *Lexer {
	return &Lexer{
		src:   []rune(src),
		lines: strings.Split(src, "\n"),
		line:  1,
	}
}

// Open reads the first token.
func (l *Lexer) Open() error {
	if l.opened {
		return nil
	}
	l.opened = true
	return l.advance()
}

// Current returns the current token without consuming it.
func (l *Lexer) Current() Token {
	return l.current
}

// Pop consumes the current token and reads the next one. At end of input the
// EOF token is kept.
func (l *Lexer) Pop() error {
	if !l.opened {
		return l.Open()
	}
	if l.current.Type == TokenEOF {
		return nil
	}
	l.popped++
	return l.advance()
}

// Consumed returns the number of tokens popped so far.
func (l *Lexer) Consumed() int {
	return l.popped
}

// Tokenize lexes the whole of src and returns its tokens, EOF included.
func Tokenize(src string) ([]Token, error) {
	l := New(src)
	if err := l.Open(); err != nil {
		return nil, err
	}
	var tokens []Token
	for {
		tok := l.Current()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		if err := l.Pop(); err != nil {
			return nil, err
		}
	}
}

func (l *Lexer) advance() error {
	if err := l.skipSpaceAndComments(); err != nil {
		return err
	}
	if l.pos >= len(l.src) {
		l.current = Token{Type: TokenEOF, Location: l.location("", l.line, l.col)}
		return nil
	}

	start, line, col := l.pos, l.line, l.col
	r := l.src[l.pos]

	switch {
	case isIdentStart(r):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.next()
		}
		text := string(l.src[start:l.pos])
		l.current = Token{Type: TokenIdentifier, Text: text, Location: l.location(text, line, col)}
		return nil

	case isDigit(r):
		return l.number(start, line, col)

	default:
		l.next()
		text := string(r)
		l.current = Token{Type: TokenOperator, Text: text, Location: l.location(text, line, col)}
		return nil
	}
}

// number lexes digits, an optional fractional part and an optional exponent.
// A number with a '.' or an exponent is real.
func (l *Lexer) number(start, line, col int) error {
	l.digits()
	isReal := false

	if l.peek() == '.' {
		isReal = true
		l.next()
		l.digits()
	}
	if r := l.peek(); r == 'e' || r == 'E' {
		isReal = true
		l.next()
		if r := l.peek(); r == '+' || r == '-' {
			l.next()
		}
		if !isDigit(l.peek()) {
			text := string(l.src[start:l.pos])
			return errors.Syntax(l.location(text, line, col), "Missing exponent digits")
		}
		l.digits()
	}

	text := string(l.src[start:l.pos])
	loc := l.location(text, line, col)

	if isReal {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsInf(f, 0) {
			return errors.Syntax(loc, "Invalid real number")
		}
		l.current = Token{Type: TokenReal, Text: text, Real: f, Location: loc}
		return nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return errors.Syntax(loc, "Integer out of range")
	}
	l.current = Token{Type: TokenInteger, Text: text, Int: n, Location: loc}
	return nil
}

func (l *Lexer) digits() {
	for isDigit(l.peek()) {
		l.next()
	}
}

func (l *Lexer) skipSpaceAndComments() error {
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case unicode.IsSpace(r):
			l.next()
		case r == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.next()
			}
		case r == '/' && l.peekAt(1) == '*':
			line, col := l.line, l.col
			l.next()
			l.next()
			for {
				if l.pos >= len(l.src) {
					return errors.Syntax(l.location("/*", line, col), "Unterminated comment")
				}
				if l.src[l.pos] == '*' && l.peekAt(1) == '/' {
					l.next()
					l.next()
					break
				}
				l.next()
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) next() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) location(text string, line, col int) ast.Location {
	lineText := ""
	if line-1 < len(l.lines) {
		lineText = strings.TrimRight(l.lines[line-1], "\r")
	}
	return ast.Location{Token: text, LineText: lineText, Line: line, Column: col}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || isDigit(r)
}
