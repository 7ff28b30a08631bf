package scan

import (
	"fmt"
	"strconv"

	"github.com/slowlang/exprc/compiler/token"
	"github.com/slowlang/exprc/compiler/trie"
)

type (
	Lexer struct {
		b []byte
		i int

		line, col int

		kw  *trie.Checker
		num []byte
	}

	Error struct {
		Line int
		Col  int
		Msg  string
	}
)

var keywords = trie.Keywords()

func New(text []byte) *Lexer {
	return &Lexer{
		b:    text,
		line: 1,
		kw:   keywords.Checker(),
	}
}

// Tokens scans the whole text including the final Eof.
func Tokens(text []byte) (ts []token.Token, err error) {
	l := New(text)

	for {
		t, err := l.Scan()
		if err != nil {
			return ts, err
		}

		ts = append(ts, t)

		if t.Kind == token.Eof {
			return ts, nil
		}
	}
}

// Position is the line and column of the last consumed character.
func (l *Lexer) Position() (line, col int) {
	return l.line, l.col
}

// Scan returns the next token.
// Eof is returned at the end of text and on every call after that.
func (l *Lexer) Scan() (t token.Token, err error) {
	for {
		if l.i == len(l.b) {
			return token.Single(token.Eof, l.line, l.col), nil
		}

		c := l.next()
		line, col := l.line, l.col

		switch c {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			continue
		case '(':
			return token.Single(token.LeftParen, line, col), nil
		case ')':
			return token.Single(token.RightParen, line, col), nil
		case '{':
			return token.Single(token.LeftBrace, line, col), nil
		case '}':
			return token.Single(token.RightBrace, line, col), nil
		case '[':
			return token.Single(token.LeftSquare, line, col), nil
		case ']':
			return token.Single(token.RightSquare, line, col), nil
		case ',':
			return token.Single(token.Comma, line, col), nil
		case '.':
			return token.Single(token.Dot, line, col), nil
		case ';':
			return token.Single(token.Semicolon, line, col), nil
		case '+':
			return l.orEqual(token.Plus, token.PlusEqual, line, col), nil
		case '-':
			return l.orEqual(token.Minus, token.MinusEqual, line, col), nil
		case '%':
			return l.orEqual(token.Percent, token.PercentEqual, line, col), nil
		case '&':
			return l.orEqual(token.And, token.AndEqual, line, col), nil
		case '|':
			return l.orEqual(token.Or, token.OrEqual, line, col), nil
		case '^':
			return l.orEqual(token.Cap, token.CapEqual, line, col), nil
		case '~':
			return l.orEqual(token.Wave, token.WaveEqual, line, col), nil
		case '=':
			return l.orEqual(token.Equal, token.EqualEqual, line, col), nil
		case '!':
			return l.orEqual(token.Not, token.NotEqual, line, col), nil
		case '*':
			if l.match('/') {
				return t, newError(line, col, "unrecognized end of comment '*/'")
			}

			return l.orEqual(token.Star, token.StarEqual, line, col), nil
		case '/':
			switch {
			case l.match('/'):
				l.skipLine()
				continue
			case l.match('*'):
				l.skipBlock()
				continue
			}

			return l.orEqual(token.Slash, token.SlashEqual, line, col), nil
		case '<':
			switch {
			case l.match('='):
				return token.Single(token.LessEqual, line, col), nil
			case l.match('<'):
				return token.Single(token.LeftArrow, line, col), nil
			}

			return token.Single(token.Less, line, col), nil
		case '>':
			switch {
			case l.match('='):
				return token.Single(token.GreaterEqual, line, col), nil
			case l.match('>'):
				return token.Single(token.RightArrow, line, col), nil
			}

			return token.Single(token.Greater, line, col), nil
		case '\'':
			return l.quoted(token.Char, c, line, col)
		case '"':
			return l.quoted(token.String, c, line, col)
		}

		switch {
		case isAlpha(c) || c == '_':
			return l.word(c, line, col), nil
		case isDigit(c):
			return l.number(c, line, col)
		}

		return t, newError(line, col, fmt.Sprintf("unrecognized character: %q", c))
	}
}

func (l *Lexer) word(c byte, line, col int) token.Token {
	l.kw.Update(c)

	for l.i < len(l.b) && isIdent(l.b[l.i]) {
		l.kw.Update(l.next())
	}

	text := l.kw.Text()

	if k := l.kw.Check(); k.IsKeyword() {
		return token.Single(k, line, col)
	}

	return token.Ident(text, line, col)
}

func (l *Lexer) number(c byte, line, col int) (t token.Token, err error) {
	l.num = append(l.num[:0], c)

	for l.i < len(l.b) && (isIdent(l.b[l.i]) || l.b[l.i] == '.') {
		l.num = append(l.num, l.next())
	}

	v, err := strconv.ParseInt(string(l.num), 10, 64)
	if err != nil {
		return t, newError(line, col, fmt.Sprintf("invalid integer literal: %q", l.num))
	}

	return token.Number(token.Integer, v, line, col), nil
}

// quoted reads a char or string literal up to the closing quote.
// The text is kept raw, escape sequences are not interpreted.
func (l *Lexer) quoted(k token.Kind, q byte, line, col int) (t token.Token, err error) {
	st := l.i
	esc := false

	for {
		if l.i == len(l.b) {
			return t, newError(line, col, "unterminated literal")
		}

		c := l.b[l.i]

		switch {
		case c == '\n':
			return t, newError(l.line, l.col, "no newline between quotes")
		case c == q && !esc:
			l.next()

			return token.Text(k, string(l.b[st:l.i-1]), line, col), nil
		case c == '\\':
			esc = !esc
		default:
			esc = false
		}

		l.next()
	}
}

func (l *Lexer) orEqual(single, double token.Kind, line, col int) token.Token {
	if l.match('=') {
		return token.Single(double, line, col)
	}

	return token.Single(single, line, col)
}

func (l *Lexer) skipLine() {
	for l.i < len(l.b) {
		if l.next() == '\n' {
			return
		}
	}
}

func (l *Lexer) skipBlock() {
	for l.i < len(l.b) {
		if l.next() == '*' && l.match('/') {
			return
		}
	}
}

func (l *Lexer) match(c byte) bool {
	if l.i == len(l.b) || l.b[l.i] != c {
		return false
	}

	l.next()

	return true
}

func (l *Lexer) next() (c byte) {
	c = l.b[l.i]
	l.i++

	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	return c
}

func newError(line, col int, msg string) *Error {
	return &Error{
		Line: line,
		Col:  col,
		Msg:  msg,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("scan error (line: %d, column: %d): %s", e.Line, e.Col, e.Msg)
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdent(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_'
}
