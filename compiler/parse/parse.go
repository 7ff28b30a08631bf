package parse

import (
	"context"
	"fmt"

	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/slowlang/exprc/compiler/ast"
	"github.com/slowlang/exprc/compiler/scan"
	"github.com/slowlang/exprc/compiler/token"
)

type (
	Lexer interface {
		Scan() (token.Token, error)
	}

	Parser struct {
		l     Lexer
		rules *Rules

		prev token.Token
		cur  token.Token

		// pending is the rest of a split token, it goes before anything the Lexer has.
		pending token.Token

		lhs []ast.Node

		tr tlog.Span
	}

	Error struct {
		Line int
		Col  int
		Msg  string
	}
)

func Parse(ctx context.Context, text []byte) (ast.Node, error) {
	return New(scan.New(text), DefaultRules()).Parse(ctx)
}

func New(l Lexer, rules *Rules) *Parser {
	return &Parser{
		l:     l,
		rules: rules,
	}
}

// Parse reads the whole program as a Block.
func (p *Parser) Parse(ctx context.Context) (x ast.Node, err error) {
	p.tr = tlog.SpanFromContext(ctx)
	p.lhs = p.lhs[:0]

	err = p.advance()
	if err != nil {
		return nil, err
	}

	x, err = p.block()
	if err != nil {
		return nil, err
	}

	if !p.check(token.Eof) {
		return nil, newError(p.cur, "Expect end of input.")
	}

	return x, nil
}

func (p *Parser) Previous() token.Token { return p.prev }
func (p *Parser) Current() token.Token { return p.cur }

func (p *Parser) PushLeft(x ast.Node) {
	p.lhs = append(p.lhs, x)
}

func (p *Parser) PopLeft() (x ast.Node) {
	l := len(p.lhs) - 1

	x = p.lhs[l]
	p.lhs = p.lhs[:l]

	return x
}

func (p *Parser) Expression() (ast.Node, error) {
	return p.ParsePrecedence(PrecAssignment)
}

func (p *Parser) ParsePrecedence(minPrec Precedence) (x ast.Node, err error) {
	err = p.advance()
	if err != nil {
		return nil, err
	}

	canAssign := minPrec <= PrecAssignment

	prefix := p.rules.Get(p.prev.Kind).Prefix
	if prefix == nil {
		return nil, newError(p.prev, "Expected expression.")
	}

	x, err = prefix(p, canAssign)
	if err != nil {
		return nil, err
	}

	p.PushLeft(x)

	for minPrec <= p.rules.Get(p.cur.Kind).Prec {
		err = p.advance()
		if err != nil {
			return nil, err
		}

		infix := p.rules.Get(p.prev.Kind).Infix
		if infix == nil {
			return nil, newError(p.prev, "Expected operator.")
		}

		x, err = infix(p, canAssign)
		if err != nil {
			return nil, err
		}

		p.PushLeft(x)
	}

	if canAssign && p.check(token.Equal) {
		return nil, newError(p.cur, "Invalid assignment target.")
	}

	return p.PopLeft(), nil
}

// Consume takes the current token if it is of kind k.
// A two-character operator starting with k is split and its first half is taken.
func (p *Parser) Consume(k token.Kind, msg string) error {
	if !p.check(k) && !p.split(k) {
		return newError(p.cur, msg)
	}

	return p.advance()
}

func (p *Parser) block() (x ast.Node, err error) {
	braced, err := p.match(token.LeftBrace)
	if err != nil {
		return nil, err
	}

	b := &ast.Block{}

	for !(braced && p.check(token.RightBrace)) {
		eof, err := p.match(token.Eof)
		if err != nil {
			return nil, err
		}

		if eof {
			break
		}

		s, err := p.statement()
		if err != nil {
			return nil, err
		}

		b.Stmts = append(b.Stmts, s)
	}

	if braced {
		err = p.Consume(token.RightBrace, "Expect '}' after block.")
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (p *Parser) statement() (x ast.Node, err error) {
	isPrint, err := p.match(token.Print)
	if err != nil {
		return nil, err
	}

	x, err = p.Expression()
	if err != nil {
		return nil, err
	}

	err = p.Consume(token.Semicolon, "Expected ';' after expression.")
	if err != nil {
		return nil, err
	}

	if isPrint {
		x = &ast.Print{Expr: x}
	}

	return x, nil
}

func (p *Parser) advance() (err error) {
	p.prev = p.cur

	if p.pending.Kind != token.None {
		p.cur, p.pending = p.pending, token.Token{}
	} else {
		p.cur, err = p.l.Scan()
		if err != nil {
			return err
		}
	}

	if p.tr.If("next_token") {
		p.tr.Printw("next token", "prev", p.prev, "cur", p.cur, "from", loc.Callers(1, 3))
	}

	return nil
}

func (p *Parser) check(k token.Kind) bool {
	return p.cur.Kind == k
}

func (p *Parser) match(k token.Kind) (bool, error) {
	if !p.check(k) {
		return false, nil
	}

	return true, p.advance()
}

// split breaks the current token into two single-character ones
// if its first half is of kind k. The second half is queued to be the next token.
func (p *Parser) split(k token.Kind) bool {
	first, rest, ok := token.Split(p.cur.Kind)
	if !ok || first != k || p.pending.Kind != token.None {
		return false
	}

	p.pending = token.Single(rest, p.cur.Line, p.cur.Col+1)
	p.cur.Kind = first

	return true
}

func newError(t token.Token, msg string) *Error {
	return &Error{
		Line: t.Line,
		Col:  t.Col,
		Msg:  msg,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error (line: %d, column: %d): %s", e.Line, e.Col, e.Msg)
}
