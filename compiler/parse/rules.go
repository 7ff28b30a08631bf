package parse

import (
	"github.com/slowlang/exprc/compiler/ast"
	"github.com/slowlang/exprc/compiler/token"
)

type (
	Precedence int

	// ParseFunc parses an expression part starting at p.Previous().
	// Infix functions take their left operand with p.PopLeft.
	ParseFunc func(p *Parser, canAssign bool) (ast.Node, error)

	Rule struct {
		Prefix ParseFunc
		Infix  ParseFunc
		Prec   Precedence
	}

	// Rules is a read-only table of parse rules.
	Rules struct {
		m map[token.Kind]Rule
	}
)

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecBitOr
	PrecBitAnd
	PrecUnary
	PrecCall
	PrecPrimary

	// PrecEnd is one above the highest level so Prec+1 is always valid.
	PrecEnd
)

var defaultRules = NewRules(map[token.Kind]Rule{
	token.LeftParen: {Prefix: Grouping, Prec: PrecCall},
	token.Plus:      {Infix: Binary, Prec: PrecTerm},
	token.Minus:     {Infix: Binary, Prec: PrecTerm},
	token.Star:      {Infix: Binary, Prec: PrecFactor},
	token.Slash:     {Infix: Binary, Prec: PrecFactor},
	token.Integer:   {Prefix: Number},
})

var binaryOps = map[token.Kind]ast.Op{
	token.Plus:  ast.OpAdd,
	token.Minus: ast.OpSub,
	token.Star:  ast.OpMul,
	token.Slash: ast.OpDiv,
}

// DefaultRules is the rule table of the language.
func DefaultRules() *Rules { return defaultRules }

// NewRules copies m into a new table.
// Kinds missing in m have no prefix, no infix and PrecNone.
func NewRules(m map[token.Kind]Rule) *Rules {
	r := &Rules{m: make(map[token.Kind]Rule, len(m))}

	for k, v := range m {
		r.m[k] = v
	}

	return r
}

func (r *Rules) Get(k token.Kind) Rule {
	return r.m[k]
}

func Binary(p *Parser, _ bool) (ast.Node, error) {
	optk := p.Previous()

	op, ok := binaryOps[optk.Kind]
	if !ok {
		return nil, newError(optk, "Unsupported binary operator.")
	}

	left := p.PopLeft()

	right, err := p.ParsePrecedence(p.rules.Get(optk.Kind).Prec + 1)
	if err != nil {
		return nil, err
	}

	return &ast.Binary{
		Op:    op,
		Left:  left,
		Right: right,
	}, nil
}

func Grouping(p *Parser, _ bool) (ast.Node, error) {
	x, err := p.Expression()
	if err != nil {
		return nil, err
	}

	err = p.Consume(token.RightParen, "Expect ')' after expression.")
	if err != nil {
		return nil, err
	}

	return x, nil
}

func Number(p *Parser, _ bool) (ast.Node, error) {
	return ast.Value{V: p.Previous().Value}, nil
}
