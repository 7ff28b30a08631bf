package back

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/exprc/compiler/ast"
)

type (
	// Target is an architecture the Generator emits code for.
	// Arithmetic takes two live registers, frees one of them
	// and returns the one holding the result.
	Target interface {
		Preamble() error
		Postamble() error

		Load(v int64) (Reg, error)

		Add(l, r Reg) (Reg, error)
		Sub(l, r Reg) (Reg, error)
		Mul(l, r Reg) (Reg, error)
		Div(l, r Reg) (Reg, error)

		PrintReg(r Reg) error
		Free(r Reg) error
	}

	Generator struct {
		t Target
	}

	// Error is a code generation failure caused by the program.
	Error struct {
		Msg string
	}

	// InternalError is a broken compiler invariant.
	InternalError struct {
		Msg string
	}
)

func New(t Target) *Generator {
	return &Generator{t: t}
}

// Generate emits the whole program x.
func (g *Generator) Generate(ctx context.Context, x ast.Node) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "back: generate")
	defer tr.Finish("err", &err)

	err = g.t.Preamble()
	if err != nil {
		return errors.Wrap(err, "preamble")
	}

	err = g.stmt(ctx, x)
	if err != nil {
		return err
	}

	err = g.t.Postamble()
	if err != nil {
		return errors.Wrap(err, "postamble")
	}

	return nil
}

func (g *Generator) stmt(ctx context.Context, x ast.Node) (err error) {
	switch x := x.(type) {
	case *ast.Block:
		for i, s := range x.Stmts {
			err = g.stmt(ctx, s)
			if err != nil {
				return errors.Wrap(err, "stmt %d", i)
			}
		}
	case *ast.Print:
		r, err := g.expr(ctx, x.Expr)
		if err != nil {
			return errors.Wrap(err, "print")
		}

		err = g.t.PrintReg(r)
		if err != nil {
			return errors.Wrap(err, "print")
		}
	case ast.Value, *ast.Binary:
		r, err := g.expr(ctx, x)
		if err != nil {
			return err
		}

		err = g.t.Free(r)
		if err != nil {
			return err
		}
	default:
		return &InternalError{Msg: fmt.Sprintf("unsupported statement: %T", x)}
	}

	return nil
}

// expr evaluates the left operand first and keeps it live
// until the right one is ready.
func (g *Generator) expr(ctx context.Context, x ast.Node) (r Reg, err error) {
	switch x := x.(type) {
	case ast.Value:
		return g.t.Load(x.V)
	case *ast.Binary:
		l, err := g.expr(ctx, x.Left)
		if err != nil {
			return -1, errors.Wrap(err, "left")
		}

		r, err := g.expr(ctx, x.Right)
		if err != nil {
			return -1, errors.Wrap(err, "right")
		}

		if tr := tlog.SpanFromContext(ctx); tr.If("binop") {
			tr.Printw("binop", "op", x.Op, "l", l, "r", r)
		}

		switch x.Op {
		case ast.OpAdd:
			return g.t.Add(l, r)
		case ast.OpSub:
			return g.t.Sub(l, r)
		case ast.OpMul:
			return g.t.Mul(l, r)
		case ast.OpDiv:
			return g.t.Div(l, r)
		default:
			return -1, &Error{Msg: fmt.Sprintf("unsupported operator: %v", x.Op)}
		}
	default:
		return -1, &InternalError{Msg: fmt.Sprintf("unsupported expression: %T", x)}
	}
}

func (e *Error) Error() string {
	return "code generator: " + e.Msg
}

func (e *InternalError) Error() string {
	return "internal: " + e.Msg
}
