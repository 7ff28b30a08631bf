package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/slowlang/exprc/compiler/ast"
)

const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"

// Format appends x as an s-expression.
// Blocks put each statement on its own line indented by a tab.
func Format(ctx context.Context, b []byte, x ast.Node) ([]byte, error) {
	return format(ctx, b, x, 0)
}

func format(ctx context.Context, b []byte, x ast.Node, d int) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.Block:
		return formatBlock(ctx, b, x, d)
	case *ast.Print:
		b = append(b, "(print "...)

		b, err = formatExpr(ctx, b, x.Expr)
		if err != nil {
			return nil, errors.Wrap(err, "print")
		}

		b = append(b, ')')

		return b, nil
	default:
		return formatExpr(ctx, b, x)
	}
}

func formatBlock(ctx context.Context, b []byte, x *ast.Block, d int) (_ []byte, err error) {
	b = append(b, "(block"...)

	for i, s := range x.Stmts {
		b = append(b, '\n')
		b = append(b, tabs[:d+1]...)

		b, err = format(ctx, b, s, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "stmt %d", i)
		}
	}

	b = append(b, ')')

	return b, nil
}

func formatExpr(ctx context.Context, b []byte, x ast.Node) (_ []byte, err error) {
	switch x := x.(type) {
	case ast.Value:
		b = hfmt.Appendf(b, "%d", x.V)
	case *ast.Binary:
		b = hfmt.Appendf(b, "(%v ", x.Op)

		b, err = formatExpr(ctx, b, x.Left)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = append(b, ' ')

		b, err = formatExpr(ctx, b, x.Right)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		b = append(b, ')')
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	return b, nil
}
