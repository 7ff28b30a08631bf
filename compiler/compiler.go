package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/exprc/compiler/back"
	"github.com/slowlang/exprc/compiler/format"
	"github.com/slowlang/exprc/compiler/output"
	"github.com/slowlang/exprc/compiler/parse"
)

// CompileFile compiles src into assembly file dst.
// dst is created or truncated.
func CompileFile(ctx context.Context, src, dst string) (err error) {
	text, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", src)

	f, err := output.Create(dst)
	if err != nil {
		return errors.Wrap(err, "create output")
	}

	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			err = errors.Wrap(e, "close output")
		}
	}()

	return Compile(ctx, src, text, f)
}

// Compile compiles text and writes assembly into w.
func Compile(ctx context.Context, name string, text []byte, w back.Output) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "name", name)
	defer tr.Finish("err", &err)

	x, err := parse.Parse(ctx, text)
	if err != nil {
		return errors.Wrap(err, "parse text")
	}

	if tr.If("dump_ast") {
		b, err := format.Format(ctx, nil, x)
		tr.Printw("abstract syntax tree", "ast", b, "err", err)
	}

	a := back.NewAMD64(w)

	err = back.New(a).Generate(ctx, x)
	if err != nil {
		return errors.Wrap(err, "generate")
	}

	tr.V("regs").Printw("registers left", "regs", a.Registers())

	return nil
}
