package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/exprc/compiler"
	"github.com/slowlang/exprc/compiler/format"
	"github.com/slowlang/exprc/compiler/parse"
	"github.com/slowlang/exprc/compiler/scan"
)

func main() {
	tokensCmd := &cli.Command{
		Name:        "tokens",
		Description: "print tokens of the source file",
		Action:      tokensAct,
		Args:        cli.Args{},
	}

	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "print abstract syntax tree of the source file",
		Action:      parseAct,
		Args:        cli.Args{},
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "compile the source file into amd64 assembly",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", "out.s", "output assembly file"),
		},
	}

	app := &cli.Command{
		Name:        "exprc",
		Description: "exprc compiles arithmetic print statements into assembly",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("verbosity,v", "", "logger verbosity topics"),
		},
		Commands: []*cli.Command{
			tokensCmd,
			parseCmd,
			compileCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	tlog.DefaultLogger = tlog.New(tlog.NewConsoleWriter(os.Stderr, tlog.LstdFlags))

	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func tokensAct(c *cli.Command) error {
	name, err := sourceArg(c)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrap(err, "read file")
	}

	ts, err := scan.Tokens(text)

	for _, t := range ts {
		fmt.Printf("%d:%d\t%-10v %v\n", t.Line, t.Col, t.Kind, t)
	}

	if err != nil {
		return errors.Wrap(err, "scan %v", name)
	}

	return nil
}

func parseAct(c *cli.Command) error {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	name, err := sourceArg(c)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrap(err, "read file")
	}

	x, err := parse.Parse(ctx, text)
	if err != nil {
		return errors.Wrap(err, "parse %v", name)
	}

	b, err := format.Format(ctx, nil, x)
	if err != nil {
		return errors.Wrap(err, "format")
	}

	fmt.Printf("%s\n", b)

	return nil
}

func compileAct(c *cli.Command) error {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	name, err := sourceArg(c)
	if err != nil {
		return err
	}

	err = compiler.CompileFile(ctx, name, c.String("output"))
	if err != nil {
		return errors.Wrap(err, "compile %v", name)
	}

	return nil
}

func sourceArg(c *cli.Command) (string, error) {
	if len(c.Args) != 1 {
		return "", errors.New("expected exactly one source file, got %d args", len(c.Args))
	}

	return c.Args[0], nil
}
