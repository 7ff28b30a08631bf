package back

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/slowlang/exprc/compiler/ast"
	"github.com/slowlang/exprc/compiler/output"
	"github.com/slowlang/exprc/compiler/parse"
)

type (
	brokenNode struct{ ast.Value }

	failOutput struct {
		after int
	}
)

func (w *failOutput) Writeln(line string) error {
	return w.Printf("%s", line)
}

func (w *failOutput) Printf(format string, args ...any) error {
	if w.after == 0 {
		return &output.Error{Err: errors.New("disk is full")}
	}

	w.after--

	return nil
}

func compile(t *testing.T, src string) (string, *AMD64, error) {
	t.Helper()

	ctx := context.Background()

	x, err := parse.Parse(ctx, []byte(src))
	require.NoError(t, err)

	var buf bytes.Buffer

	a := NewAMD64(output.New(&buf))

	err = New(a).Generate(ctx, x)

	return buf.String(), a, err
}

func mainBody(asm string) string {
	_, body, _ := strings.Cut(asm, "main:\n\tpushq\t%rbp\n\tmovq\t%rsp, %rbp\n")
	body, _, _ = strings.Cut(body, "\tmovl\t$0, %eax\n\tpopq\t%rbp\n\tret\n")

	return body
}

func TestSmoke(t *testing.T) {
	asm, a, err := compile(t, "print 1+2*3;")
	require.NoError(t, err)

	assert.Equal(t, `.text
.LC0:
	.string	"%d\n"
printint:
	pushq	%rbp
	movq	%rsp, %rbp
	subq	$16, %rsp
	movl	%edi, -4(%rbp)
	movl	-4(%rbp), %eax
	movl	%eax, %esi
	leaq	.LC0(%rip), %rdi
	movl	$0, %eax
	call	printf@PLT
	nop
	leave
	ret

.globl	main
.type	main, @function
main:
	pushq	%rbp
	movq	%rsp, %rbp
	movq	$1, %r8
	movq	$2, %r9
	movq	$3, %r10
	imulq	%r9, %r10
	addq	%r8, %r10
	movq	%r10, %rdi
	call	printint
	movl	$0, %eax
	popq	%rbp
	ret
`, asm)

	assert.Equal(t, 0, a.Registers().Used())

	out, err := run(asm)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, out)
}

func TestDivision(t *testing.T) {
	asm, _, err := compile(t, "print 7/2;")
	require.NoError(t, err)

	assert.Equal(t, "\tmovq\t$7, %r8\n"+
		"\tmovq\t$2, %r9\n"+
		"\tmovq\t%r8, %rax\n"+
		"\tcqo\n"+
		"\tidivq\t%r9\n"+
		"\tmovq\t%rax, %r8\n"+
		"\tmovq\t%r8, %rdi\n"+
		"\tcall\tprintint\n", mainBody(asm))

	out, err := run(asm)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, out)
}

func TestDivisionFreesDivisor(t *testing.T) {
	var buf bytes.Buffer

	a := NewAMD64(output.New(&buf))

	l, err := a.Load(7)
	require.NoError(t, err)

	r, err := a.Load(2)
	require.NoError(t, err)

	q, err := a.Div(l, r)
	require.NoError(t, err)

	assert.Equal(t, l, q)
	assert.True(t, a.Registers().IsUsed(l))
	assert.False(t, a.Registers().IsUsed(r))
	assert.Equal(t, 1, a.Registers().Used())
}

func TestSubtractionOrder(t *testing.T) {
	asm, _, err := compile(t, "print 10-4;")
	require.NoError(t, err)

	assert.Equal(t, "\tmovq\t$10, %r8\n"+
		"\tmovq\t$4, %r9\n"+
		"\tsubq\t%r9, %r8\n"+
		"\tmovq\t%r8, %rdi\n"+
		"\tcall\tprintint\n", mainBody(asm))
}

func TestEvaluate(t *testing.T) {
	for _, tc := range []struct {
		src string
		exp []int64
	}{
		{"print 1+2*3;", []int64{7}},
		{"print 1-2-3;", []int64{-4}},
		{"print (1+2)*3;", []int64{9}},
		{"print -7/2;", nil}, // no unary minus
		{"print 0-7/2;", []int64{-3}},
		{"print (0-7)/2;", []int64{-3}},
		{"print 100/7/2;", []int64{7}},
		{"print 2*(3+4)*5-6/2;", []int64{67}},
		{"print 1+(2+(3+4));", []int64{10}},
		{"{ print 1; 2+3; print 4*5; }", []int64{1, 20}},
	} {
		x, err := parse.Parse(context.Background(), []byte(tc.src))
		if tc.exp == nil {
			assert.Error(t, err, "src %q", tc.src)
			continue
		}

		require.NoError(t, err, "src %q", tc.src)

		var buf bytes.Buffer

		err = New(NewAMD64(output.New(&buf))).Generate(context.Background(), x)
		require.NoError(t, err, "src %q", tc.src)

		out, err := run(buf.String())
		require.NoError(t, err, "src %q", tc.src)
		assert.Equal(t, tc.exp, out, "src %q", tc.src)
	}
}

func TestRegisterExhaustion(t *testing.T) {
	// right nested operands keep every left operand live
	_, _, err := compile(t, "print 1+(2+(3+(4+5)));")

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "no registers available", e.Msg)

	_, _, err = compile(t, "print 1+(2+(3+4));")
	require.NoError(t, err)

	_, _, err = compile(t, "print 1+2+3+4+5+6+7+8;")
	require.NoError(t, err)
}

func TestExpressionStatementFreesRegister(t *testing.T) {
	asm, a, err := compile(t, "1+2; 3; 4*5; 6; 7; print 8;")
	require.NoError(t, err)

	assert.Equal(t, 0, a.Registers().Used())

	out, err := run(asm)
	require.NoError(t, err)
	assert.Equal(t, []int64{8}, out)
}

func TestUnsupported(t *testing.T) {
	var buf bytes.Buffer

	g := New(NewAMD64(output.New(&buf)))

	err := g.Generate(context.Background(), &ast.Print{Expr: &ast.Binary{Op: ast.Op(42), Left: ast.Value{V: 1}, Right: ast.Value{V: 2}}})

	var ce *Error
	require.ErrorAs(t, err, &ce)

	err = g.Generate(context.Background(), &ast.Print{Expr: &ast.Print{Expr: ast.Value{V: 1}}})

	var ie *InternalError
	require.ErrorAs(t, err, &ie)

	err = g.Generate(context.Background(), brokenNode{})
	require.ErrorAs(t, err, &ie)
}

func TestOutputFailure(t *testing.T) {
	x, err := parse.Parse(context.Background(), []byte("print 1+2;"))
	require.NoError(t, err)

	for _, after := range []int{0, 5, len(amd64Preamble), len(amd64Preamble) + 3} {
		err = New(NewAMD64(&failOutput{after: after})).Generate(context.Background(), x)

		var e *output.Error
		require.ErrorAs(t, err, &e, "after %d", after)
	}
}
