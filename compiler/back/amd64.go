package back

import (
	"tlog.app/go/errors"
)

type (
	Output interface {
		Writeln(line string) error
		Printf(format string, args ...any) error
	}

	// AMD64 emits x86-64 assembly in GNU as syntax.
	// The program prints with printf from libc.
	AMD64 struct {
		w    Output
		regs *Registers
	}
)

var amd64Regs = [NumRegs]string{"%r8", "%r9", "%r10", "%r11"}

var amd64Preamble = []string{
	".text",
	".LC0:",
	"\t.string\t\"%d\\n\"",
	"printint:",
	"\tpushq\t%rbp",
	"\tmovq\t%rsp, %rbp",
	"\tsubq\t$16, %rsp",
	"\tmovl\t%edi, -4(%rbp)",
	"\tmovl\t-4(%rbp), %eax",
	"\tmovl\t%eax, %esi",
	"\tleaq\t.LC0(%rip), %rdi",
	"\tmovl\t$0, %eax",
	"\tcall\tprintf@PLT",
	"\tnop",
	"\tleave",
	"\tret",
	"",
	".globl\tmain",
	".type\tmain, @function",
	"main:",
	"\tpushq\t%rbp",
	"\tmovq\t%rsp, %rbp",
}

var amd64Postamble = []string{
	"\tmovl\t$0, %eax",
	"\tpopq\t%rbp",
	"\tret",
}

func NewAMD64(w Output) *AMD64 {
	return &AMD64{
		w:    w,
		regs: NewRegisters(NumRegs),
	}
}

func (a *AMD64) Registers() *Registers { return a.regs }

func (a *AMD64) Preamble() error {
	a.regs.Reset()

	return a.lines(amd64Preamble)
}

func (a *AMD64) Postamble() error {
	return a.lines(amd64Postamble)
}

func (a *AMD64) Load(v int64) (Reg, error) {
	r, err := a.regs.Alloc()
	if err != nil {
		return -1, err
	}

	err = a.w.Printf("\tmovq\t$%d, %s", v, amd64Regs[r])
	if err != nil {
		return -1, err
	}

	return r, nil
}

func (a *AMD64) Add(l, r Reg) (Reg, error) {
	return a.op("addq", l, r)
}

// Sub leaves the result in l, the other operations leave it in r.
func (a *AMD64) Sub(l, r Reg) (Reg, error) {
	return a.op("subq", r, l)
}

func (a *AMD64) Mul(l, r Reg) (Reg, error) {
	return a.op("imulq", l, r)
}

// Div divides l by r. Dividend and quotient are bound to %rax,
// cqo sign-extends %rax into %rdx.
func (a *AMD64) Div(l, r Reg) (Reg, error) {
	err := a.w.Printf("\tmovq\t%s, %%rax", amd64Regs[l])
	if err == nil {
		err = a.w.Writeln("\tcqo")
	}
	if err == nil {
		err = a.w.Printf("\tidivq\t%s", amd64Regs[r])
	}
	if err == nil {
		err = a.w.Printf("\tmovq\t%%rax, %s", amd64Regs[l])
	}
	if err != nil {
		return -1, err
	}

	err = a.regs.Free(r)
	if err != nil {
		return -1, err
	}

	return l, nil
}

func (a *AMD64) PrintReg(r Reg) error {
	err := a.w.Printf("\tmovq\t%s, %%rdi", amd64Regs[r])
	if err == nil {
		err = a.w.Writeln("\tcall\tprintint")
	}
	if err != nil {
		return err
	}

	return a.regs.Free(r)
}

func (a *AMD64) Free(r Reg) error {
	return a.regs.Free(r)
}

// op emits "instr src, dst", frees src and returns dst.
func (a *AMD64) op(instr string, src, dst Reg) (Reg, error) {
	err := a.w.Printf("\t%s\t%s, %s", instr, amd64Regs[src], amd64Regs[dst])
	if err != nil {
		return -1, err
	}

	err = a.regs.Free(src)
	if err != nil {
		return -1, err
	}

	return dst, nil
}

func (a *AMD64) lines(ls []string) error {
	for _, l := range ls {
		err := a.w.Writeln(l)
		if err != nil {
			return errors.Wrap(err, "write")
		}
	}

	return nil
}
