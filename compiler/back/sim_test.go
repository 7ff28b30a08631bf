package back

import (
	"strconv"
	"strings"

	"tlog.app/go/errors"
)

type machine struct {
	regs map[string]int64
	out  []int64
}

// run executes the body of main emitted by AMD64 and returns printed values.
// Only the instructions the generator uses are understood.
func run(asm string) (out []int64, err error) {
	m := &machine{regs: map[string]int64{}}

	lines := strings.Split(asm, "\n")

	st := -1
	for i, l := range lines {
		if l == "main:" {
			st = i + 1
			break
		}
	}

	if st < 0 {
		return nil, errors.New("no main")
	}

	for i, l := range lines[st:] {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}

		ins, args, _ := strings.Cut(l, "\t")

		var a []string
		if args != "" {
			a = strings.Split(args, ", ")
		}

		err = m.exec(ins, a)
		if err != nil {
			return nil, errors.Wrap(err, "line %d: %q", st+i+1, l)
		}

		if ins == "ret" {
			return m.out, nil
		}
	}

	return nil, errors.New("no ret")
}

func (m *machine) exec(ins string, a []string) (err error) {
	switch ins {
	case "pushq", "popq":
	case "movq":
		var v int64

		v, err = m.val(a[0])
		m.regs[a[1]] = v
	case "movl":
		var v int64

		v, err = m.val(a[0])
		m.regs[a[1]] = v
	case "addq":
		m.regs[a[1]] += m.regs[a[0]]
	case "subq":
		m.regs[a[1]] -= m.regs[a[0]]
	case "imulq":
		m.regs[a[1]] *= m.regs[a[0]]
	case "cqo":
		m.regs["%rdx"] = m.regs["%rax"] >> 63
	case "idivq":
		d := m.regs[a[0]]
		if d == 0 {
			return errors.New("division by zero")
		}

		x := m.regs["%rax"]
		m.regs["%rax"], m.regs["%rdx"] = x/d, x%d
	case "call":
		if a[0] != "printint" {
			return errors.New("unexpected call: %v", a[0])
		}

		m.out = append(m.out, m.regs["%rdi"])
	case "ret":
	default:
		return errors.New("unsupported instruction: %v", ins)
	}

	return err
}

func (m *machine) val(s string) (int64, error) {
	if strings.HasPrefix(s, "$") {
		return strconv.ParseInt(s[1:], 10, 64)
	}

	if strings.HasPrefix(s, "%") {
		return m.regs[s], nil
	}

	return 0, errors.New("unsupported operand: %v", s)
}
