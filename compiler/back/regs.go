package back

import (
	"fmt"

	"nikand.dev/go/heap"
	"tlog.app/go/tlog/tlwire"
)

type (
	Reg int

	// Registers is a fixed register file.
	// Alloc always takes the lowest free register. There is no spilling,
	// running out of registers is an error.
	Registers struct {
		n int

		free heap.Heap[Reg]
		used uint64
	}
)

// NumRegs is the size of the working register set.
const NumRegs = 4

func NewRegisters(n int) *Registers {
	if n <= 0 || n > 64 {
		panic(n)
	}

	r := &Registers{
		n:    n,
		free: heap.Heap[Reg]{Less: regLess},
	}

	r.Reset()

	return r
}

func (r *Registers) Reset() {
	r.free.Data = r.free.Data[:0]
	r.used = 0

	for i := 0; i < r.n; i++ {
		r.free.Push(Reg(i))
	}
}

func (r *Registers) Alloc() (Reg, error) {
	if r.free.Len() == 0 {
		return -1, &Error{Msg: "no registers available"}
	}

	x := r.free.Pop()
	r.used |= 1 << x

	return x, nil
}

func (r *Registers) Free(x Reg) error {
	if !r.IsUsed(x) {
		return &InternalError{Msg: fmt.Sprintf("free of not allocated register %d", x)}
	}

	r.used &^= 1 << x
	r.free.Push(x)

	return nil
}

func (r *Registers) IsUsed(x Reg) bool {
	return x >= 0 && int(x) < r.n && r.used&(1<<x) != 0
}

// Used is the number of allocated registers.
func (r *Registers) Used() int {
	return r.n - r.free.Len()
}

func (r *Registers) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	b = e.AppendTag(b, tlwire.Array, -1)

	for i := 0; i < r.n; i++ {
		if r.used&(1<<i) != 0 {
			b = e.AppendInt(b, i)
		}
	}

	return e.AppendBreak(b)
}

func regLess(d []Reg, i, j int) bool {
	return d[i] < d[j]
}
