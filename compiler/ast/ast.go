package ast

import "fmt"

type (
	// Node is one of Value, *Binary, *Block, *Print.
	Node interface {
		Operator() Op

		node()
	}

	Op int

	Value struct {
		V int64
	}

	Binary struct {
		Op Op

		Left  Node
		Right Node
	}

	Block struct {
		Stmts []Node
	}

	Print struct {
		Expr Node
	}
)

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

func (Value) Operator() Op { return OpNone }
func (x *Binary) Operator() Op { return x.Op }
func (*Block) Operator() Op { return OpNone }
func (*Print) Operator() Op { return OpNone }

func (x *Binary) SetOperator(op Op) { x.Op = op }

func (Value) node() {}
func (*Binary) node() {}
func (*Block) node() {}
func (*Print) node() {}

func (op Op) String() string {
	switch op {
	case OpNone:
		return "none"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}
