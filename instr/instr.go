// Package instr defines the instruction set of the 8-register test machine,
// together with the text format used by .test_ins files.
package instr

import "fmt"

// Instruction is one line of a .test_ins program.
type Instruction interface {
	// String renders the instruction in the .test_ins text format.
	String() string

	// Executable is false for annotations that only document the program.
	Executable() bool
}

// Annotation records a variable-to-register binding. It is emitted as a
// comment and ignored by the machine.
type Annotation struct {
	Name string
	Reg  Register
}

func (a Annotation) String() string {
	return fmt.Sprintf("# var %s -> %s", a.Name, a.Reg)
}

func (a Annotation) Executable() bool { return false }

// Write moves an immediate, a register, or a character into Dst.
type Write struct {
	Dst Register
	Src Value
}

func (w Write) String() string {
	return fmt.Sprintf("WRITE %s, %s", w.Dst, w.Src)
}

func (w Write) Executable() bool { return true }

// Input reads one integer from the console into Dst.
type Input struct {
	Dst Register
}

func (i Input) String() string {
	return "INPUT " + i.Dst.String()
}

func (i Input) Executable() bool { return true }

// Print writes the content of Src to the console.
type Print struct {
	Src Register
}

func (p Print) String() string {
	return "PRINT " + p.Src.String()
}

func (p Print) Executable() bool { return true }

// If guards the next instruction with the comparison Left Op Right. The
// comparator is kept verbatim.
type If struct {
	Left  Register
	Op    string
	Right Value
}

func (i If) String() string {
	return fmt.Sprintf("IF %s %s %s", i.Left, i.Op, i.Right)
}

func (i If) Executable() bool { return true }

// Else guards the next instruction with the negation of the last If.
type Else struct{}

func (Else) String() string { return "ELSE" }

func (Else) Executable() bool { return true }

// OpKind selects the arithmetic performed by a BinaryOp.
type OpKind int

const (
	Add OpKind = iota
	Sub
	Mul
	Div
)

// Mnemonic returns the opcode text of the kind.
func (k OpKind) Mnemonic() string {
	switch k {
	case Add:
		return "ADD"
	case Sub:
		return "SUB"
	case Mul:
		return "MUL"
	case Div:
		return "DIV"
	default:
		panic(fmt.Sprintf("invalid op kind %d", int(k)))
	}
}

// Symbol returns the source operator character of the kind.
func (k OpKind) Symbol() byte {
	return "+-*/"[k]
}

// KindOf maps a source operator character to its kind.
func KindOf(op byte) (OpKind, bool) {
	switch op {
	case '+':
		return Add, true
	case '-':
		return Sub, true
	case '*':
		return Mul, true
	case '/':
		return Div, true
	}

	return 0, false
}

// Apply evaluates the kind on two integers. Division by zero yields 0.
func (k OpKind) Apply(a, b int64) int64 {
	switch k {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Div:
		if b == 0 {
			return 0
		}
		return a / b
	default:
		panic(fmt.Sprintf("invalid op kind %d", int(k)))
	}
}

// BinaryOp computes Dst = Left <kind> Right.
type BinaryOp struct {
	Kind  OpKind
	Dst   Register
	Left  Register
	Right Register
}

func (b BinaryOp) String() string {
	return fmt.Sprintf("%s %s, %s, %s", b.Kind.Mnemonic(), b.Dst, b.Left, b.Right)
}

func (b BinaryOp) Executable() bool { return true }
