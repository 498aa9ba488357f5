package compiler

import (
	"strconv"

	"github.com/sarchlab/simxl/instr"
)

// Operand is either a Literal or a Symbol.
type Operand interface {
	isOperand()
}

// Literal is an integer constant.
type Literal struct {
	Value int64
}

func (Literal) isOperand() {}

// Symbol is a reference to a variable.
type Symbol struct {
	Name string
}

func (Symbol) isOperand() {}

// IsLiteral reports whether token has the shape of an integer literal: an
// optional sign followed only by ASCII digits.
func IsLiteral(token string) bool {
	if token == "" {
		return false
	}

	i := 0
	if token[0] == '+' || token[0] == '-' {
		i = 1
	}

	for ; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}

	return true
}

// Classify decides whether token is a literal or a variable reference.
func Classify(token string) Operand {
	if IsLiteral(token) {
		return Literal{Value: parseLiteral(token)}
	}

	return Symbol{Name: token}
}

// parseLiteral converts a token accepted by IsLiteral. A bare sign is zero and
// digit strings beyond the int64 range wrap around.
func parseLiteral(token string) int64 {
	neg := false
	switch token[0] {
	case '-':
		neg = true
		token = token[1:]
	case '+':
		token = token[1:]
	}

	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		if neg {
			return -n
		}
		return n
	}

	var v uint64
	for i := 0; i < len(token); i++ {
		v = v*10 + uint64(token[i]-'0')
	}

	if neg {
		return -int64(v)
	}

	return int64(v)
}

// resolve turns an operand into the register holding its value. Symbols are
// looked up or bound; literals are staged in the scratch register first.
func (t *Translator) resolve(op Operand) (instr.Register, error) {
	switch op := op.(type) {
	case Symbol:
		reg, _, err := t.symbols.ResolveOrAllocate(op.Name)
		return reg, err
	case Literal:
		err := t.emit(instr.Write{Dst: instr.Scratch, Src: instr.Imm(op.Value)})
		return instr.Scratch, err
	default:
		panic("unknown operand type")
	}
}
