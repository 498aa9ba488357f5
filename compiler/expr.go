package compiler

import (
	"fmt"
	"strings"

	"github.com/sarchlab/simxl/instr"
)

// Expression is the right-hand side of an assignment: a single operand, or
// two operands joined by the first operator found in the text.
type Expression struct {
	Left  Operand
	Op    byte // 0 when the expression is a single operand
	Right Operand
}

// IsBinary reports whether the expression has an operator.
func (e Expression) IsBinary() bool {
	return e.Op != 0
}

// ParseExpression splits expr at the first '+', '-', '*' or '/'. There is
// no precedence and no chaining; everything after the operator is the right
// operand. Signs are not special: "-5" splits into an empty left half, which
// is a variable with an empty name.
func ParseExpression(expr string) (Expression, error) {
	expr = strings.TrimSpace(expr)

	p := strings.IndexAny(expr, "+-*/")
	if p < 0 {
		return Expression{Left: Classify(expr)}, nil
	}

	return Expression{
		Left:  Classify(strings.TrimSpace(expr[:p])),
		Op:    expr[p],
		Right: Classify(strings.TrimSpace(expr[p+1:])),
	}, nil
}

// Fold evaluates an expression whose operands are both literals.
func (e Expression) Fold() (int64, bool) {
	a, ok := e.Left.(Literal)
	if !ok || !e.IsBinary() {
		return 0, false
	}

	b, ok := e.Right.(Literal)
	if !ok {
		return 0, false
	}

	kind, _ := instr.KindOf(e.Op)

	return kind.Apply(a.Value, b.Value), true
}

// lowerAssignment emits the instructions that store expr into dest.
func (t *Translator) lowerAssignment(a Assignment) error {
	dest, _, err := t.symbols.ResolveOrAllocate(a.Dest)
	if err != nil {
		return err
	}

	if !a.Expr.IsBinary() {
		return t.lowerMove(dest, a.Expr.Left)
	}

	if v, ok := a.Expr.Fold(); ok {
		return t.emit(instr.Write{Dst: dest, Src: instr.Imm(v)})
	}

	left, err := t.resolve(a.Expr.Left)
	if err != nil {
		return err
	}

	right, err := t.resolve(a.Expr.Right)
	if err != nil {
		return err
	}

	kind, ok := instr.KindOf(a.Expr.Op)
	if !ok {
		return fmt.Errorf("%w: unknown operator %c", ErrSyntax, a.Expr.Op)
	}

	return t.emit(instr.BinaryOp{Kind: kind, Dst: dest, Left: left, Right: right})
}

func (t *Translator) lowerMove(dest instr.Register, src Operand) error {
	switch src := src.(type) {
	case Literal:
		return t.emit(instr.Write{Dst: dest, Src: instr.Imm(src.Value)})
	case Symbol:
		reg, _, err := t.symbols.ResolveOrAllocate(src.Name)
		if err != nil {
			return err
		}
		return t.emit(instr.Write{Dst: dest, Src: reg})
	default:
		panic("unknown operand type")
	}
}
