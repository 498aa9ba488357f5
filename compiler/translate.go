package compiler

import (
	"unicode/utf8"

	"github.com/sarchlab/simxl/instr"
)

// Translator turns statements into instructions, binding variables to
// registers as they are first seen.
type Translator struct {
	symbols *SymbolTable
	emitter *instr.Emitter
}

// NewTranslator creates a translator that records bindings in symbols and
// writes instructions to emitter.
func NewTranslator(symbols *SymbolTable, emitter *instr.Emitter) *Translator {
	return &Translator{symbols: symbols, emitter: emitter}
}

// Translate emits the instructions of one statement.
func (t *Translator) Translate(stmt Statement) error {
	switch s := stmt.(type) {
	case VarDecl:
		return t.translateVar(s)
	case InputDecl:
		return t.translateInput(s)
	case PrintString:
		return t.translatePrintString(s)
	case PrintVar:
		return t.translatePrintVar(s)
	case IfStmt:
		return t.translateIf(s)
	case ElseStmt:
		return t.emit(instr.Else{})
	case Assignment:
		return t.lowerAssignment(s)
	default:
		panic("unknown statement type")
	}
}

func (t *Translator) emit(inst instr.Instruction) error {
	return t.emitter.Emit(inst)
}

func (t *Translator) translateVar(s VarDecl) error {
	reg, isNew, err := t.symbols.ResolveOrAllocate(s.Name)
	if err != nil || !isNew {
		return err
	}

	return t.emit(instr.Annotation{Name: s.Name, Reg: reg})
}

func (t *Translator) translateInput(s InputDecl) error {
	reg, _, err := t.symbols.ResolveOrAllocate(s.Name)
	if err != nil {
		return err
	}

	return t.emit(instr.Input{Dst: reg})
}

func (t *Translator) translatePrintVar(s PrintVar) error {
	reg, _, err := t.symbols.ResolveOrAllocate(s.Name)
	if err != nil {
		return err
	}

	return t.emit(instr.Print{Src: reg})
}

// translatePrintString writes each character of the literal to the scratch
// register and prints it. Bytes that are not valid UTF-8 are written one at
// a time.
func (t *Translator) translatePrintString(s PrintString) error {
	text := StripDegreeMarker(s.Text)

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		ch := text[i : i+size]
		i += size

		if r == 0 {
			continue
		}

		if err := t.emit(instr.Write{Dst: instr.Scratch, Src: instr.CharOf(ch)}); err != nil {
			return err
		}

		if err := t.emit(instr.Print{Src: instr.Scratch}); err != nil {
			return err
		}
	}

	return nil
}

func (t *Translator) translateIf(s IfStmt) error {
	left, _, err := t.symbols.ResolveOrAllocate(s.Left)
	if err != nil {
		return err
	}

	var right instr.Value
	switch op := s.Right.(type) {
	case Literal:
		right = instr.Imm(op.Value)
	case Symbol:
		reg, _, err := t.symbols.ResolveOrAllocate(op.Name)
		if err != nil {
			return err
		}
		right = reg
	}

	return t.emit(instr.If{Left: left, Op: s.Op, Right: right})
}
