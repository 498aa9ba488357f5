package core

import (
	"fmt"
	"strconv"

	"github.com/sarchlab/simxl/instr"
)

type slot struct {
	valid bool
	entry instr.Entry
}

type wbKind int

const (
	wbNone wbKind = iota
	wbWrite
	wbPrint
)

// writeback is the pending effect that leaves the execute stage.
type writeback struct {
	kind  wbKind
	reg   instr.Register
	value int64
	line  int
}

type coreState struct {
	PC        int
	Registers [instr.NumRegisters]int64
	Code      Program

	fetch   slot
	execute slot
	wb      writeback

	// skipElse is set by a taken IF, elseExpected by a squashing one.
	skipElse     bool
	elseExpected bool

	Cycles   int
	Retired  int
	Squashed int
}

func (s *coreState) drained() bool {
	return s.PC >= s.Code.Len() &&
		!s.fetch.valid && !s.execute.valid && s.wb.kind == wbNone
}

func (s *coreState) squashFetch() {
	if !s.fetch.valid {
		return
	}

	Trace("Squash", "Line", s.fetch.entry.Line, "Inst", s.fetch.entry.Inst.String())
	s.fetch.valid = false
	s.Squashed++
}

type instEmulator struct {
	console Console
}

// RunInst executes the instruction in the execute stage. Register writes
// other than INPUT are deferred to the writeback stage.
func (i instEmulator) RunInst(e instr.Entry, state *coreState) {
	switch inst := e.Inst.(type) {
	case instr.Write:
		state.wb = writeback{
			kind:  wbWrite,
			reg:   inst.Dst,
			value: i.readValue(inst.Src, state),
			line:  e.Line,
		}
	case instr.BinaryOp:
		state.wb = writeback{
			kind:  wbWrite,
			reg:   inst.Dst,
			value: inst.Kind.Apply(state.Registers[inst.Left], state.Registers[inst.Right]),
			line:  e.Line,
		}
	case instr.Print:
		state.wb = writeback{kind: wbPrint, reg: inst.Src, line: e.Line}
	case instr.Input:
		i.runInput(inst, state)
	case instr.If:
		i.runIf(inst, state)
	case instr.Else:
		i.runElse(state)
	default:
		panic(fmt.Sprintf("cannot execute %s at line %d", e.Inst, e.Line))
	}

	state.Retired++
}

func (i instEmulator) readValue(v instr.Value, state *coreState) int64 {
	switch v := v.(type) {
	case instr.Imm:
		return int64(v)
	case instr.Register:
		return state.Registers[v]
	case instr.Char:
		return v.Code()
	default:
		panic(fmt.Sprintf("unknown value %v", v))
	}
}

func (i instEmulator) runInput(inst instr.Input, state *coreState) {
	v, err := i.console.Input(inst.Dst)
	if err != nil {
		Trace("Input", "Reg", inst.Dst.String(), "Error", err.Error())
		v = 0
	}

	state.Registers[inst.Dst] = v
}

func (i instEmulator) runIf(inst instr.If, state *coreState) {
	left := state.Registers[inst.Left]
	right := i.readValue(inst.Right, state)

	state.elseExpected = false
	state.skipElse = false

	if compare(left, inst.Op, right) {
		state.skipElse = true
		return
	}

	state.squashFetch()
	state.elseExpected = true
}

func (i instEmulator) runElse(state *coreState) {
	switch {
	case state.skipElse:
		state.squashFetch()
	case state.elseExpected:
	default:
		state.squashFetch()
	}

	state.skipElse = false
	state.elseExpected = false
}

func compare(a int64, op string, b int64) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	case ">=":
		return a >= b
	}

	Trace("Compare", "Op", op, "Error", "unknown comparator")

	return false
}

// writeBack retires the pending effect of the writeback stage.
func (i instEmulator) writeBack(state *coreState) bool {
	wb := state.wb
	state.wb = writeback{}

	switch wb.kind {
	case wbWrite:
		state.Registers[wb.reg] = wb.value
	case wbPrint:
		i.console.Print(FormatPrint(state.Registers[wb.reg]))
	default:
		return false
	}

	return true
}

// FormatPrint renders a printed register: printable ASCII codes become the
// character, any other value is printed as a number.
func FormatPrint(v int64) string {
	if v >= 32 && v <= 126 {
		return string(rune(v))
	}

	return strconv.FormatInt(v, 10)
}
