package instr

import (
	"fmt"
	"io"
)

// Emitter writes instructions as text, one per line, in the order they are
// emitted.
type Emitter struct {
	w     io.Writer
	count int
}

// NewEmitter creates an emitter that writes to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit appends one instruction to the output.
func (e *Emitter) Emit(inst Instruction) error {
	_, err := fmt.Fprintln(e.w, inst.String())
	if err != nil {
		return err
	}

	e.count++

	return nil
}

// Count returns the number of lines emitted so far.
func (e *Emitter) Count() int {
	return e.count
}
