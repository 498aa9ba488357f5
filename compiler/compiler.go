// Package compiler translates .simxl programs into .test_ins instructions
// in a single pass over the source lines.
package compiler

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sarchlab/simxl/instr"
)

// LevelTrace is the log level of per-statement translation records.
const LevelTrace slog.Level = slog.LevelInfo + 1

// Trace logs a translation event.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// Compiler runs one compilation. It owns the symbol table and the output
// stream for the duration of the run.
type Compiler struct {
	symbols    *SymbolTable
	emitter    *instr.Emitter
	translator *Translator
	line       int
}

// New creates a compiler that writes instructions to w.
func New(w io.Writer) *Compiler {
	c := &Compiler{
		symbols: NewSymbolTable(),
		emitter: instr.NewEmitter(w),
	}
	c.translator = NewTranslator(c.symbols, c.emitter)

	return c
}

// Symbols returns the variable bindings made so far.
func (c *Compiler) Symbols() *SymbolTable {
	return c.symbols
}

// Emitted returns the number of output lines written so far.
func (c *Compiler) Emitted() int {
	return c.emitter.Count()
}

// TranslateLine translates the next raw source line. Blank and comment-only
// lines produce nothing.
func (c *Compiler) TranslateLine(raw string) error {
	c.line++

	line, ok := NormalizeLine(raw)
	if !ok {
		return nil
	}

	stmt, err := ParseStatement(line)
	if err == nil {
		before := c.emitter.Count()
		err = c.translator.Translate(stmt)
		Trace("Translate",
			"Line", c.line,
			"Statement", fmt.Sprintf("%T", stmt),
			"Emitted", c.emitter.Count()-before,
		)
	}

	if err != nil {
		return &LineError{Line: c.line, Text: line, Err: err}
	}

	return nil
}

// Run translates every line of r. It stops at the first error; whatever was
// emitted before stays in the output.
func (c *Compiler) Run(r io.Reader) error {
	reader := bufio.NewReader(r)
	for {
		raw, err := reader.ReadString('\n')
		if raw != "" {
			if terr := c.TranslateLine(raw); terr != nil {
				return terr
			}
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
}

// Compile translates a whole program held in memory.
func Compile(src string) (string, *SymbolTable, error) {
	var out bytes.Buffer

	c := New(&out)
	err := c.Run(bytes.NewBufferString(src))

	return out.String(), c.symbols, err
}
