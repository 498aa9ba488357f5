package core

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/simxl/instr"
)

// Program is a decoded .test_ins file. Only executable instructions are
// kept; each one remembers its source line.
type Program struct {
	Entries []instr.Entry
}

// NewProgram builds a program from instructions, numbering them as if each
// was on its own line. Annotations are dropped.
func NewProgram(insts ...instr.Instruction) Program {
	p := Program{}
	for i, inst := range insts {
		if !inst.Executable() {
			continue
		}
		p.Entries = append(p.Entries, instr.Entry{Line: i + 1, Inst: inst})
	}

	return p
}

// Len returns the number of instructions.
func (p Program) Len() int {
	return len(p.Entries)
}

// LoadProgram decodes a program from r.
func LoadProgram(r io.Reader) (Program, error) {
	entries, err := instr.DecodeAll(r)
	if err != nil {
		return Program{}, err
	}

	return Program{Entries: entries}, nil
}

// LoadProgramFile decodes the program stored at path.
func LoadProgramFile(path string) (Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return Program{}, err
	}
	defer f.Close()

	p, err := LoadProgram(f)
	if err != nil {
		return Program{}, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// PrintProgram lists the program with its source line numbers.
func PrintProgram(w io.Writer, p Program) {
	for _, e := range p.Entries {
		fmt.Fprintf(w, "%4d  %s\n", e.Line, e.Inst)
	}
}
