package compiler

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/simxl/instr"
)

// Capacity is the number of registers that can hold variables. The last
// register is reserved as scratch.
const Capacity = int(instr.Scratch)

// Binding is one variable binding.
type Binding struct {
	Name string
	Reg  instr.Register
}

// SymbolTable binds variable names to registers in order of first use.
// Bindings are never removed or changed.
type SymbolTable struct {
	names [Capacity]string
	count int
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Lookup returns the register bound to name.
func (s *SymbolTable) Lookup(name string) (instr.Register, bool) {
	for i := 0; i < s.count; i++ {
		if s.names[i] == name {
			return instr.Register(i), true
		}
	}

	return 0, false
}

// Allocate binds name to the next free register.
func (s *SymbolTable) Allocate(name string) (instr.Register, error) {
	if s.count >= Capacity {
		return 0, fmt.Errorf("%w (max %d): %q", ErrCapacityExceeded, Capacity, name)
	}

	s.names[s.count] = name
	s.count++

	Trace("Allocate", "Name", name, "Reg", s.count-1)

	return instr.Register(s.count - 1), nil
}

// ResolveOrAllocate returns the register bound to name, binding it first if
// the name is new.
func (s *SymbolTable) ResolveOrAllocate(name string) (reg instr.Register, isNew bool, err error) {
	if reg, ok := s.Lookup(name); ok {
		return reg, false, nil
	}

	reg, err = s.Allocate(name)
	if err != nil {
		return 0, false, err
	}

	return reg, true, nil
}

// Len returns the number of bound variables.
func (s *SymbolTable) Len() int {
	return s.count
}

// Bindings returns the bindings in allocation order.
func (s *SymbolTable) Bindings() []Binding {
	bindings := make([]Binding, s.count)
	for i := range bindings {
		bindings[i] = Binding{Name: s.names[i], Reg: instr.Register(i)}
	}

	return bindings
}

// String lists the bindings, one "name -> Rn" per line.
func (s *SymbolTable) String() string {
	var b strings.Builder
	for _, e := range s.Bindings() {
		fmt.Fprintf(&b, "  %s -> %s\n", e.Name, e.Reg)
	}

	return b.String()
}

// Table renders the bindings as a table for the console.
func (s *SymbolTable) Table() string {
	t := table.NewWriter()
	t.SetTitle("Variables mapping")
	t.AppendHeader(table.Row{"Variable", "Register"})

	for _, e := range s.Bindings() {
		t.AppendRow(table.Row{e.Name, e.Reg.String()})
	}

	return t.Render()
}
