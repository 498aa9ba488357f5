package core

import (
	"errors"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/simxl/instr"
)

// ErrCycleLimit is reported when a program does not drain within the
// configured number of cycles.
var ErrCycleLimit = errors.New("cycle limit reached")

// Core is a three-stage in-order pipeline: fetch, execute, writeback.
type Core struct {
	*sim.TickingComponent

	state      coreState
	emu        instEmulator
	console    Console
	maxCycles  int
	printState bool
	err        error
}

// Stats summarizes a run.
type Stats struct {
	Cycles   int
	Retired  int
	Squashed int
}

// MapProgram loads the program and schedules the first cycle.
func (c *Core) MapProgram(p Program) {
	c.state = coreState{Code: p}
	c.emu = instEmulator{console: c.console}
	c.err = nil

	Trace("MapProgram", "Core", c.Name(), "Instructions", p.Len())

	if p.Len() > 0 {
		c.TickLater()
	}
}

// SetConsole replaces the I/O device of the core.
func (c *Core) SetConsole(console Console) {
	c.console = console
	c.emu.console = console
}

// Registers returns a copy of the register file.
func (c *Core) Registers() [instr.NumRegisters]int64 {
	return c.state.Registers
}

// Stats returns the counters of the current run.
func (c *Core) Stats() Stats {
	return Stats{
		Cycles:   c.state.Cycles,
		Retired:  c.state.Retired,
		Squashed: c.state.Squashed,
	}
}

// Done reports whether every instruction has left the pipeline.
func (c *Core) Done() bool {
	return c.state.drained()
}

// Err returns ErrCycleLimit if the run was cut short.
func (c *Core) Err() error {
	return c.err
}

// Tick runs the pipeline for one cycle.
func (c *Core) Tick() (madeProgress bool) {
	if c.state.drained() {
		return false
	}

	if c.state.Cycles >= c.maxCycles {
		c.err = ErrCycleLimit
		slog.Warn("Cycle limit reached",
			"Core", c.Name(),
			"Cycles", c.state.Cycles,
			"PC", c.state.PC,
		)
		return false
	}

	c.state.Cycles++

	madeProgress = c.doWriteBack() || madeProgress
	c.shift()
	madeProgress = c.doFetch() || madeProgress
	madeProgress = c.doExecute() || madeProgress

	if c.printState {
		PrintState(&c.state)
	}

	return madeProgress
}

func (c *Core) doWriteBack() bool {
	line := c.state.wb.line
	if !c.emu.writeBack(&c.state) {
		return false
	}

	Trace("WriteBack",
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"Line", line,
	)

	return true
}

func (c *Core) shift() {
	c.state.execute = c.state.fetch
	c.state.fetch = slot{}
}

func (c *Core) doFetch() bool {
	if c.state.PC >= c.state.Code.Len() {
		return false
	}

	e := c.state.Code.Entries[c.state.PC]
	c.state.fetch = slot{valid: true, entry: e}
	c.state.PC++

	Trace("Fetch",
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"Line", e.Line,
		"Inst", e.Inst.String(),
	)

	return true
}

func (c *Core) doExecute() bool {
	if !c.state.execute.valid {
		return false
	}

	e := c.state.execute.entry
	c.emu.RunInst(e, &c.state)
	c.state.execute = slot{}

	Trace("Execute",
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"Line", e.Line,
		"Inst", e.Inst.String(),
	)

	return true
}
