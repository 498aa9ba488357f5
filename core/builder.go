package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine     sim.Engine
	freq       sim.Freq
	maxCycles  int
	printState bool
	console    Console
}

// DefaultMaxCycles is used when the builder is not given a cycle limit.
const DefaultMaxCycles = 100000

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMaxCycles bounds the number of cycles a program may run.
func (b Builder) WithMaxCycles(n int) Builder {
	if n <= 0 {
		panic("max cycles must be positive")
	}
	b.maxCycles = n
	return b
}

// WithPrintState dumps the register file after every cycle.
func (b Builder) WithPrintState(enabled bool) Builder {
	b.printState = enabled
	return b
}

// WithConsole sets where INPUT reads from and PRINT writes to.
func (b Builder) WithConsole(console Console) Builder {
	b.console = console
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	c := &Core{
		maxCycles:  b.maxCycles,
		printState: b.printState,
		console:    b.console,
	}

	if c.console == nil {
		c.console = nullConsole{}
	}
	if c.maxCycles == 0 {
		c.maxCycles = DefaultMaxCycles
	}

	freq := b.freq
	if freq == 0 {
		freq = 1 * sim.GHz
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, freq, c)

	return c
}
