package api

import (
	"bufio"
	"io"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/simxl/core"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine     sim.Engine
	freq       sim.Freq
	maxCycles  int
	printState bool
	out        io.Writer
	prompt     io.Writer
	input      io.Reader
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the cores the driver builds.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithMaxCycles bounds the cores the driver builds.
func (b DriverBuilder) WithMaxCycles(n int) DriverBuilder {
	b.maxCycles = n
	return b
}

// WithPrintState makes the cores dump their state every cycle.
func (b DriverBuilder) WithPrintState(enabled bool) DriverBuilder {
	b.printState = enabled
	return b
}

// WithOutput sets where printed text is echoed.
func (b DriverBuilder) WithOutput(w io.Writer) DriverBuilder {
	b.out = w
	return b
}

// WithPrompt sets where INPUT prompts are written.
func (b DriverBuilder) WithPrompt(w io.Writer) DriverBuilder {
	b.prompt = w
	return b
}

// WithInput sets the reader INPUT falls back to once fed values run out.
func (b DriverBuilder) WithInput(r io.Reader) DriverBuilder {
	b.input = r
	return b
}

// Build creates a driver.
func (b DriverBuilder) Build(name string) Driver {
	if b.engine == nil {
		panic("engine is not set")
	}

	d := &driverImpl{
		name:   name,
		engine: b.engine,
		out:    b.out,
		prompt: b.prompt,
	}

	if b.input != nil {
		d.input = bufio.NewReader(b.input)
	}

	return d
}

// BuildWithCore creates a driver together with a core registered to it.
func (b DriverBuilder) BuildWithCore(name string) (Driver, *core.Core) {
	d := b.Build(name)

	cb := core.Builder{}.
		WithEngine(b.engine).
		WithFreq(b.freq).
		WithPrintState(b.printState)
	if b.maxCycles > 0 {
		cb = cb.WithMaxCycles(b.maxCycles)
	}

	c := cb.Build(name + ".Core")
	d.RegisterCore(c)

	return d, c
}
