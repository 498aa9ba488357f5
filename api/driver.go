// Package api defines the driver API for running .test_ins programs.
package api

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/simxl/core"
	"github.com/sarchlab/simxl/instr"
)

// ErrNoCore is returned by Run when no core has been registered.
var ErrNoCore = errors.New("no core registered")

// ErrNoInput is reported to the core when an INPUT has nothing to read.
var ErrNoInput = errors.New("no input available")

// Driver provides the interface to control a core.
type Driver interface {
	// RegisterCore connects a core to the driver. The driver becomes the
	// console of the core.
	RegisterCore(c *core.Core)

	// FeedIn queues values for INPUT instructions. Queued values are
	// consumed before the input reader.
	FeedIn(values []int64)

	// MapProgram loads the program onto the registered core.
	MapProgram(p core.Program)

	// Run runs the engine until the core drains.
	Run() error

	// Output returns everything printed so far.
	Output() string
}

type driverImpl struct {
	name   string
	engine sim.Engine
	core   *core.Core

	queue  []int64
	input  *bufio.Reader
	prompt io.Writer
	out    io.Writer

	printed strings.Builder
}

func (d *driverImpl) RegisterCore(c *core.Core) {
	d.core = c
	c.SetConsole(d)
}

func (d *driverImpl) FeedIn(values []int64) {
	d.queue = append(d.queue, values...)
}

func (d *driverImpl) MapProgram(p core.Program) {
	if d.core == nil {
		panic("MapProgram called before RegisterCore")
	}

	d.core.MapProgram(p)
}

func (d *driverImpl) Run() error {
	if d.core == nil {
		return ErrNoCore
	}

	if err := d.engine.Run(); err != nil {
		return err
	}

	stats := d.core.Stats()
	slog.Info("Simulation finished",
		"Driver", d.name,
		"Core", d.core.Name(),
		"Cycles", stats.Cycles,
		"Retired", stats.Retired,
		"Squashed", stats.Squashed,
	)

	return d.core.Err()
}

func (d *driverImpl) Output() string {
	return d.printed.String()
}

// Input implements core.Console.
func (d *driverImpl) Input(reg instr.Register) (int64, error) {
	if len(d.queue) > 0 {
		v := d.queue[0]
		d.queue = d.queue[1:]
		return v, nil
	}

	if d.input == nil {
		return 0, ErrNoInput
	}

	if d.prompt != nil {
		fmt.Fprintf(d.prompt, "Enter value for %s: ", reg)
	}

	line, err := d.input.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return 0, err
	}

	v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return 0, err
	}

	return v, nil
}

// Print implements core.Console.
func (d *driverImpl) Print(text string) {
	d.printed.WriteString(text)

	if d.out != nil {
		fmt.Fprint(d.out, text)
	}
}
