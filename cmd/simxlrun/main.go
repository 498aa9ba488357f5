// Command simxlrun lints a .test_ins program and runs it on the pipelined
// core. Values given after the program feed its INPUT instructions; once they
// run out the program reads from stdin.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/simxl/api"
	"github.com/sarchlab/simxl/config"
	"github.com/sarchlab/simxl/core"
	"github.com/sarchlab/simxl/verify"
	"github.com/tebeka/atexit"
)

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	atexit.Exit(1)
}

func parseInputs(args []string) ([]int64, error) {
	values := make([]int64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("input value %q: %w", a, err)
		}
		values = append(values, v)
	}

	return values, nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("Usage: %s <program.test_ins> [input values...]\n",
			filepath.Base(os.Args[0]))
		atexit.Exit(1)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fail(err)
	}

	closeLog, err := cfg.SetupLogging(os.Stderr)
	if err != nil {
		fail(err)
	}
	atexit.Register(func() { closeLog() })

	program, err := core.LoadProgramFile(os.Args[1])
	if err != nil {
		fail(err)
	}

	inputs, err := parseInputs(os.Args[2:])
	if err != nil {
		fail(err)
	}

	report := verify.NewReport(program)
	if len(report.StructIssues) > 0 || !verify.Runnable(program) {
		for _, issue := range report.StructIssues {
			fmt.Fprintln(os.Stderr, issue)
		}
		fail(fmt.Errorf("%s has %d structural issues",
			os.Args[1], len(report.StructIssues)))
	}

	if cfg.Sim.PrintState {
		core.PrintProgram(os.Stdout, program)
	}

	engine := sim.NewSerialEngine()

	driver, c := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(sim.Freq(cfg.Sim.FreqMHz) * sim.MHz).
		WithMaxCycles(cfg.Sim.MaxCycles).
		WithPrintState(cfg.Sim.PrintState).
		WithOutput(os.Stdout).
		WithPrompt(os.Stdout).
		WithInput(os.Stdin).
		BuildWithCore("Driver")

	if cfg.Sim.Monitor {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(c)
		monitor.StartServer()
	}

	driver.FeedIn(inputs)
	driver.MapProgram(program)
	runErr := driver.Run()
	fmt.Println()

	report.RecordRun(driver, c, runErr)
	report.WriteReport(os.Stdout)

	if runErr != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
