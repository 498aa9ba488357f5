package verify

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/simxl/api"
	"github.com/sarchlab/simxl/config"
	"github.com/sarchlab/simxl/core"
	"github.com/sarchlab/simxl/instr"
)

var errInvalidRegister = errors.New("program names a register that does not exist")

// VerificationReport represents a complete verification report.
type VerificationReport struct {
	InstructionCount int
	LintIssues       []Issue
	StructIssues     []Issue
	HazardIssues     []Issue

	Output        string
	Registers     [instr.NumRegisters]int64
	Stats         core.Stats
	SimulationErr error
	SimulationOK  bool
}

// NewReport lints the program and returns a report with no simulation
// results yet.
func NewReport(p core.Program) *VerificationReport {
	report := &VerificationReport{
		InstructionCount: p.Len(),
	}

	report.LintIssues = RunLint(p)

	for _, issue := range report.LintIssues {
		if issue.Type == IssueStruct {
			report.StructIssues = append(report.StructIssues, issue)
		} else {
			report.HazardIssues = append(report.HazardIssues, issue)
		}
	}

	return report
}

// GenerateReport runs lint and a simulation, and returns a report. Inputs are
// fed to INPUT instructions in order; missing values read as 0.
func GenerateReport(p core.Program, cfg config.SimConfig, inputs []int64) *VerificationReport {
	report := NewReport(p)

	if !Runnable(p) {
		report.SimulationErr = errInvalidRegister
		return report
	}

	engine := sim.NewSerialEngine()
	driver, c := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(sim.Freq(cfg.FreqMHz) * sim.MHz).
		WithMaxCycles(cfg.MaxCycles).
		BuildWithCore("Verify")

	driver.FeedIn(inputs)
	driver.MapProgram(p)
	err := driver.Run()

	report.RecordRun(driver, c, err)

	return report
}

// Runnable reports whether the core can execute the program, which requires
// every register to exist. Decoded programs always pass since the decoder
// rejects unknown registers; only programs built with core.NewProgram can
// fail. RunLint reports the same registers as STRUCT issues.
func Runnable(p core.Program) bool {
	for _, e := range p.Entries {
		for _, reg := range registersOf(e.Inst) {
			if !reg.Valid() {
				return false
			}
		}
	}

	return true
}

// RecordRun stores the outcome of a finished run.
func (r *VerificationReport) RecordRun(d api.Driver, c *core.Core, err error) {
	r.Output = d.Output()
	r.Registers = c.Registers()
	r.Stats = c.Stats()
	r.SimulationErr = err
	r.SimulationOK = err == nil
}

// WriteReport writes a formatted report to a writer.
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "PROGRAM VERIFICATION REPORT")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "\nLoaded %d instructions\n", r.InstructionCount)

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		fmt.Fprintf(w, "Found %d lint issues:\n", len(r.LintIssues))

		issueTable := table.NewWriter()
		issueTable.AppendHeader(table.Row{"Type", "Line", "Instruction", "Message"})
		for _, issue := range r.LintIssues {
			issueTable.AppendRow(table.Row{
				issue.Type, issue.Line, issue.Details["inst"], issue.Message,
			})
		}
		fmt.Fprintln(w, issueTable.Render())
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: SIMULATION")
	fmt.Fprintln(w, separator)

	switch {
	case r.SimulationOK:
		fmt.Fprintln(w, "Simulation completed successfully")
	case r.SimulationErr == nil:
		fmt.Fprintln(w, "Simulation not run")
	default:
		fmt.Fprintf(w, "Simulation error: %v\n", r.SimulationErr)
	}

	fmt.Fprintf(w, "Output: %q\n", r.Output)

	regTable := table.NewWriter()
	regTable.SetTitle("Registers")
	header := table.Row{}
	row := table.Row{}
	for i, v := range r.Registers {
		header = append(header, instr.Register(i).String())
		row = append(row, v)
	}
	regTable.AppendHeader(header)
	regTable.AppendRow(row)
	fmt.Fprintln(w, regTable.Render())

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "VERIFICATION SUMMARY")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Lint Result: %d issues detected (%d STRUCT, %d HAZARD)\n",
		len(r.LintIssues), len(r.StructIssues), len(r.HazardIssues))
	fmt.Fprintf(w, "Pipeline: %d cycles, %d retired, %d squashed\n",
		r.Stats.Cycles, r.Stats.Retired, r.Stats.Squashed)

	simStatus := "SUCCESS"
	switch {
	case r.SimulationOK:
	case r.SimulationErr == nil:
		simStatus = "NOT RUN"
	default:
		simStatus = "FAILED: " + r.SimulationErr.Error()
	}
	fmt.Fprintf(w, "Simulation Result: %s\n", simStatus)

	fmt.Fprintln(w)
}

// SaveReportToFile saves the report to a file.
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
