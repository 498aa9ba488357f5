// Package verify provides debugging tools for .test_ins programs.
//
// This package implements two complementary verification stages:
//
// 1. Static Lint (lint.go): structural and hazard checks
//   - STRUCT checks: comparators, IF/ELSE pairing, register names
//   - HAZARD checks: scratch register aliasing, reads of unwritten registers
//
// 2. Simulation (report.go): runs the program on the pipelined core
//   - Uses the same driver as simxlrun with fed INPUT values
//   - Reports printed output, final registers and pipeline counters
//
// # Predication
//
// An IF guards exactly one following instruction. ELSE guards the one after
// it and only makes sense after an IF. Lint reports guards that have nothing
// to guard, as the core would silently ignore them.
//
// # Usage Example
//
//	p, _ := core.LoadProgramFile("prog.test_ins")
//	report := verify.GenerateReport(p, cfg.Sim, []int64{3, 4})
//	report.WriteReport(os.Stdout)
package verify

import (
	"fmt"

	"github.com/sarchlab/simxl/instr"
)

// IssueType classifies lint issues.
type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // Malformed program structure
	IssueHazard IssueType = "HAZARD" // Well-formed but likely wrong data flow
)

// Issue represents a single lint issue.
type Issue struct {
	Type    IssueType              // STRUCT or HAZARD
	Index   int                    // Instruction index, -1 if not applicable
	Line    int                    // Source line, -1 if not applicable
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}

func (i Issue) String() string {
	if i.Line < 0 {
		return fmt.Sprintf("[%s] %s", i.Type, i.Message)
	}

	return fmt.Sprintf("[%s] line %d: %s", i.Type, i.Line, i.Message)
}

func newIssue(t IssueType, e instr.Entry, index int, format string, args ...any) Issue {
	return Issue{
		Type:    t,
		Index:   index,
		Line:    e.Line,
		Message: fmt.Sprintf(format, args...),
		Details: map[string]interface{}{"inst": e.Inst.String()},
	}
}
