package verify

import (
	"github.com/sarchlab/simxl/core"
	"github.com/sarchlab/simxl/instr"
)

// RunLint performs static lint checks on a program. It returns the issues in
// program order, or an empty list if the program is clean.
func RunLint(p core.Program) []Issue {
	var issues []Issue

	issues = append(issues, checkStructure(p)...)
	issues = append(issues, checkHazards(p)...)

	return issues
}

func checkStructure(p core.Program) []Issue {
	var issues []Issue

	seenIf := false
	last := p.Len() - 1

	for i, e := range p.Entries {
		for _, r := range registersOf(e.Inst) {
			if !r.Valid() {
				issues = append(issues, newIssue(IssueStruct, e, i,
					"register %s does not exist", r))
			}
		}

		switch inst := e.Inst.(type) {
		case instr.If:
			seenIf = true
			if !instr.IsComparator(inst.Op) {
				issues = append(issues, newIssue(IssueStruct, e, i,
					"unsupported comparator %q", inst.Op))
			}
			if i == last {
				issues = append(issues, newIssue(IssueStruct, e, i,
					"IF guards nothing"))
			}
		case instr.Else:
			if !seenIf {
				issues = append(issues, newIssue(IssueStruct, e, i,
					"ELSE without a preceding IF"))
			}
			if i == last {
				issues = append(issues, newIssue(IssueStruct, e, i,
					"ELSE guards nothing"))
			}
		}
	}

	return issues
}

func checkHazards(p core.Program) []Issue {
	var issues []Issue

	var written [instr.NumRegisters]bool

	for i, e := range p.Entries {
		if op, ok := e.Inst.(instr.BinaryOp); ok &&
			op.Left == instr.Scratch && op.Right == instr.Scratch {
			issues = append(issues, newIssue(IssueHazard, e, i,
				"both operands read the scratch register %s", instr.Scratch))
		}

		for _, r := range readsOf(e.Inst) {
			if r.Valid() && !written[r] {
				issue := newIssue(IssueHazard, e, i,
					"%s is read before it is written", r)
				issue.Details["reg"] = r.String()
				issues = append(issues, issue)
				written[r] = true
			}
		}

		if r, ok := writeOf(e.Inst); ok && r.Valid() {
			written[r] = true
		}
	}

	return issues
}

func readsOf(inst instr.Instruction) []instr.Register {
	switch inst := inst.(type) {
	case instr.Write:
		if r, ok := inst.Src.(instr.Register); ok {
			return []instr.Register{r}
		}
	case instr.BinaryOp:
		return []instr.Register{inst.Left, inst.Right}
	case instr.Print:
		return []instr.Register{inst.Src}
	case instr.If:
		if r, ok := inst.Right.(instr.Register); ok {
			return []instr.Register{inst.Left, r}
		}
		return []instr.Register{inst.Left}
	}

	return nil
}

func writeOf(inst instr.Instruction) (instr.Register, bool) {
	switch inst := inst.(type) {
	case instr.Write:
		return inst.Dst, true
	case instr.BinaryOp:
		return inst.Dst, true
	case instr.Input:
		return inst.Dst, true
	}

	return 0, false
}

func registersOf(inst instr.Instruction) []instr.Register {
	regs := readsOf(inst)
	if r, ok := writeOf(inst); ok {
		regs = append(regs, r)
	}

	return regs
}
