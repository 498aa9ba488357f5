package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintState dumps the register file and the pipeline stages to stdout.
func PrintState(state *coreState) {
	fmt.Fprintf(os.Stdout, "==============State@%d==============\n", state.Cycles)

	regTable := table.NewWriter()
	regTable.SetTitle("Registers")

	header := table.Row{}
	row := table.Row{}
	for i, v := range state.Registers {
		header = append(header, fmt.Sprintf("R%d", i))
		row = append(row, v)
	}
	regTable.AppendHeader(header)
	regTable.AppendRow(row)

	fmt.Println(regTable.Render())

	pipeTable := table.NewWriter()
	pipeTable.SetTitle("Pipeline")
	pipeTable.AppendHeader(table.Row{"PC", "Fetch", "Execute", "WriteBack", "SkipElse", "ElseExpected"})
	pipeTable.AppendRow(table.Row{
		state.PC,
		slotString(state.fetch),
		slotString(state.execute),
		wbString(state.wb),
		state.skipElse,
		state.elseExpected,
	})

	fmt.Println(pipeTable.Render())
	fmt.Println()
}

func slotString(s slot) string {
	if !s.valid {
		return "-"
	}

	return s.entry.Inst.String()
}

func wbString(wb writeback) string {
	switch wb.kind {
	case wbWrite:
		return fmt.Sprintf("%s <- %d", wb.reg, wb.value)
	case wbPrint:
		return "print " + wb.reg.String()
	default:
		return "-"
	}
}
