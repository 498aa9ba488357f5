package core

import "github.com/sarchlab/simxl/instr"

//go:generate mockgen -write_package_comment=false -package=$GOPACKAGE -destination=mock_console_test.go github.com/sarchlab/simxl/core Console

// Console is the I/O device of the core.
type Console interface {
	// Input returns the value an INPUT instruction stores in reg.
	Input(reg instr.Register) (int64, error)

	// Print shows the text produced by a PRINT instruction.
	Print(text string)
}

type nullConsole struct{}

func (nullConsole) Input(instr.Register) (int64, error) { return 0, nil }

func (nullConsole) Print(string) {}
