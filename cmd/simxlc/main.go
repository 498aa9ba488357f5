// Command simxlc translates a .simxl source file into .test_ins assembly.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sarchlab/simxl/compiler"
	"github.com/sarchlab/simxl/config"
	"github.com/tebeka/atexit"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s <input.simxl>\n", filepath.Base(os.Args[0]))
		atexit.Exit(1)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	closeLog, err := cfg.SetupLogging(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}
	atexit.Register(func() { closeLog() })

	input := os.Args[1]
	output, symbols, err := compiler.CompileFile(input, cfg.OutputExt)
	if err != nil {
		slog.Error("Compilation failed", "Input", input, "Error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	fmt.Printf("Compiled %s -> %s\n", input, output)
	fmt.Println(symbols.Table())

	atexit.Exit(0)
}
