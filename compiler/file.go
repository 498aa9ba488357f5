package compiler

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputExt is the extension of translated programs.
const DefaultOutputExt = ".test_ins"

// OutputPath derives the output file name by replacing the final extension
// of input with ext, or appending ext when input has none.
func OutputPath(input, ext string) string {
	if ext == "" {
		ext = DefaultOutputExt
	}

	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

// CompileFile translates the file at input into the file named by
// OutputPath. Both files are closed before it returns. On a translation
// error the partial output is left in place. An input that already carries
// the output extension is refused.
func CompileFile(input, ext string) (output string, symbols *SymbolTable, err error) {
	output = OutputPath(input, ext)
	if filepath.Clean(output) == filepath.Clean(input) {
		return output, nil, fmt.Errorf("%w: output %s would overwrite the input", ErrIO, output)
	}

	in, err := os.Open(input)
	if err != nil {
		return output, nil, fmt.Errorf("%w: open input: %v", ErrIO, err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return output, nil, fmt.Errorf("%w: open output: %v", ErrIO, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close output: %v", ErrIO, cerr)
		}
	}()

	w := bufio.NewWriter(out)
	defer func() {
		if ferr := w.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("%w: write output: %v", ErrIO, ferr)
		}
	}()

	c := New(w)
	err = c.Run(in)

	return output, c.Symbols(), err
}
