package compiler

import (
	"fmt"
	"strings"
)

// Statement is the parsed form of one normalized source line.
type Statement interface {
	isStatement()
}

// VarDecl declares a variable.
type VarDecl struct {
	Name string
}

// InputDecl reads a variable from the console.
type InputDecl struct {
	Name string
}

// PrintString prints a string literal character by character.
type PrintString struct {
	Text string
}

// PrintVar prints the value of a variable.
type PrintVar struct {
	Name string
}

// IfStmt guards the next statement with a comparison.
type IfStmt struct {
	Left  string
	Op    string
	Right Operand
}

// ElseStmt guards the next statement with the negated last comparison.
type ElseStmt struct{}

// Assignment stores the value of an expression in a variable.
type Assignment struct {
	Dest string
	Expr Expression
}

func (VarDecl) isStatement()     {}
func (InputDecl) isStatement()   {}
func (PrintString) isStatement() {}
func (PrintVar) isStatement()    {}
func (IfStmt) isStatement()      {}
func (ElseStmt) isStatement()    {}
func (Assignment) isStatement()  {}

// ParseStatement classifies a normalized line. Keywords are matched without
// regard to case; any other line containing '=' is an assignment.
func ParseStatement(line string) (Statement, error) {
	switch {
	case hasKeyword(line, "var"):
		return parseNamed(line, "var", func(name string) Statement {
			return VarDecl{Name: name}
		})
	case hasKeyword(line, "input"):
		return parseNamed(line, "input", func(name string) Statement {
			return InputDecl{Name: name}
		})
	case hasKeyword(line, "print"):
		return parsePrint(line)
	case hasKeyword(line, "if"):
		return parseIf(line)
	case isElse(line):
		return ElseStmt{}, nil
	case strings.Contains(line, "="):
		return parseAssignment(line)
	}

	return nil, fmt.Errorf("%w: unknown or unsupported line", ErrSyntax)
}

// hasKeyword reports whether line starts with keyword followed by
// whitespace.
func hasKeyword(line, keyword string) bool {
	n := len(keyword)
	if len(line) <= n || !strings.EqualFold(line[:n], keyword) {
		return false
	}

	return isSpace(line[n])
}

func isElse(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && strings.EqualFold(fields[0], "else")
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}

func parseNamed(line, keyword string, build func(string) Statement) (Statement, error) {
	fields := strings.Fields(line[len(keyword):])
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s requires a variable name", ErrSyntax, keyword)
	}

	return build(fields[0]), nil
}

func parsePrint(line string) (Statement, error) {
	first := strings.IndexByte(line, '"')
	if first < 0 {
		return parseNamed(line, "print", func(name string) Statement {
			return PrintVar{Name: name}
		})
	}

	last := strings.LastIndexByte(line, '"')
	if last == first {
		return nil, ErrUnterminatedString
	}

	return PrintString{Text: line[first+1 : last]}, nil
}

func parseIf(line string) (Statement, error) {
	fields := strings.Fields(line[len("if"):])
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: invalid if syntax, use if <var> <op> <operand>", ErrSyntax)
	}

	return IfStmt{
		Left:  fields[0],
		Op:    fields[1],
		Right: Classify(fields[2]),
	}, nil
}

func parseAssignment(line string) (Statement, error) {
	dest, expr, _ := strings.Cut(line, "=")
	dest = stripTerminator(dest)
	expr = stripTerminator(expr)

	if dest == "" || expr == "" {
		return nil, fmt.Errorf("%w: bad assignment line", ErrSyntax)
	}

	e, err := ParseExpression(expr)
	if err != nil {
		return nil, err
	}

	return Assignment{Dest: dest, Expr: e}, nil
}
