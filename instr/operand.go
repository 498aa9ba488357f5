package instr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// NumRegisters is the size of the register file.
const NumRegisters = 8

// Scratch is the register used to stage literal operands and the characters
// of printed strings.
const Scratch Register = 7

// Register identifies one of the machine registers R0-R7.
type Register int

func (r Register) String() string {
	return "R" + strconv.Itoa(int(r))
}

// Valid reports whether r names an existing register.
func (r Register) Valid() bool {
	return r >= 0 && r < NumRegisters
}

// Value is the source operand of a Write or the right side of an If.
type Value interface {
	fmt.Stringer
	isValue()
}

func (Register) isValue() {}

// Imm is an integer immediate.
type Imm int64

func (i Imm) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (Imm) isValue() {}

// Char is a quoted character. Text holds what appears between the quotes:
// either the character itself or a backslash escape.
type Char struct {
	Text string
}

// CharOf quotes one character of a printed string. Backslashes and double
// quotes are escaped.
func CharOf(ch string) Char {
	if ch == `\` || ch == `"` {
		return Char{Text: `\` + ch}
	}

	return Char{Text: ch}
}

func (c Char) String() string {
	return `"` + c.Text + `"`
}

// Code returns the numeric value the machine stores for the character.
func (c Char) Code() int64 {
	text := c.Text
	if strings.HasPrefix(text, `\`) && len(text) > 1 {
		text = text[1:]
	}

	if text == "" {
		return 0
	}

	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError && size == 1 {
		return int64(text[0])
	}

	return int64(r)
}

func (Char) isValue() {}

// ParseRegister parses "R<n>" (case-insensitive) into a register.
func ParseRegister(s string) (Register, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || (s[0] != 'R' && s[0] != 'r') {
		return 0, false
	}

	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, false
	}

	reg := Register(n)
	if !reg.Valid() {
		return 0, false
	}

	return reg, true
}
