package instr

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Comparators lists the comparison operators the machine can evaluate.
var Comparators = []string{"==", "!=", "<", "<=", ">", ">="}

var ifPattern = regexp.MustCompile(`^(\S+?)\s*(==|!=|<=|>=|<|>)\s*(.+)$`)

// DecodeError reports a line of a .test_ins file that cannot be decoded.
type DecodeError struct {
	Line   int
	Text   string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}

	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// Entry is a decoded instruction together with the line it came from.
type Entry struct {
	Line int
	Inst Instruction
}

// IsComparator reports whether op is one of the supported comparators.
func IsComparator(op string) bool {
	for _, c := range Comparators {
		if c == op {
			return true
		}
	}

	return false
}

// DecodeAll decodes every instruction of a .test_ins stream. Blank lines and
// comments are skipped.
func DecodeAll(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		text := stripComment(scanner.Text())
		if text == "" {
			continue
		}

		inst, err := Decode(text)
		if err != nil {
			if de, ok := err.(*DecodeError); ok {
				de.Line = lineNo
			}
			return entries, err
		}

		entries = append(entries, Entry{Line: lineNo, Inst: inst})
	}

	if err := scanner.Err(); err != nil {
		return entries, err
	}

	return entries, nil
}

// stripComment removes a # comment that is not inside a quoted character.
func stripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if inQuote {
				i++
			}
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return strings.TrimSpace(line[:i])
			}
		}
	}

	return strings.TrimSpace(line)
}

// Decode parses a single instruction line.
func Decode(line string) (Instruction, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, &DecodeError{Text: line, Reason: "empty instruction"}
	}

	opcode, rest, _ := strings.Cut(line, " ")
	opcode = strings.ToUpper(strings.TrimSpace(opcode))
	rest = strings.TrimSpace(rest)

	switch opcode {
	case "WRITE":
		return decodeWrite(line, rest)
	case "ADD", "SUB", "MUL", "DIV":
		return decodeBinary(line, opcode, rest)
	case "PRINT":
		reg, err := decodeRegister(line, rest)
		if err != nil {
			return nil, err
		}
		return Print{Src: reg}, nil
	case "INPUT":
		reg, err := decodeRegister(line, rest)
		if err != nil {
			return nil, err
		}
		return Input{Dst: reg}, nil
	case "IF":
		return decodeIf(line, rest)
	case "ELSE":
		if rest != "" {
			return nil, &DecodeError{Text: line, Reason: "ELSE takes no operands"}
		}
		return Else{}, nil
	}

	return nil, &DecodeError{Text: line, Reason: "unknown opcode " + opcode}
}

func decodeRegister(line, s string) (Register, error) {
	if s == "" {
		return 0, &DecodeError{Text: line, Reason: "missing register operand"}
	}

	reg, ok := ParseRegister(s)
	if !ok {
		return 0, &DecodeError{Text: line, Reason: "invalid register " + s}
	}

	return reg, nil
}

func decodeWrite(line, rest string) (Instruction, error) {
	if rest == "" {
		return nil, &DecodeError{Text: line, Reason: "WRITE requires a register and a value"}
	}

	var dst, src string
	if d, s, found := strings.Cut(rest, ","); found {
		dst, src = strings.TrimSpace(d), strings.TrimSpace(s)
	} else {
		fields := strings.Fields(rest)
		dst = fields[0]
		if len(fields) > 1 {
			src = strings.Join(fields[1:], " ")
		}
	}

	reg, err := decodeRegister(line, dst)
	if err != nil {
		return nil, err
	}

	if src == "" {
		return nil, &DecodeError{Text: line, Reason: "WRITE requires a value"}
	}

	val, err := decodeValue(line, src)
	if err != nil {
		return nil, err
	}

	return Write{Dst: reg, Src: val}, nil
}

func decodeValue(line, s string) (Value, error) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return Char{Text: s[1 : len(s)-1]}, nil
	}

	if reg, ok := ParseRegister(s); ok {
		return reg, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, &DecodeError{Text: line, Reason: "cannot parse value " + s}
	}

	return Imm(n), nil
}

func decodeBinary(line, opcode, rest string) (Instruction, error) {
	var tokens []string
	for _, t := range strings.Split(rest, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}

	if len(tokens) == 1 {
		tokens = strings.Fields(rest)
	}

	if len(tokens) != 3 {
		return nil, &DecodeError{
			Text:   line,
			Reason: opcode + " requires 3 operands: dest, src1, src2",
		}
	}

	var regs [3]Register
	for i, t := range tokens {
		reg, err := decodeRegister(line, t)
		if err != nil {
			return nil, err
		}
		regs[i] = reg
	}

	kind := map[string]OpKind{"ADD": Add, "SUB": Sub, "MUL": Mul, "DIV": Div}[opcode]

	return BinaryOp{Kind: kind, Dst: regs[0], Left: regs[1], Right: regs[2]}, nil
}

func decodeIf(line, rest string) (Instruction, error) {
	m := ifPattern.FindStringSubmatch(rest)
	if m == nil {
		return nil, &DecodeError{Text: line, Reason: "invalid IF syntax, use IF <reg> <op> <value>"}
	}

	left, err := decodeRegister(line, m[1])
	if err != nil {
		return nil, err
	}

	right, err := decodeValue(line, strings.TrimSpace(m[3]))
	if err != nil {
		return nil, err
	}

	return If{Left: left, Op: m[2], Right: right}, nil
}
