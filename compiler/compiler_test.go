package compiler_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/simxl/compiler"
	"github.com/sarchlab/simxl/instr"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func compile(src string) string {
	out, _, err := compiler.Compile(src)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return out
}

var _ = Describe("Compile", func() {
	Context("declarations", func() {
		It("should annotate a new variable", func() {
			Expect(compile("var x\n")).To(Equal("# var x -> R0\n"))
		})

		It("should ignore a re-declaration", func() {
			Expect(compile(lines("var x", "var y", "var x"))).
				To(Equal(lines("# var x -> R0", "# var y -> R1")))
		})

		It("should read input into a register", func() {
			Expect(compile(lines("var a", "input b", "input a"))).
				To(Equal(lines("# var a -> R0", "INPUT R1", "INPUT R0")))
		})
	})

	Context("assignments", func() {
		It("should fold two literals", func() {
			Expect(compile("x = 6 / 3\n")).To(Equal("WRITE R0, 2\n"))
		})

		It("should fold division by zero to zero", func() {
			Expect(compile("x = 5 / 0\n")).To(Equal("WRITE R0, 0\n"))
		})

		It("should fold 3 + 4 after a declaration", func() {
			Expect(compile(lines("var x", "x = 3 + 4"))).
				To(Equal(lines("# var x -> R0", "WRITE R0, 7")))
		})

		It("should write a literal", func() {
			Expect(compile("x = 12;\n")).To(Equal("WRITE R0, 12\n"))
		})

		It("should subtract a negative literal from the empty-named variable", func() {
			Expect(compile("x = -12;\n")).
				To(Equal(lines("WRITE R7, 12", "SUB R0, R1, R7")))
		})

		It("should bind the empty name for a leading minus", func() {
			out, symbols, err := compiler.Compile("x = -5\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(lines("WRITE R7, 5", "SUB R0, R1, R7")))
			Expect(symbols.Bindings()).To(Equal([]compiler.Binding{
				{Name: "x", Reg: 0},
				{Name: "", Reg: 1},
			}))
		})

		It("should stage a literal before a missing right operand", func() {
			Expect(compile("x = 5 -\n")).
				To(Equal(lines("WRITE R7, 5", "SUB R0, R7, R1")))
		})

		It("should copy a variable", func() {
			Expect(compile(lines("var a", "b = a"))).
				To(Equal(lines("# var a -> R0", "WRITE R1, R0")))
		})

		It("should stage a literal operand in the scratch register", func() {
			Expect(compile(lines("var a", "b = a + 1"))).
				To(Equal(lines(
					"# var a -> R0",
					"WRITE R7, 1",
					"ADD R1, R0, R7",
				)))
		})

		It("should stage a left literal before resolving the right variable", func() {
			Expect(compile("y = 10 - x\n")).
				To(Equal(lines("WRITE R7, 10", "SUB R0, R7, R1")))
		})

		It("should map every operator", func() {
			Expect(compile(lines("c = a + b", "c = a - b", "c = a * b", "c = a / b"))).
				To(Equal(lines(
					"ADD R0, R1, R2",
					"SUB R0, R1, R2",
					"MUL R0, R1, R2",
					"DIV R0, R1, R2",
				)))
		})

		It("should only honor the first operator", func() {
			Expect(compile("x = a * b + c\n")).
				To(Equal("MUL R0, R1, R2\n"))
		})

		It("should treat a variable named like else as an assignment", func() {
			Expect(compile(lines("elsewhere = 5", "else"))).
				To(Equal(lines("WRITE R0, 5", "ELSE")))
		})

		It("should bind the destination before the operands", func() {
			_, symbols, err := compiler.Compile("z = x + y\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(symbols.Bindings()).To(Equal([]compiler.Binding{
				{Name: "z", Reg: 0},
				{Name: "x", Reg: 1},
				{Name: "y", Reg: 2},
			}))
		})
	})

	Context("print", func() {
		It("should print a variable", func() {
			Expect(compile(lines("var x", "print x"))).
				To(Equal(lines("# var x -> R0", "PRINT R0")))
		})

		It("should print a string one character at a time", func() {
			Expect(compile(`print "hi"` + "\n")).To(Equal(lines(
				`WRITE R7, "h"`, "PRINT R7",
				`WRITE R7, "i"`, "PRINT R7",
			)))
		})

		It("should escape quotes and backslashes", func() {
			out := compile(`print "he said \"hi\""` + "\n")

			want := []string{}
			for _, ch := range []string{"h", "e", " ", "s", "a", "i", "d", " ",
				`\\`, `\"`, "h", "i", `\\`, `\"`} {
				want = append(want, `WRITE R7, "`+ch+`"`, "PRINT R7")
			}
			Expect(out).To(Equal(lines(want...)))
		})

		It("should drop NUL characters", func() {
			Expect(compile("print \"a\x00b\"\n")).To(Equal(lines(
				`WRITE R7, "a"`, "PRINT R7",
				`WRITE R7, "b"`, "PRINT R7",
			)))
		})

		It("should strip a trailing degree marker", func() {
			Expect(compile("print \"5\xc2\xb0/\"\n")).To(Equal(lines(
				`WRITE R7, "5"`, "PRINT R7",
			)))
		})

		It("should emit nothing for an empty string", func() {
			Expect(compile(`print ""` + "\n")).To(BeEmpty())
		})

		It("should keep multi-byte characters whole", func() {
			Expect(compile(`print "é"` + "\n")).To(Equal(lines(
				`WRITE R7, "é"`, "PRINT R7",
			)))
		})
	})

	Context("conditionals", func() {
		It("should allocate a new left variable", func() {
			Expect(compile("if count > 5\n")).To(Equal("IF R0 > 5\n"))
		})

		It("should resolve a variable on the right", func() {
			Expect(compile(lines("var a", "if a <= b", "print a", "else", "print b"))).
				To(Equal(lines(
					"# var a -> R0",
					"IF R0 <= R1",
					"PRINT R0",
					"ELSE",
					"PRINT R1",
				)))
		})

		It("should keep the comparator verbatim", func() {
			Expect(compile("if a ~ 1\n")).To(Equal("IF R0 ~ 1\n"))
		})

		It("should emit ELSE without a preceding IF", func() {
			Expect(compile("else\n")).To(Equal("ELSE\n"))
		})
	})

	It("should produce identical output for the same source", func() {
		src := lines("var x", "input y", "x = y * 2", `print "x="`, "print x", "if x > 10", "print y")
		Expect(compile(src)).To(Equal(compile(src)))
	})

	It("should skip blank and comment lines", func() {
		Expect(compile(lines("", "# header", "   ", "var x ; # trailing"))).
			To(Equal("# var x -> R0\n"))
	})

	It("should accept a last line without a newline", func() {
		Expect(compile("var x\nprint x")).To(Equal(lines("# var x -> R0", "PRINT R0")))
	})

	Context("failures", func() {
		It("should reject an eighth variable with its line number", func() {
			src := lines("var a", "var b", "var c", "var d", "var e", "var f", "var g", "h = 1")
			out, _, err := compiler.Compile(src)

			Expect(err).To(MatchError(compiler.ErrCapacityExceeded))
			var lerr *compiler.LineError
			Expect(errors.As(err, &lerr)).To(BeTrue())
			Expect(lerr.Line).To(Equal(8))
			Expect(strings.Count(out, "\n")).To(Equal(7))
		})

		It("should count variables from every statement kind", func() {
			src := lines("var a", "input b", "print c", "if d > e", "f = g")
			_, symbols, err := compiler.Compile(src)
			Expect(err).NotTo(HaveOccurred())
			Expect(symbols.Len()).To(Equal(compiler.Capacity))

			_, _, err = compiler.Compile(src + "h = 1\n")
			Expect(err).To(MatchError(compiler.ErrCapacityExceeded))
		})

		It("should reject an assignment with no right-hand side", func() {
			_, _, err := compiler.Compile("y =\n")
			Expect(err).To(MatchError(compiler.ErrSyntax))
		})

		It("should reject an unknown statement and stop", func() {
			out, _, err := compiler.Compile(lines("var x", "while x", "var y"))
			Expect(err).To(MatchError(compiler.ErrSyntax))
			Expect(out).To(Equal("# var x -> R0\n"))
		})

		It("should reject an unterminated string", func() {
			_, _, err := compiler.Compile(`print "oops` + "\n")
			Expect(err).To(MatchError(compiler.ErrUnterminatedString))
		})

		It("should reject a malformed if", func() {
			_, _, err := compiler.Compile("if x\n")
			Expect(err).To(MatchError(compiler.ErrSyntax))
		})
	})

	It("should use the scratch register only for staging", func() {
		out := compile(lines("a = 1 + b", `print "!"`))
		for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
			inst, err := instr.Decode(l)
			Expect(err).NotTo(HaveOccurred())
			if w, ok := inst.(instr.Write); ok && w.Dst == instr.Scratch {
				continue
			}
			if b, ok := inst.(instr.BinaryOp); ok {
				Expect(b.Dst).NotTo(Equal(instr.Scratch))
			}
		}
	})
})
