package core

import (
	"errors"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/simxl/instr"
)

var _ = Describe("InstEmulator", func() {
	var (
		mockCtrl *gomock.Controller
		console  *MockConsole
		ie       instEmulator
		s        coreState
	)

	entry := func(inst instr.Instruction) instr.Entry {
		return instr.Entry{Line: 1, Inst: inst}
	}

	next := func(inst instr.Instruction) slot {
		return slot{valid: true, entry: instr.Entry{Line: 2, Inst: inst}}
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		console = NewMockConsole(mockCtrl)
		ie = instEmulator{console: console}
		s = coreState{}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("Writes", func() {
		It("should defer an immediate write to writeback", func() {
			ie.RunInst(entry(instr.Write{Dst: 3, Src: instr.Imm(-4)}), &s)

			Expect(s.Registers[3]).To(Equal(int64(0)))
			Expect(s.wb).To(Equal(writeback{kind: wbWrite, reg: 3, value: -4, line: 1}))
			Expect(s.Retired).To(Equal(1))
		})

		It("should read a register source at execute time", func() {
			s.Registers[1] = 11
			ie.RunInst(entry(instr.Write{Dst: 2, Src: instr.Register(1)}), &s)
			s.Registers[1] = 0

			Expect(ie.writeBack(&s)).To(BeTrue())
			Expect(s.Registers[2]).To(Equal(int64(11)))
		})

		It("should store the code of a character", func() {
			ie.RunInst(entry(instr.Write{Dst: 7, Src: instr.CharOf(`"`)}), &s)
			ie.writeBack(&s)

			Expect(s.Registers[7]).To(Equal(int64('"')))
		})
	})

	Context("Arithmetic", func() {
		DescribeTable("binary ops",
			func(kind instr.OpKind, a, b, want int64) {
				s.Registers[0] = a
				s.Registers[1] = b
				ie.RunInst(entry(instr.BinaryOp{Kind: kind, Dst: 2, Left: 0, Right: 1}), &s)
				ie.writeBack(&s)

				Expect(s.Registers[2]).To(Equal(want))
			},
			Entry("add", instr.Add, int64(3), int64(4), int64(7)),
			Entry("sub", instr.Sub, int64(3), int64(4), int64(-1)),
			Entry("mul", instr.Mul, int64(-3), int64(4), int64(-12)),
			Entry("div truncates", instr.Div, int64(-7), int64(2), int64(-3)),
			Entry("div by zero", instr.Div, int64(7), int64(0), int64(0)),
		)
	})

	Context("Console", func() {
		It("should write INPUT immediately", func() {
			console.EXPECT().Input(instr.Register(4)).Return(int64(42), nil)

			ie.RunInst(entry(instr.Input{Dst: 4}), &s)

			Expect(s.Registers[4]).To(Equal(int64(42)))
			Expect(s.wb.kind).To(Equal(wbNone))
		})

		It("should store 0 when the input cannot be read", func() {
			s.Registers[4] = 9
			console.EXPECT().Input(instr.Register(4)).Return(int64(17), errors.New("bad"))

			ie.RunInst(entry(instr.Input{Dst: 4}), &s)

			Expect(s.Registers[4]).To(Equal(int64(0)))
		})

		It("should print the register value at writeback", func() {
			s.Registers[7] = 'h'
			ie.RunInst(entry(instr.Print{Src: 7}), &s)

			console.EXPECT().Print("h")
			Expect(ie.writeBack(&s)).To(BeTrue())
			Expect(ie.writeBack(&s)).To(BeFalse())
		})
	})

	Context("Predication", func() {
		BeforeEach(func() {
			s.Registers[0] = 5
		})

		It("should let the next instruction run when IF holds", func() {
			s.fetch = next(instr.Print{Src: 0})
			ie.RunInst(entry(instr.If{Left: 0, Op: "==", Right: instr.Imm(5)}), &s)

			Expect(s.fetch.valid).To(BeTrue())
			Expect(s.skipElse).To(BeTrue())
			Expect(s.elseExpected).To(BeFalse())
		})

		It("should squash the next instruction when IF fails", func() {
			s.fetch = next(instr.Print{Src: 0})
			ie.RunInst(entry(instr.If{Left: 0, Op: ">", Right: instr.Register(0)}), &s)

			Expect(s.fetch.valid).To(BeFalse())
			Expect(s.Squashed).To(Equal(1))
			Expect(s.elseExpected).To(BeTrue())
		})

		It("should squash after ELSE when the IF held", func() {
			s.skipElse = true
			s.fetch = next(instr.Print{Src: 0})
			ie.RunInst(entry(instr.Else{}), &s)

			Expect(s.fetch.valid).To(BeFalse())
			Expect(s.skipElse).To(BeFalse())
		})

		It("should run after ELSE when the IF failed", func() {
			s.elseExpected = true
			s.fetch = next(instr.Print{Src: 0})
			ie.RunInst(entry(instr.Else{}), &s)

			Expect(s.fetch.valid).To(BeTrue())
			Expect(s.elseExpected).To(BeFalse())
		})

		It("should squash after an ELSE with no IF", func() {
			s.fetch = next(instr.Print{Src: 0})
			ie.RunInst(entry(instr.Else{}), &s)

			Expect(s.fetch.valid).To(BeFalse())
			Expect(s.Squashed).To(Equal(1))
		})

		DescribeTable("comparators",
			func(a int64, op string, b int64, want bool) {
				Expect(compare(a, op, b)).To(Equal(want))
			},
			Entry("==", int64(1), "==", int64(1), true),
			Entry("!=", int64(1), "!=", int64(1), false),
			Entry("<", int64(-2), "<", int64(1), true),
			Entry(">", int64(1), ">", int64(1), false),
			Entry("<=", int64(1), "<=", int64(1), true),
			Entry(">=", int64(0), ">=", int64(1), false),
			Entry("unknown", int64(1), "=<", int64(1), false),
		)
	})

	DescribeTable("FormatPrint",
		func(v int64, want string) {
			Expect(FormatPrint(v)).To(Equal(want))
		},
		Entry("space", int64(32), " "),
		Entry("tilde", int64('~'), "~"),
		Entry("newline code", int64(10), "10"),
		Entry("DEL", int64(127), "127"),
		Entry("negative", int64(-3), "-3"),
	)
})
