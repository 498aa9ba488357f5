package compiler_test

import (
	"bytes"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/simxl/compiler"
)

var _ = Describe("Trace records", func() {
	var buf bytes.Buffer

	BeforeEach(func() {
		buf.Reset()
	})

	AfterEach(func() {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("should stay hidden at the default warn level", func() {
		slog.SetDefault(slog.New(slog.NewTextHandler(&buf,
			&slog.HandlerOptions{Level: slog.LevelWarn})))

		compile("x = 1\n")

		Expect(buf.String()).To(BeEmpty())
	})

	It("should log allocations and statements at trace level", func() {
		slog.SetDefault(slog.New(slog.NewTextHandler(&buf,
			&slog.HandlerOptions{Level: compiler.LevelTrace})))

		compile("x = 1\n")

		Expect(buf.String()).To(ContainSubstring("msg=Allocate"))
		Expect(buf.String()).To(ContainSubstring("msg=Translate"))
	})
})
