package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/emu"
	"github.com/sarchlab/pipesim/insts"
)

var _ = Describe("Execute", func() {
	DescribeTable("arithmetic results",
		func(op insts.Opcode, a, b, want int32) {
			Expect(emu.Execute(op, a, b)).To(Equal(want))
		},
		Entry("add", insts.OpAdd, int32(2), int32(3), int32(5)),
		Entry("addi", insts.OpAddi, int32(5), int32(3), int32(8)),
		Entry("and", insts.OpAnd, int32(0b110), int32(0b011), int32(0b010)),
		Entry("or", insts.OpOr, int32(0b100), int32(0b010), int32(0b110)),
		Entry("slt true", insts.OpSlt, int32(1), int32(2), int32(1)),
		Entry("slt false", insts.OpSlt, int32(2), int32(1), int32(0)),
		Entry("slti equal is not less-than", insts.OpSlti, int32(3), int32(3), int32(0)),
	)

	It("wraps addition modulo 2^32", func() {
		got := emu.Execute(insts.OpAdd, int32(2147483647), int32(1))
		Expect(got).To(Equal(int32(-2147483648)))
	})
})
