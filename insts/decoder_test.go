package insts_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/insts"
)

func TestInsts(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Insts Suite")
}

var _ = Describe("Decoder", func() {
	var d *insts.Decoder

	BeforeEach(func() {
		d = insts.NewDecoder()
	})

	It("decodes nop with no operands", func() {
		inst, err := d.Decode("nop")
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Op).To(Equal(insts.OpNop))
	})

	DescribeTable("register-form arithmetic",
		func(line string, op insts.Opcode) {
			inst, err := d.Decode(line)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(op))
			Expect(inst.Dest.Reg).To(Equal(insts.RegisterName{Bank: insts.BankT, Index: 0}))
			Expect(inst.SrcA.Reg).To(Equal(insts.RegisterName{Bank: insts.BankT, Index: 1}))
			Expect(inst.SrcB.Kind).To(Equal(insts.OperandRegister))
		},
		Entry("add", "add $t0,$t1,$t2", insts.OpAdd),
		Entry("and", "and $t0,$t1,$t2", insts.OpAnd),
		Entry("or", "or $t0,$t1,$t2", insts.OpOr),
		Entry("slt", "slt $t0,$t1,$t2", insts.OpSlt),
	)

	DescribeTable("immediate-form arithmetic",
		func(line string, op insts.Opcode, want int32) {
			inst, err := d.Decode(line)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(op))
			Expect(inst.SrcB.Kind).To(Equal(insts.OperandImmediate))
			Expect(inst.SrcB.Imm).To(Equal(want))
		},
		Entry("addi positive", "addi $t0,$zero,5", insts.OpAddi, int32(5)),
		Entry("addi negative", "addi $t0,$zero,-3", insts.OpAddi, int32(-3)),
		Entry("andi", "andi $t0,$t1,3", insts.OpAndi, int32(3)),
		Entry("ori", "ori $t0,$t1,6", insts.OpOri, int32(6)),
		Entry("slti", "slti $t0,$t1,1", insts.OpSlti, int32(1)),
	)

	It("decodes a branch with a label third operand", func() {
		inst, err := d.Decode("beq $t0,$t1,skip")
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Op).To(Equal(insts.OpBeq))
		Expect(inst.SrcB.Kind).To(Equal(insts.OperandLabel))
		Expect(inst.SrcB.Label).To(Equal("skip"))
	})

	It("decodes bne", func() {
		inst, err := d.Decode("bne $t0,$t1,skip")
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Op).To(Equal(insts.OpBne))
	})

	It("rejects an unknown opcode", func() {
		_, err := d.Decode("sub $t0,$t1,$t2")
		Expect(err).To(HaveOccurred())
	})

	It("rejects the wrong operand count", func() {
		_, err := d.Decode("add $t0,$t1")
		Expect(err).To(HaveOccurred())
	})

	It("rejects interior whitespace around commas", func() {
		_, err := d.Decode("add $t0, $t1,$t2")
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("register parsing",
		func(text string, want insts.RegisterName) {
			got, err := insts.ParseRegisterName(text)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("$zero", "$zero", insts.Zero),
		Entry("$t0", "$t0", insts.RegisterName{Bank: insts.BankT, Index: 0}),
		Entry("$t9", "$t9", insts.RegisterName{Bank: insts.BankT, Index: 9}),
		Entry("$s0", "$s0", insts.RegisterName{Bank: insts.BankS, Index: 0}),
		Entry("$s7", "$s7", insts.RegisterName{Bank: insts.BankS, Index: 7}),
	)

	DescribeTable("register parsing rejects out-of-range indices",
		func(text string) {
			_, err := insts.ParseRegisterName(text)
			Expect(err).To(HaveOccurred())
		},
		Entry("$t10", "$t10"),
		Entry("$s8", "$s8"),
		Entry("garbage", "$x0"),
	)
})
