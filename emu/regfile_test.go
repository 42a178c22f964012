package emu_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/emu"
	"github.com/sarchlab/pipesim/insts"
)

func TestEmu(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Emu Suite")
}

var _ = Describe("RegisterFile", func() {
	var regs *emu.RegisterFile

	BeforeEach(func() {
		regs = emu.NewRegisterFile()
	})

	It("starts all registers at zero and not busy", func() {
		t0 := insts.RegisterName{Bank: insts.BankT, Index: 0}
		Expect(regs.Read(t0)).To(Equal(int32(0)))
		Expect(regs.IsBusy(t0)).To(BeFalse())
	})

	It("always reads $zero as 0", func() {
		Expect(regs.Read(insts.Zero)).To(Equal(int32(0)))
	})

	It("ignores writes to $zero", func() {
		regs.Write(insts.Zero, 42)
		Expect(regs.Read(insts.Zero)).To(Equal(int32(0)))
	})

	It("never marks $zero as busy", func() {
		regs.SetBusy(insts.Zero)
		Expect(regs.IsBusy(insts.Zero)).To(BeFalse())
	})

	It("round-trips a write through both banks", func() {
		s3 := insts.RegisterName{Bank: insts.BankS, Index: 3}
		regs.Write(s3, -7)
		Expect(regs.Read(s3)).To(Equal(int32(-7)))
		t4 := insts.RegisterName{Bank: insts.BankT, Index: 4}
		regs.Write(t4, 11)
		Expect(regs.Read(t4)).To(Equal(int32(11)))
	})

	It("tracks busy state independently per register", func() {
		t1 := insts.RegisterName{Bank: insts.BankT, Index: 1}
		t2 := insts.RegisterName{Bank: insts.BankT, Index: 2}
		regs.SetBusy(t1)
		Expect(regs.IsBusy(t1)).To(BeTrue())
		Expect(regs.IsBusy(t2)).To(BeFalse())
		regs.ClearBusy(t1)
		Expect(regs.IsBusy(t1)).To(BeFalse())
	})
})
