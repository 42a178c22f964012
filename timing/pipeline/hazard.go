package pipeline

import (
	"github.com/sarchlab/pipesim/emu"
	"github.com/sarchlab/pipesim/insts"
)

// HazardUnit inspects the register busy flags against the operand
// registers of the instruction entering its hazard-check stage and
// decides whether to proceed, stall, or insert one or two bubbles.
type HazardUnit struct{}

// NewHazardUnit creates a new hazard detection unit.
func NewHazardUnit() *HazardUnit {
	return &HazardUnit{}
}

// Action is the hazard controller's decision for a slot entering its
// hazard-check stage.
type Action uint8

// Hazard controller actions, in priority order.
const (
	ActionProceed Action = iota
	ActionBubble2
	ActionBubble1
	ActionStall
)

// operandRegisters returns the registers hazard detection must check
// for inst: source A/B for arithmetic, destination/source A for
// branches (the two compared registers). $zero never participates.
func operandRegisters(inst insts.Instruction) []insts.RegisterName {
	var regs []insts.RegisterName
	if inst.Op.IsBranch() {
		if inst.Dest.IsRegister() {
			regs = append(regs, inst.Dest.Reg)
		}
		if inst.SrcA.IsRegister() {
			regs = append(regs, inst.SrcA.Reg)
		}
		return regs
	}

	if inst.SrcA.IsRegister() {
		regs = append(regs, inst.SrcA.Reg)
	}
	if inst.SrcB.IsRegister() {
		regs = append(regs, inst.SrcB.Reg)
	}
	return regs
}

// producer returns the destination register of slot and true, if the
// slot holds a non-branch, non-nop instruction; otherwise ok is false.
func producer(slot *Slot) (name insts.RegisterName, ok bool) {
	inst := slot.Inst
	if inst.IsNop() || inst.Op.IsBranch() || !inst.Dest.IsRegister() {
		return insts.RegisterName{}, false
	}
	return inst.Dest.Reg, true
}

// Evaluate decides the hazard controller's action for the slot at idx
// within slots, given the current register busy flags. prev1 is
// slots[idx-1], prev2 is slots[idx-2]; neither may exist near the
// start of the program.
func (h *HazardUnit) Evaluate(slots []*Slot, regs *emu.RegisterFile, idx int) Action {
	inst := slots[idx].Inst
	for _, reg := range operandRegisters(inst) {
		if !regs.IsBusy(reg) {
			continue
		}

		var prev1, prev2 *Slot
		if idx-1 >= 0 {
			prev1 = slots[idx-1]
		}
		if idx-2 >= 0 {
			prev2 = slots[idx-2]
		}

		if prev1 != nil {
			if p, ok := producer(prev1); ok && p == reg {
				return ActionBubble2
			}
		}
		if prev2 != nil && prev1 != nil && !prev1.Inst.Op.IsBranch() {
			if p, ok := producer(prev2); ok && p == reg {
				return ActionBubble1
			}
		}
		return ActionStall
	}

	return ActionProceed
}

// HazardStage returns the ordinal at which inst undergoes its hazard
// check: EX for arithmetic, MEM for branches.
func HazardStage(op insts.Opcode) Stage {
	if op.IsBranch() {
		return StageMEM
	}
	return StageEX
}
