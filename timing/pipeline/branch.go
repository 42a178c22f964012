package pipeline

import (
	"errors"
	"fmt"

	"github.com/sarchlab/pipesim/emu"
	"github.com/sarchlab/pipesim/insts"
)

// ErrUnresolvedLabel is returned when a taken branch names a label the
// program never defines. The source treats this as fatal (spec §9);
// so do we.
var ErrUnresolvedLabel = errors.New("pipeline: branch target label not found")

// BranchResolver evaluates a branch's predicate at write-back and, if
// taken, squashes speculatively fetched successors and resolves the
// redirect target.
type BranchResolver struct{}

// NewBranchResolver creates a new branch resolver.
func NewBranchResolver() *BranchResolver {
	return &BranchResolver{}
}

// Resolve evaluates the branch slot at idx using the current register
// file. If the branch is taken, every slot with a higher index is
// squashed to Bubble for the given cycle, destination busy flags held
// by squashed non-branch non-nop producers that had already passed EX
// are released, and target is set to the Program index labels binds
// the branch's target to. ok reports whether the branch was taken.
func (r *BranchResolver) Resolve(slots []*Slot, idx int, regs *emu.RegisterFile, labels map[string]int, cycle int) (target int, ok bool, err error) {
	inst := slots[idx].Inst

	a := regs.Read(inst.Dest.Reg)
	b := regs.Read(inst.SrcA.Reg)

	var taken bool
	switch inst.Op {
	case insts.OpBeq:
		taken = a == b
	case insts.OpBne:
		taken = a != b
	}
	if !taken {
		return 0, false, nil
	}

	for j := idx + 1; j < len(slots); j++ {
		s := slots[j]
		if s.Done {
			continue
		}

		prevStage := s.StageAt(cycle - 1)
		s.markBubble(cycle)

		if !s.Inst.IsNop() && !s.Inst.Op.IsBranch() && s.Inst.Dest.IsRegister() && prevStage >= StageEX {
			regs.ClearBusy(s.Inst.Dest.Reg)
		}
	}

	label := inst.SrcB.Label
	idxInProgram, found := labels[label]
	if !found {
		return 0, true, fmt.Errorf("%w: %q", ErrUnresolvedLabel, label)
	}

	return idxInProgram, true, nil
}
