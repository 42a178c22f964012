package pipeline

import (
	"errors"
	"fmt"

	"github.com/sarchlab/pipesim/emu"
	"github.com/sarchlab/pipesim/insts"
	"github.com/sarchlab/pipesim/loader"
)

// ErrSlotOverflow is returned when an insertion or fetch would grow
// the issued program past MaxSlots.
var ErrSlotOverflow = errors.New("pipeline: issued slot count exceeds capacity")

// Scheduler is the pipeline driver: it owns the issued program, the
// register file's busy-flag side, the hazard controller, and the
// branch resolver, and advances them one cycle at a time per §4.8.
type Scheduler struct {
	program    *loader.Program
	regs       *emu.RegisterFile
	hazard     *HazardUnit
	branch     *BranchResolver
	forwarding bool

	slots   []*Slot
	nextIns int
	time    int
	stall   bool
}

// NewScheduler creates a scheduler for program, driving regs and
// honoring forwarding (true enables EX->EX forwarding, releasing a
// producer's busy flag after EX instead of after WB).
func NewScheduler(program *loader.Program, regs *emu.RegisterFile, forwarding bool) *Scheduler {
	return &Scheduler{
		program:    program,
		regs:       regs,
		hazard:     NewHazardUnit(),
		branch:     NewBranchResolver(),
		forwarding: forwarding,
	}
}

// Time returns the current cycle number (0 before the first Tick).
func (sc *Scheduler) Time() int {
	return sc.time
}

// Finished reports whether the last issued slot has retired. An empty
// program (no slots ever issued) is never "finished" by this measure;
// the caller bounds the run by CycleCap instead.
func (sc *Scheduler) Finished() bool {
	if len(sc.slots) == 0 {
		return false
	}
	return sc.slots[len(sc.slots)-1].Done
}

// Rows returns a read-only snapshot of every issued slot, in issue
// order, for the renderer.
func (sc *Scheduler) Rows() []RowView {
	rows := make([]RowView, len(sc.slots))
	for i, s := range sc.slots {
		rows[i] = newRowView(s)
	}
	return rows
}

// Tick advances the pipeline by one cycle, per the step order in
// spec §4.8: preliminary advance, bubble retirement, per-slot
// stage-triggered work, fetch.
func (sc *Scheduler) Tick() error {
	sc.time++
	sc.stall = false

	sc.preliminaryAdvance()
	sc.retireBubbles()

	if err := sc.stageTriggeredWork(); err != nil {
		return err
	}

	if !sc.stall && sc.nextIns >= 0 && sc.nextIns < len(sc.program.Instructions) {
		if err := sc.appendSlot(sc.program.Instructions[sc.nextIns], StageIF); err != nil {
			return err
		}
		sc.nextIns++
	}

	return nil
}

func (sc *Scheduler) preliminaryAdvance() {
	for _, s := range sc.slots {
		if s.Done {
			continue
		}
		prev := s.StageAt(sc.time - 1)
		if prev == StageBubble {
			s.setStageAt(sc.time, StageBubble)
			continue
		}
		s.setStageAt(sc.time, prev+1)
	}
}

func (sc *Scheduler) retireBubbles() {
	for _, s := range sc.slots {
		if s.Done {
			continue
		}
		if s.StageAt(sc.time) != StageBubble {
			continue
		}
		if s.retiresAt(sc.time) {
			s.setStageAt(sc.time, StageEmpty)
			s.Done = true
		}
	}
}

func (sc *Scheduler) stageTriggeredWork() error {
	for i := 0; i < len(sc.slots); i++ {
		s := sc.slots[i]

		// A slot retired at WB last cycle still releases its flag now.
		sc.releaseBusyIfLeaving(s)
		if s.Done {
			continue
		}

		stage := s.StageAt(sc.time)
		isBranch := s.Inst.Op.IsBranch()

		if stage == StageWB && !isBranch && !s.Inst.IsNop() {
			result := emu.Execute(s.Inst.Op, emu.OperandValue(sc.regs, s.Inst.SrcA), emu.OperandValue(sc.regs, s.Inst.SrcB))
			if s.Inst.Dest.IsRegister() {
				sc.regs.Write(s.Inst.Dest.Reg, result)
			}
			s.Done = true
		}

		if stage == HazardStage(s.Inst.Op) && !s.Inst.IsNop() {
			switch sc.hazard.Evaluate(sc.slots, sc.regs, i) {
			case ActionProceed:
				if !isBranch && s.Inst.Dest.IsRegister() {
					sc.regs.SetBusy(s.Inst.Dest.Reg)
				}
			case ActionBubble2:
				if err := sc.insertBubbles(i, 2); err != nil {
					return err
				}
				sc.stall = true
				return nil
			case ActionBubble1:
				if err := sc.insertBubbles(i, 1); err != nil {
					return err
				}
				sc.stall = true
				return nil
			case ActionStall:
				sc.freezeFrom(i)
				sc.stall = true
				return nil
			}
		}

		if stage == StageWB && isBranch {
			target, taken, err := sc.branch.Resolve(sc.slots, i, sc.regs, sc.program.Labels, sc.time)
			if err != nil {
				return err
			}
			s.Done = true
			if taken {
				sc.nextIns = target
				if sc.nextIns < len(sc.program.Instructions) {
					if err := sc.appendSlot(sc.program.Instructions[sc.nextIns], StageIF); err != nil {
						return err
					}
					sc.nextIns++
				}
				sc.stall = true
			}
		}
	}
	return nil
}

// releaseBusyIfLeaving implements the "release on enter next stage"
// lifecycle (spec §9): a non-branch non-nop slot's destination stops
// being busy the cycle after it leaves its release stage (EX when
// forwarding, WB otherwise).
func (sc *Scheduler) releaseBusyIfLeaving(s *Slot) {
	if s.Inst.IsNop() || s.Inst.Op.IsBranch() || !s.Inst.Dest.IsRegister() {
		return
	}

	releaseStage := StageWB
	if sc.forwarding {
		releaseStage = StageEX
	}

	if s.StageAt(sc.time-1) == releaseStage {
		sc.regs.ClearBusy(s.Inst.Dest.Reg)
	}
}

// freezeFrom reverts every not-done slot from index i onward to its
// previous cycle's stage, modeling a cycle with no advancement.
func (sc *Scheduler) freezeFrom(i int) {
	for idx := i; idx < len(sc.slots); idx++ {
		s := sc.slots[idx]
		if s.Done {
			continue
		}
		s.setStageAt(sc.time, s.StageAt(sc.time-1))
	}
}

// insertBubbles inserts k new "nop" slots at position i, mirroring
// the displaced slot's history for cycles before this one (spec
// §4.5), and freezes every slot from i onward (the displaced slot
// included, now shifted right by k) to its previous cycle's stage.
func (sc *Scheduler) insertBubbles(i, k int) error {
	if len(sc.slots)+k > MaxSlots {
		return fmt.Errorf("%w: limit is %d", ErrSlotOverflow, MaxSlots)
	}

	displaced := sc.slots[i]
	bubbles := make([]*Slot, k)
	for b := 0; b < k; b++ {
		nb := &Slot{Inst: nopInstruction()}
		for c := 0; c <= sc.time-1; c++ {
			nb.setStageAt(c, displaced.StageAt(c))
		}
		nb.markBubble(sc.time)
		bubbles[b] = nb
	}

	sc.freezeFrom(i)

	grown := make([]*Slot, 0, len(sc.slots)+k)
	grown = append(grown, sc.slots[:i]...)
	grown = append(grown, bubbles...)
	grown = append(grown, sc.slots[i:]...)
	sc.slots = grown

	return nil
}

// appendSlot issues a new slot at the current cycle in stage st.
func (sc *Scheduler) appendSlot(inst insts.Instruction, st Stage) error {
	if len(sc.slots) >= MaxSlots {
		return fmt.Errorf("%w: limit is %d", ErrSlotOverflow, MaxSlots)
	}
	s := &Slot{Inst: inst}
	s.setStageAt(sc.time, st)
	sc.slots = append(sc.slots, s)
	return nil
}
