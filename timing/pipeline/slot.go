// Package pipeline simulates a five-stage in-order pipeline cycle by
// cycle: instruction fetch, hazard detection and stalling, branch
// resolution with squash/redirect, and write-back execution.
package pipeline

import "github.com/sarchlab/pipesim/insts"

// CycleCap is the hard bound on simulated cycles (spec §4.8): reaching
// it without completion is a legitimate, truncated termination.
const CycleCap = 16

// MaxSlots is the hard bound on the number of issued slots a run may
// ever hold, including injected bubbles (4x the cycle cap).
const MaxSlots = 4 * CycleCap

// Stage is the pipeline phase a slot occupies during one cycle.
type Stage uint8

// Stage ordinals. Advancement increments the ordinal by one from IF
// through WB; Bubble is sticky until the slot retires.
const (
	StageEmpty Stage = iota
	StageIF
	StageID
	StageEX
	StageMEM
	StageWB
	StageBubble
)

// String renders the symbol used in the pipeline diagram.
func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "."
	case StageIF:
		return "IF"
	case StageID:
		return "ID"
	case StageEX:
		return "EX"
	case StageMEM:
		return "MEM"
	case StageWB:
		return "WB"
	case StageBubble:
		return "*"
	default:
		return "?"
	}
}

// Slot is one row of the pipeline table: an issued instruction (or an
// injected "nop" bubble), its per-cycle stage history, and
// whether it has retired.
type Slot struct {
	Inst insts.Instruction
	Done bool

	// stages[c] is this slot's stage at cycle c; index 0 is the
	// baseline before the first cycle and is always StageEmpty.
	stages [CycleCap + 1]Stage

	// bubbleAnchor records the cycle and stage this slot last held
	// before it first turned Bubble (by insertion or squash), used by
	// the bubble-aging rule to decide when the slot retires.
	bubbleAnchorSet   bool
	bubbleAnchorCycle int
	bubbleAnchorStage Stage
}

// markBubble sets this slot's stage at cycle to Bubble and, the first
// time this happens, anchors it against its stage at cycle-1 so the
// bubble-aging rule (§4.8 step 3) knows when it retires.
func (s *Slot) markBubble(cycle int) {
	if !s.bubbleAnchorSet {
		s.bubbleAnchorSet = true
		s.bubbleAnchorCycle = cycle - 1
		s.bubbleAnchorStage = s.StageAt(cycle - 1)
	}
	s.setStageAt(cycle, StageBubble)
}

// retiresAt reports whether, given the current cycle, this slot's
// bubble anchor says it has aged out: its history would have walked
// five cycles from its last real stage by now. Only meaningful once
// bubbleAnchorSet is true.
func (s *Slot) retiresAt(cycle int) bool {
	return s.bubbleAnchorSet && cycle-1 == s.bubbleAnchorCycle+5-int(s.bubbleAnchorStage)
}

// Text is the slot's instruction text, as rendered in the diagram.
func (s *Slot) Text() string {
	return s.Inst.Text
}

// StageAt returns this slot's stage at the given cycle. Cycles
// outside [0, CycleCap] return StageEmpty.
func (s *Slot) StageAt(cycle int) Stage {
	if cycle < 0 || cycle > CycleCap {
		return StageEmpty
	}
	return s.stages[cycle]
}

func (s *Slot) setStageAt(cycle int, st Stage) {
	s.stages[cycle] = st
}

// RowView is a read-only snapshot of one slot's text and stage
// history, handed to the renderer.
type RowView struct {
	Text   string
	Stages [CycleCap + 1]Stage
}

func newRowView(s *Slot) RowView {
	return RowView{Text: s.Text(), Stages: s.stages}
}

func nopInstruction() insts.Instruction {
	return insts.Instruction{Op: insts.OpNop, Text: "nop"}
}
