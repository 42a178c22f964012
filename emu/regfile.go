// Package emu provides the register file and arithmetic execution for
// the simulated machine.
package emu

import "github.com/sarchlab/pipesim/insts"

// RegisterFile holds the two general-purpose register banks ($t0..$t9,
// $s0..$s7) plus a busy flag per register, used by hazard detection.
// $zero is not stored: reads always yield 0 and writes are no-ops.
type RegisterFile struct {
	t     [10]int32
	s     [8]int32
	tBusy [10]bool
	sBusy [8]bool
}

// NewRegisterFile creates a register file with all registers zeroed
// and not busy.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Read returns a register's current value. $zero always reads as 0.
func (r *RegisterFile) Read(name insts.RegisterName) int32 {
	switch name.Bank {
	case insts.BankT:
		return r.t[name.Index]
	case insts.BankS:
		return r.s[name.Index]
	default:
		return 0
	}
}

// Write stores a value in a register. Writes to $zero are ignored.
func (r *RegisterFile) Write(name insts.RegisterName, v int32) {
	switch name.Bank {
	case insts.BankT:
		r.t[name.Index] = v
	case insts.BankS:
		r.s[name.Index] = v
	}
}

// SetBusy marks a register as busy. $zero is never busy and this is
// a no-op for it.
func (r *RegisterFile) SetBusy(name insts.RegisterName) {
	switch name.Bank {
	case insts.BankT:
		r.tBusy[name.Index] = true
	case insts.BankS:
		r.sBusy[name.Index] = true
	}
}

// ClearBusy marks a register as no longer busy.
func (r *RegisterFile) ClearBusy(name insts.RegisterName) {
	switch name.Bank {
	case insts.BankT:
		r.tBusy[name.Index] = false
	case insts.BankS:
		r.sBusy[name.Index] = false
	}
}

// IsBusy reports whether a register is currently reserved by an
// in-flight producer. $zero is never busy.
func (r *RegisterFile) IsBusy(name insts.RegisterName) bool {
	switch name.Bank {
	case insts.BankT:
		return r.tBusy[name.Index]
	case insts.BankS:
		return r.sBusy[name.Index]
	default:
		return false
	}
}

// TCount is the number of $t registers.
const TCount = 10

// SCount is the number of $s registers.
const SCount = 8

// TValue returns the current value of $tN, for rendering.
func (r *RegisterFile) TValue(i int) int32 { return r.t[i] }

// SValue returns the current value of $sN, for rendering.
func (r *RegisterFile) SValue(i int) int32 { return r.s[i] }
