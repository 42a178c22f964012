package emu

import "github.com/sarchlab/pipesim/insts"

// Execute performs the arithmetic or logic operation for a non-branch,
// non-nop instruction and returns the result to be written to Dest.
// Overflow wraps modulo 2^32, which plain int32 arithmetic already
// does in Go.
func Execute(op insts.Opcode, a, b int32) int32 {
	switch op {
	case insts.OpAdd, insts.OpAddi:
		return a + b
	case insts.OpAnd, insts.OpAndi:
		return a & b
	case insts.OpOr, insts.OpOri:
		return a | b
	case insts.OpSlt, insts.OpSlti:
		if a < b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// OperandValue reads the value of an arithmetic operand: a register's
// current contents, or the immediate itself.
func OperandValue(regs *RegisterFile, operand insts.Operand) int32 {
	if operand.Kind == insts.OperandImmediate {
		return operand.Imm
	}
	return regs.Read(operand.Reg)
}
