// Package insts provides the instruction set definitions shared by the
// loader and the pipeline: opcodes, operand forms, and the decoded
// Instruction representation.
//
// The instruction set is intentionally small: eight arithmetic ops
// (register and immediate forms), two conditional branches, and nop.
// There is no memory access and no unconditional jump.
package insts

// Opcode identifies one of the eleven supported instructions.
type Opcode uint8

// Supported opcodes.
const (
	OpUnknown Opcode = iota
	OpAdd
	OpAddi
	OpAnd
	OpAndi
	OpOr
	OpOri
	OpSlt
	OpSlti
	OpBeq
	OpBne
	OpNop
)

// String returns the lowercase mnemonic, matching the textual form
// accepted by the decoder.
func (o Opcode) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpAddi:
		return "addi"
	case OpAnd:
		return "and"
	case OpAndi:
		return "andi"
	case OpOr:
		return "or"
	case OpOri:
		return "ori"
	case OpSlt:
		return "slt"
	case OpSlti:
		return "slti"
	case OpBeq:
		return "beq"
	case OpBne:
		return "bne"
	case OpNop:
		return "nop"
	default:
		return "unknown"
	}
}

// IsBranch reports whether the opcode is a conditional branch.
func (o Opcode) IsBranch() bool {
	return o == OpBeq || o == OpBne
}

// IsImmediate reports whether the opcode's third operand is an
// immediate (the "i" forms) rather than a register.
func (o Opcode) IsImmediate() bool {
	switch o {
	case OpAddi, OpAndi, OpOri, OpSlti:
		return true
	default:
		return false
	}
}

// Bank identifies which register bank an operand refers to.
type Bank uint8

// Register banks.
const (
	BankZero Bank = iota
	BankT
	BankS
)

// RegisterName identifies a single general-purpose register.
type RegisterName struct {
	Bank  Bank
	Index uint8
}

// Zero is the constant $zero register.
var Zero = RegisterName{Bank: BankZero}

// String renders the register in its textual form, e.g. "$t3".
func (r RegisterName) String() string {
	switch r.Bank {
	case BankZero:
		return "$zero"
	case BankT:
		return "$t" + digit(r.Index)
	case BankS:
		return "$s" + digit(r.Index)
	default:
		return "$?"
	}
}

func digit(i uint8) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return string(rune('0'+i/10)) + string(rune('0'+i%10))
}

// OperandKind distinguishes the three shapes an operand can take.
type OperandKind uint8

// Operand kinds.
const (
	OperandNone OperandKind = iota
	OperandRegister
	OperandImmediate
	OperandLabel
)

// Operand is a source or destination operand: a register, a signed
// immediate, or (branch target only) a label name.
type Operand struct {
	Kind  OperandKind
	Reg   RegisterName
	Imm   int32
	Label string
}

// IsRegister reports whether the operand is a non-$zero register,
// the form hazard detection cares about.
func (o Operand) IsRegister() bool {
	return o.Kind == OperandRegister && o.Reg.Bank != BankZero
}

// Instruction is one decoded line of source.
type Instruction struct {
	Op Opcode

	// Text is the verbatim source line, preserved for rendering and
	// for the inserted "nop" bubbles.
	Text string

	// Dest is the destination for arithmetic ops, or the first
	// compared register for branches.
	Dest Operand

	// SrcA is the second operand: a source register for arithmetic,
	// or the second compared register for branches.
	SrcA Operand

	// SrcB is the third operand: a register or immediate for
	// arithmetic, or the branch target label.
	SrcB Operand
}

// IsNop reports whether this is a no-op slot (either decoded from
// source or injected as a stall bubble). A slot squashed by a taken
// branch keeps its original instruction and is not a nop.
func (i Instruction) IsNop() bool {
	return i.Op == OpNop
}
