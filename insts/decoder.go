package insts

import (
	"fmt"
	"strconv"
	"strings"
)

// Decoder parses one textual instruction line into an Instruction.
// It carries no state; a single Decoder may be reused freely and is
// safe to share since Decode never mutates the receiver.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses a single line of the form
//
//	opcode dest,srcA,srcB
//
// with exactly one space after the opcode and no interior whitespace
// around the commas, or the bare literal "nop". It returns an error
// for anything else: unknown opcode, wrong operand count, or a
// malformed register/immediate/label operand.
func (d *Decoder) Decode(line string) (Instruction, error) {
	if line == "nop" {
		return Instruction{Op: OpNop, Text: line}, nil
	}

	sp := strings.IndexByte(line, ' ')
	if sp < 0 {
		return Instruction{}, fmt.Errorf("insts: malformed instruction %q: missing operand separator", line)
	}

	mnemonic := line[:sp]
	op := opcodeFor(mnemonic)
	if op == OpUnknown {
		return Instruction{}, fmt.Errorf("insts: unknown opcode %q", mnemonic)
	}

	operands := strings.Split(line[sp+1:], ",")
	if len(operands) != 3 {
		return Instruction{}, fmt.Errorf("insts: %s: expected 3 operands, got %d", mnemonic, len(operands))
	}

	dest, err := d.parseRegister(operands[0])
	if err != nil {
		return Instruction{}, fmt.Errorf("insts: %s: destination: %w", mnemonic, err)
	}

	srcA, err := d.parseRegister(operands[1])
	if err != nil {
		return Instruction{}, fmt.Errorf("insts: %s: source A: %w", mnemonic, err)
	}

	var srcB Operand
	switch {
	case op.IsBranch():
		srcB = Operand{Kind: OperandLabel, Label: operands[2]}
	case op.IsImmediate():
		srcB, err = d.parseImmediate(operands[2])
	default:
		srcB, err = d.parseRegister(operands[2])
	}
	if err != nil {
		return Instruction{}, fmt.Errorf("insts: %s: source B: %w", mnemonic, err)
	}

	return Instruction{Op: op, Text: line, Dest: dest, SrcA: srcA, SrcB: srcB}, nil
}

func opcodeFor(mnemonic string) Opcode {
	switch mnemonic {
	case "add":
		return OpAdd
	case "addi":
		return OpAddi
	case "and":
		return OpAnd
	case "andi":
		return OpAndi
	case "or":
		return OpOr
	case "ori":
		return OpOri
	case "slt":
		return OpSlt
	case "slti":
		return OpSlti
	case "beq":
		return OpBeq
	case "bne":
		return OpBne
	default:
		return OpUnknown
	}
}

func (d *Decoder) parseRegister(s string) (Operand, error) {
	name, err := ParseRegisterName(s)
	if err != nil {
		return Operand{}, err
	}
	return Operand{Kind: OperandRegister, Reg: name}, nil
}

func (d *Decoder) parseImmediate(s string) (Operand, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return Operand{}, fmt.Errorf("invalid immediate %q: %w", s, err)
	}
	return Operand{Kind: OperandImmediate, Imm: int32(v)}, nil
}

// ParseRegisterName parses "$zero", "$tN" (0<=N<=9), or "$sN"
// (0<=N<=7) into a RegisterName.
func ParseRegisterName(s string) (RegisterName, error) {
	if s == "$zero" {
		return Zero, nil
	}
	if len(s) < 3 || s[0] != '$' {
		return RegisterName{}, fmt.Errorf("invalid register %q", s)
	}

	var bank Bank
	switch s[1] {
	case 't':
		bank = BankT
	case 's':
		bank = BankS
	default:
		return RegisterName{}, fmt.Errorf("invalid register %q", s)
	}

	n, err := strconv.Atoi(s[2:])
	if err != nil {
		return RegisterName{}, fmt.Errorf("invalid register %q: %w", s, err)
	}

	max := 9
	if bank == BankS {
		max = 7
	}
	if n < 0 || n > max {
		return RegisterName{}, fmt.Errorf("register index out of range %q", s)
	}

	return RegisterName{Bank: bank, Index: uint8(n)}, nil
}
