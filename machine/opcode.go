package machine

import (
	"fmt"
	"strings"
)

// Op is an instruction mnemonic.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_MOV = Op(0) // MOV
	OP_RET = Op(1) // RET
	OP_ADD = Op(2) // ADD
	OP_SUB = Op(3) // SUB
	OP_MUL = Op(4) // MUL
	OP_DIV = Op(5) // DIV
	OP_STR = Op(6) // STR
	OP_LDR = Op(7) // LDR
	OP_JMP = Op(8) // JMP
	OP_JZ  = Op(9) // JZ
)

// Slot names the Instruction field an operand word is decoded into.
type Slot int

const (
	SLOT_RD  = Slot(0) // Destination register.
	SLOT_RS1 = Slot(1) // First source register.
	SLOT_RS2 = Slot(2) // Second source register.
	SLOT_IMM = Slot(3) // Bounded immediate value.
	SLOT_OFF = Slot(4) // Unbounded signed offset.
)

// IsRegister returns true if the slot holds a register index.
func (slot Slot) IsRegister() bool {
	return slot <= SLOT_RS2
}

// Form is the operand layout of an opcode, in source order.
type Form struct {
	Op    Op
	Slots []Slot
}

// formMap maps mnemonics to their operand layout.
var formMap = map[string]Form{
	"MOV": {OP_MOV, []Slot{SLOT_RD, SLOT_IMM}},
	"RET": {OP_RET, []Slot{SLOT_RS1}},
	"ADD": {OP_ADD, []Slot{SLOT_RD, SLOT_RS1, SLOT_RS2}},
	"SUB": {OP_SUB, []Slot{SLOT_RD, SLOT_RS1, SLOT_RS2}},
	"MUL": {OP_MUL, []Slot{SLOT_RD, SLOT_RS1, SLOT_RS2}},
	"DIV": {OP_DIV, []Slot{SLOT_RD, SLOT_RS1, SLOT_RS2}},
	"STR": {OP_STR, []Slot{SLOT_RS1, SLOT_OFF, SLOT_RS2}},
	"LDR": {OP_LDR, []Slot{SLOT_RD, SLOT_RS1, SLOT_OFF}},
	"JMP": {OP_JMP, []Slot{SLOT_OFF}},
	"JZ":  {OP_JZ, []Slot{SLOT_RS1, SLOT_OFF}},
}

// FormOf returns the operand layout of an opcode.
func FormOf(op Op) (form Form, ok bool) {
	form, ok = formMap[op.String()]
	return
}

// Instruction is a decoded program line.
//
// STR uses Rs1 as the address base and Rs2 as the stored value.
// LDR uses Rs1 as the address base. JZ tests Rs1.
// Imm holds either the MOV immediate or the STR/LDR/JMP/JZ offset.
type Instruction struct {
	Op  Op
	Rd  int
	Rs1 int
	Rs2 int
	Imm int
}

// field returns the Instruction field for an operand slot.
func (inst *Instruction) field(slot Slot) *int {
	switch slot {
	case SLOT_RD:
		return &inst.Rd
	case SLOT_RS1:
		return &inst.Rs1
	case SLOT_RS2:
		return &inst.Rs2
	default:
		return &inst.Imm
	}
}

// String returns the canonical text of the instruction, which decodes
// back into the same Instruction.
func (inst Instruction) String() string {
	form, ok := FormOf(inst.Op)
	if !ok {
		return inst.Op.String()
	}

	words := []string{inst.Op.String()}
	for _, slot := range form.Slots {
		value := *inst.field(slot)
		if slot.IsRegister() {
			words = append(words, fmt.Sprintf("R%d", value))
		} else {
			words = append(words, fmt.Sprintf("%d", value))
		}
	}

	return strings.Join(words, " ")
}
