package machine

import (
	"iter"
	"slices"
	"sync/atomic"
)

// Program is an ordered list of instruction lines. Each line is decoded
// the first time it is fetched, and the decoded Instruction is kept.
//
// A Program may be shared by several machines.
type Program struct {
	Lines []string

	decoded []atomic.Pointer[Instruction]
}

// NewProgram creates a program from instruction lines.
func NewProgram(lines []string) (prog *Program) {
	prog = &Program{
		Lines:   slices.Clone(lines),
		decoded: make([]atomic.Pointer[Instruction], len(lines)),
	}

	return
}

// Len returns the number of instruction lines.
func (prog *Program) Len() int {
	return len(prog.Lines)
}

// Instruction returns the decoded instruction at index pc.
// An index outside the program reports ErrNoReturn.
func (prog *Program) Instruction(pc int) (inst Instruction, err error) {
	if pc < 0 || pc >= len(prog.Lines) {
		err = ErrNoReturn
		return
	}

	if pc >= len(prog.decoded) {
		// Not created by NewProgram; nowhere to keep the decode.
		return Decode(prog.Lines[pc])
	}

	cached := prog.decoded[pc].Load()
	if cached != nil {
		inst = *cached
		return
	}

	inst, err = Decode(prog.Lines[pc])
	if err != nil {
		return
	}

	prog.decoded[pc].Store(&inst)

	return
}

// Validate decodes every line, returning the first failure.
func (prog *Program) Validate() (err error) {
	for pc := range prog.Lines {
		_, err = prog.Instruction(pc)
		if err != nil {
			err = &ErrFault{Pc: pc, Err: err}
			return
		}
	}

	return
}

// Instructions iterates over the decodable prefix of the program.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(pc int, inst Instruction) bool) {
		for pc := range prog.Lines {
			inst, err := prog.Instruction(pc)
			if err != nil {
				return
			}
			if !yield(pc, inst) {
				return
			}
		}
	}
}
