// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	DefaultStepLimit = 1_000_000 // Default number of instructions a run may execute.
)

var _machine_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"VALUE_MIN":      fmt.Sprintf("%d", VALUE_MIN),
	"VALUE_MAX":      fmt.Sprintf("%d", VALUE_MAX),
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
}

// Machine is the execution state of a single program run.
//
// A Machine is not safe for concurrent use; use one Machine per goroutine,
// or the package level Execute.
type Machine struct {
	Verbose   bool // Set to enable verbose logging.
	StepLimit int  // Maximum instructions per run, or 0 for no limit.

	Program  *Program  // Program being run.
	Pc       int       // Index of the next instruction.
	Register Registers // Register file.
	Memory   Memory    // Data memory.

	Steps  int  // Instructions executed since Reset.
	Halted bool // Set once a RET has executed.
	Result int  // Value returned by RET.
}

// NewMachine creates a machine with the default step limit.
func NewMachine() (m *Machine) {
	m = &Machine{
		StepLimit: DefaultStepLimit,
	}

	return
}

// Execute runs the program lines on a fresh machine, returning the value
// of the first RET executed.
//
// Failures match ErrInvalidInstruction, ErrNoReturn, ErrStepLimit or
// ErrArithmetic with errors.Is.
func Execute(lines []string) (result int, err error) {
	return NewMachine().Run(NewProgram(lines))
}

// Defines for the machine
func (m *Machine) Defines() iter.Seq2[string, string] {
	return maps.All(_machine_defines)
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	text = fmt.Sprintf("   pc: %d\nsteps: %d\n", m.Pc, m.Steps)
	for n, val := range m.Register {
		if val != 0 {
			text += fmt.Sprintf("% 5s: %d\n", fmt.Sprintf("R%d", n), val)
		}
	}
	if m.Halted {
		text += fmt.Sprintf("  ret: %d\n", m.Result)
	}

	return
}

// Reset the machine state to run a program from its first line.
// - Clears the registers and memory.
// - Zeros the step counter.
func (m *Machine) Reset(prog *Program) {
	if m.Verbose {
		log.Printf("machine: reset, %d lines", prog.Len())
	}

	m.Program = prog
	m.Pc = 0
	m.Register.Reset()
	m.Memory.Reset()
	m.Steps = 0
	m.Halted = false
	m.Result = 0
}

// Run resets the machine and executes prog until it returns or fails.
func (m *Machine) Run(prog *Program) (result int, err error) {
	m.Reset(prog)

	for {
		var done bool
		done, err = m.Tick()
		if err != nil {
			return
		}
		if done {
			result = m.Result
			return
		}
	}
}

// Fetch decodes the instruction at the program counter.
func (m *Machine) Fetch() (inst Instruction, err error) {
	inst, err = m.Program.Instruction(m.Pc)
	if err != nil {
		err = &ErrFault{Pc: m.Pc, Err: err}
		return
	}

	return
}

// Tick executes a single instruction. done is set once a RET has executed.
func (m *Machine) Tick() (done bool, err error) {
	if m.Halted {
		done = true
		return
	}

	inst, err := m.Fetch()
	if err != nil {
		return
	}

	if m.StepLimit > 0 && m.Steps >= m.StepLimit {
		err = &ErrFault{Pc: m.Pc, Err: ErrStepLimit}
		return
	}

	err = m.Execute(inst)
	if err != nil {
		return
	}

	m.Steps++
	done = m.Halted

	return
}

// Execute executes a single decoded instruction at the program counter.
func (m *Machine) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			err = &ErrFault{Pc: m.Pc, Err: err}
		}
	}()
	if m.Verbose {
		log.Printf("%03d: %v", m.Pc, inst)
	}

	reg := &m.Register
	next_pc := m.Pc + 1

	switch inst.Op {
	case OP_MOV:
		err = reg.Set(inst.Rd, inst.Imm)
	case OP_RET:
		m.Result = reg.Get(inst.Rs1)
		m.Halted = true
		next_pc = m.Pc
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		var value int
		value, err = doAlu(inst.Op, reg.Get(inst.Rs1), reg.Get(inst.Rs2))
		if err == nil {
			err = reg.Set(inst.Rd, value)
		}
		if err != nil {
			err = errors.Join(ErrArithmetic, err)
			return
		}
	case OP_STR:
		addr := reg.Get(inst.Rs1) + inst.Imm
		if !m.Memory.Store(addr, reg.Get(inst.Rs2)) && m.Verbose {
			log.Printf("%03d: store to %d ignored", m.Pc, addr)
		}
	case OP_LDR:
		addr := reg.Get(inst.Rs1) + inst.Imm
		value, ok := m.Memory.Load(addr)
		if ok {
			err = reg.Set(inst.Rd, value)
		} else if m.Verbose {
			log.Printf("%03d: load from %d ignored", m.Pc, addr)
		}
	case OP_JMP:
		next_pc = m.Pc + inst.Imm
	case OP_JZ:
		if reg.Get(inst.Rs1) == 0 {
			next_pc = m.Pc + inst.Imm
		}
	default:
		err = ErrOpcodeInvalid
		return
	}

	if err != nil {
		return
	}

	m.Pc = next_pc

	return
}

// doAlu performs the requested arithmetic, and returns the output value.
// The output is not range checked.
func doAlu(op Op, a int, b int) (output int, err error) {
	switch op {
	case OP_ADD:
		output = a + b
	case OP_SUB:
		output = a - b
	case OP_MUL:
		output = a * b
	case OP_DIV:
		if b == 0 {
			err = ErrDivideByZero
			return
		}
		output = a / b
	}

	return
}
