// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembled machine programs, reporting faults
// against their source lines.
package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/ezrec/machine/internal"
	"github.com/ezrec/machine/machine"
)

var _emulator_defines = map[string]string{
	"STEP_LIMIT": fmt.Sprintf("%v", machine.DefaultStepLimit),
}

// Emulator state. Machine + program listing.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	*machine.Machine                  // Reference to the machine simulation.
	Listing          *machine.Listing // Reference to the currently loaded listing.

	lastLineNo int // Source line of the last executed instruction.
}

// NewEmulator creates a new emulator with an empty listing.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: machine.NewMachine(),
		Listing: machine.NewListing(nil),
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.ConcatSeq2(maps.All(_emulator_defines),
		emu.Machine.Defines(),
	)
}

// Load assembles program source, replacing the current listing.
func (emu *Emulator) Load(input io.Reader) (err error) {
	asm := &machine.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	listing, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Listing = listing

	return
}

// SetLines replaces the current listing with plain instruction lines.
func (emu *Emulator) SetLines(lines []string) {
	emu.Listing = machine.NewListing(lines)
}

// Reset the emulator to run the listing from the start.
func (emu *Emulator) Reset() {
	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Reset(emu.Listing.Program())
	emu.lastLineNo = 0
}

// LineNo returns the source line number of the next instruction, or 0
// if the program counter is outside the listing.
func (emu *Emulator) LineNo() int {
	return emu.Listing.SourceLine(emu.Machine.Pc)
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	lineno := emu.LineNo()
	if lineno == 0 {
		// Jumped or fell out of the listing; blame the last line run.
		lineno = emu.lastLineNo
	}
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	done, err = emu.Machine.Tick()
	if err != nil {
		return
	}

	emu.lastLineNo = lineno

	return
}

// Run resets the emulator, and ticks until the program returns or fails.
func (emu *Emulator) Run() (result int, err error) {
	emu.Reset()

	for {
		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}
		if done {
			result = emu.Machine.Result
			return
		}
	}
}
