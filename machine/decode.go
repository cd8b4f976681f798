// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"errors"
	"strconv"
	"strings"
)

// parseNumber parses a signed decimal word.
func parseNumber(word string) (value int, err error) {
	value, err = strconv.Atoi(word)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// isIndex returns true for an optionally negative run of decimal digits
// with no redundant leading zero.
func isIndex(digits string) bool {
	digits, negative := strings.CutPrefix(digits, "-")
	switch {
	case len(digits) == 0:
		return false
	case digits[0] == '0':
		return len(digits) == 1 && !negative
	}

	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

// parseRegister parses an R<n> register word.
func parseRegister(word string) (reg int, err error) {
	index, ok := strings.CutPrefix(word, "R")
	if !ok || !isIndex(index) {
		err = ErrParseRegister(word)
		return
	}

	reg, err = strconv.Atoi(index)
	if err != nil {
		err = ErrParseRegister(word)
		return
	}

	if reg < 0 || reg >= REGISTER_COUNT {
		err = errors.Join(ErrRegisterInvalid, ErrParseRegister(word))
		return
	}

	return
}

// Decode translates a single line of program text into an Instruction.
//
// Every operand is checked, including ones the instruction may never use
// at run time. Offsets are only checked to be valid integers; their
// targets are checked when the instruction executes.
//
// All errors match ErrInvalidInstruction.
func Decode(line string) (inst Instruction, err error) {
	defer func() {
		if err != nil {
			err = &ErrDecode{Line: line, Err: err}
		}
	}()

	words := strings.Fields(line)
	if len(words) == 0 {
		err = ErrOpcodeMissing
		return
	}

	form, ok := formMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) != len(form.Slots) {
		err = ErrOpcodeArity
		return
	}

	inst.Op = form.Op
	for n, slot := range form.Slots {
		var value int
		switch {
		case slot.IsRegister():
			value, err = parseRegister(args[n])
		case slot == SLOT_IMM:
			value, err = parseNumber(args[n])
			if err == nil && !InRange(value) {
				err = ErrImmediateRange
			}
		default:
			value, err = parseNumber(args[n])
		}
		if err != nil {
			return
		}
		*inst.field(slot) = value
	}

	return
}
