package machine

import (
	"errors"

	"github.com/ezrec/machine/translate"
)

var f = translate.From

var (
	// Run outcomes
	ErrInvalidInstruction = errors.New(f("invalid instruction"))
	ErrNoReturn           = errors.New(f("no return"))
	ErrStepLimit          = errors.New(f("step limit exceeded"))
	ErrArithmetic         = errors.New(f("arithmetic fault"))

	// Instruction decode errors
	ErrOpcodeMissing   = errors.New(f("opcode missing"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOpcodeArity     = errors.New(f("wrong number of operands"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrImmediateRange  = errors.New(f("immediate out of range"))

	// Arithmetic errors
	ErrDivideByZero     = errors.New(f("division by zero"))
	ErrRegisterOverflow = errors.New(f("register overflow"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelSyntax     = errors.New(f("label invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrDecode reports an instruction line that could not be decoded.
// It matches ErrInvalidInstruction with errors.Is.
type ErrDecode struct {
	Line string
	Err  error
}

func (err *ErrDecode) Error() string {
	return f("%v '%v': %v", ErrInvalidInstruction, err.Line, err.Err)
}

func (err *ErrDecode) Unwrap() []error {
	return []error{ErrInvalidInstruction, err.Err}
}

// ErrFault records the program counter of the instruction that ended a run.
type ErrFault struct {
	Pc  int
	Err error
}

func (err *ErrFault) Error() string {
	return f("pc %d: %v", err.Pc, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
