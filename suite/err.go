package suite

import (
	"errors"

	"github.com/ezrec/machine/translate"
)

var f = translate.From

var (
	// Catalog errors
	ErrExpectMissing    = errors.New(f("expect needs return or error"))
	ErrExpectAmbiguous  = errors.New(f("expect has both return and error"))
	ErrProgramAmbiguous = errors.New(f("case has both program and source"))
)

type ErrErrorKind string

func (err ErrErrorKind) Error() string {
	return f("'%v' is not an error kind", string(err))
}

// ErrCase reports a malformed catalog case.
type ErrCase struct {
	Name string
	Err  error
}

func (err *ErrCase) Error() string {
	return f("case %v: %v", err.Name, err.Err)
}

func (err *ErrCase) Unwrap() error {
	return err.Err
}
