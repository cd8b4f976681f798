// Package suite runs catalogs of machine programs against their expected
// outcomes.
//
// A catalog is a YAML document:
//
//	name: boundary
//	steps: 1000
//	cases:
//	  - name: add
//	    program: ["MOV R2 1", "MOV R3 2", "ADD R1 R2 R3", "RET R1"]
//	    expect: {return: 3}
//	  - name: no return
//	    program: ["MOV R1 4"]
//	    expect: {error: no-return}
//
// A case supplies either 'program' (instruction lines) or 'source'
// (assembler text).
package suite

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/machine/emulator"
	"github.com/ezrec/machine/machine"
)

// errorKinds maps catalog error names to machine outcomes.
var errorKinds = map[string]error{
	"invalid-instruction": machine.ErrInvalidInstruction,
	"no-return":           machine.ErrNoReturn,
	"step-limit":          machine.ErrStepLimit,
	"arithmetic":          machine.ErrArithmetic,
}

// Expect is the expected outcome of a case: a return value, or an error.
type Expect struct {
	Return *int   `yaml:"return,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

// validate checks that exactly one outcome is expected.
func (exp *Expect) validate() (err error) {
	switch {
	case exp.Return != nil && exp.Error != "":
		err = ErrExpectAmbiguous
	case exp.Return == nil && exp.Error == "":
		err = ErrExpectMissing
	case exp.Error != "":
		_, ok := errorKinds[exp.Error]
		if !ok {
			err = ErrErrorKind(exp.Error)
		}
	}

	return
}

// Match returns true if the run result matches the expectation.
func (exp *Expect) Match(result int, err error) bool {
	if exp.Error != "" {
		return errors.Is(err, errorKinds[exp.Error])
	}

	return err == nil && exp.Return != nil && *exp.Return == result
}

// String returns the expectation as it is written in a catalog.
func (exp *Expect) String() string {
	if exp.Error != "" {
		return exp.Error
	}
	if exp.Return != nil {
		return fmt.Sprintf("return %d", *exp.Return)
	}

	return "nothing"
}

// Case is a single program and its expected outcome.
type Case struct {
	Name    string   `yaml:"name"`
	Program []string `yaml:"program,omitempty"`
	Source  string   `yaml:"source,omitempty"`
	Steps   int      `yaml:"steps,omitempty"` // Step limit, overriding the suite.
	Expect  Expect   `yaml:"expect"`
}

// Suite is a named catalog of cases.
type Suite struct {
	Verbose bool `yaml:"-"` // If set, enables verbose logging.

	Name  string `yaml:"name"`
	Steps int    `yaml:"steps,omitempty"` // Step limit for every case.
	Cases []Case `yaml:"cases"`
}

// Load reads a YAML catalog.
func Load(input io.Reader) (suite *Suite, err error) {
	decoder := yaml.NewDecoder(input)
	decoder.KnownFields(true)

	suite = &Suite{}
	err = decoder.Decode(suite)
	if err != nil {
		suite = nil
		return
	}

	err = suite.Validate()
	if err != nil {
		suite = nil
		return
	}

	return
}

// Validate checks every case is well formed.
func (suite *Suite) Validate() (err error) {
	for n := range suite.Cases {
		cs := &suite.Cases[n]
		if cs.Name == "" {
			cs.Name = fmt.Sprintf("case %d", n+1)
		}
		switch {
		case cs.Source != "" && len(cs.Program) != 0:
			err = ErrProgramAmbiguous
		default:
			err = cs.Expect.validate()
		}
		if err != nil {
			err = &ErrCase{Name: cs.Name, Err: err}
			return
		}
	}

	return
}

// Outcome is the result of running a single case.
type Outcome struct {
	Case   *Case
	Result int   // Returned value, if any.
	Err    error // Run error, if any.
	Passed bool  // Set if the run matched the expectation.
}

// String describes the outcome.
func (out Outcome) String() string {
	if out.Passed {
		return f("%v: ok", out.Case.Name)
	}
	if out.Err != nil {
		return f("%v: expected %v, got %v", out.Case.Name, out.Case.Expect.String(), out.Err)
	}
	return f("%v: expected %v, got return %d", out.Case.Name, out.Case.Expect.String(), out.Result)
}

// Report is the collected outcomes of a suite run.
type Report struct {
	Name     string
	Outcomes []Outcome
}

// Passed returns true if every case passed.
func (report *Report) Passed() bool {
	for _, out := range report.Outcomes {
		if !out.Passed {
			return false
		}
	}

	return true
}

// Failures iterates over the outcomes that did not pass.
func (report *Report) Failures() iter.Seq[Outcome] {
	return func(yield func(out Outcome) bool) {
		for _, out := range report.Outcomes {
			if out.Passed {
				continue
			}
			if !yield(out) {
				return
			}
		}
	}
}

// String summarises the report, listing every failure.
func (report *Report) String() string {
	var passed int
	var text strings.Builder
	for _, out := range report.Outcomes {
		if out.Passed {
			passed++
			continue
		}
		text.WriteString("  " + out.String() + "\n")
	}

	return f("%v: %d/%d passed\n", report.Name, passed, len(report.Outcomes)) + text.String()
}

// Run executes every case on a fresh emulator.
func (suite *Suite) Run() (report *Report) {
	report = &Report{Name: suite.Name}

	for n := range suite.Cases {
		out := suite.runCase(&suite.Cases[n])
		if suite.Verbose {
			log.Printf("suite: %v", out)
		}
		report.Outcomes = append(report.Outcomes, out)
	}

	return
}

// runCase executes a single case.
func (suite *Suite) runCase(cs *Case) (out Outcome) {
	out.Case = cs

	emu := emulator.NewEmulator()
	emu.Verbose = suite.Verbose

	switch {
	case cs.Steps != 0:
		emu.Machine.StepLimit = cs.Steps
	case suite.Steps != 0:
		emu.Machine.StepLimit = suite.Steps
	}

	if cs.Source != "" {
		out.Err = emu.Load(strings.NewReader(cs.Source))
		if out.Err != nil {
			return
		}
	} else {
		emu.SetLines(cs.Program)
	}

	out.Result, out.Err = emu.Run()
	out.Passed = cs.Expect.Match(out.Result, out.Err)

	return
}
