// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reLabel = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Listing is assembled program text, with the source line of each
// instruction line.
type Listing struct {
	Lines  []string // Instruction lines, one per program index.
	LineNo []int    // Source line number of each instruction line.
}

// NewListing creates a listing where instruction n came from line n+1.
func NewListing(lines []string) (listing *Listing) {
	listing = &Listing{
		Lines:  lines,
		LineNo: make([]int, len(lines)),
	}
	for n := range lines {
		listing.LineNo[n] = n + 1
	}

	return
}

// Program creates a runnable program from the listing.
func (listing *Listing) Program() *Program {
	return NewProgram(listing.Lines)
}

// SourceLine returns the source line number for a program index, or 0 if
// the index is outside the listing.
func (listing *Listing) SourceLine(pc int) int {
	if pc < 0 || pc >= len(listing.LineNo) {
		return 0
	}

	return listing.LineNo[pc]
}

// link is a jump whose offset names a label.
type link struct {
	index  int    // Program index of the jump.
	word   int    // Word holding the label.
	label  string // Label to resolve.
	lineNo int    // Source line number.
	line   string // Source line text.
}

// Assembler translates program source into instruction lines.
//
// On top of the plain instruction text, source may contain:
//   - ';' comments and blank lines
//   - '.equ NAME VALUE' word substitutions
//   - 'label:' prefixes, usable as JMP and JZ offsets
//   - '$(expr)' compile-time expressions
//   - 0x, 0o and 0b numbers as equate values
//
// The assembler does not check instructions; that is left to Decode.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to program indexes.
	Equate    map[string]string // Map of equates.

	words [][]string
	lines []int
	links []link
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of an equate word. Words with a 0x, 0o or 0b
// prefix use that base; all others are decimal, leading zeros included.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	base := 10
	digits := strings.TrimLeft(word, "+-")
	if len(digits) > 1 && digits[0] == '0' && strings.ContainsRune("xXoObB", rune(digits[1])) {
		base = 0
	}

	value, err = strconv.ParseInt(word, base, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line of source.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if !reLabel.MatchString(label) {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = len(asm.words)
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// Equates are substituted, and numeric equates written in decimal.
	// Literal words are left for Decode to judge.
	for n, word := range words {
		equate, ok := asm.Equate[word]
		if !ok {
			continue
		}
		words[n] = equate
		value, verr := asm.valueOf(equate)
		if verr == nil {
			words[n] = strconv.FormatInt(value, 10)
		}
	}

	// Jump offsets may name a label.
	target := 0
	switch words[0] {
	case "JMP":
		target = 1
	case "JZ":
		target = 2
	}

	if target != 0 && target < len(words) && reLabel.MatchString(words[target]) {
		asm.links = append(asm.links, link{
			index:  len(asm.words),
			word:   target,
			label:  words[target],
			lineNo: lineno,
			line:   line,
		})
	}

	asm.words = append(asm.words, words)
	asm.lines = append(asm.lines, lineno)

	return
}

// Parse parses an input stream into a Listing of instruction lines.
func (asm *Assembler) Parse(input io.Reader) (listing *Listing, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.words = nil
	asm.lines = nil
	asm.links = nil

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(strings.SplitN(text, ";", 2)[0])

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of jump labels.
	for _, lnk := range asm.links {
		index, ok := asm.Label[lnk.label]
		if !ok {
			lineno = lnk.lineNo
			line = lnk.line
			err = ErrLabelMissing(lnk.label)
			return
		}
		asm.words[lnk.index][lnk.word] = strconv.Itoa(index - lnk.index)
	}

	listing = &Listing{
		Lines:  make([]string, len(asm.words)),
		LineNo: asm.lines,
	}
	for n, words := range asm.words {
		listing.Lines[n] = strings.Join(words, " ")
	}

	return
}
