// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/machine/emulator"
	"github.com/ezrec/machine/machine"
	"github.com/ezrec/machine/suite"
	"github.com/ezrec/machine/translate"
)

func main() {
	var compile string
	var catalog string
	var steps int
	var check bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to run")
	flag.StringVar(&catalog, "t", "", ".yaml test catalog to run")
	flag.IntVar(&steps, "n", machine.DefaultStepLimit, "Step limit, 0 for none")
	flag.BoolVar(&check, "check", false, "Decode every line, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 && len(catalog) == 0 {
		log.Fatalf("%v: one of -c or -t is required", os.Args[0])
	}

	if verbose {
		log.Printf("messages: %v", translate.Language())
	}

	// Run a test catalog.
	if len(catalog) != 0 {
		inf, err := os.Open(catalog)
		if err != nil {
			log.Fatalf("%v: %v", catalog, err)
		}
		defer inf.Close()

		s, err := suite.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", catalog, err)
		}
		s.Verbose = verbose
		if s.Steps == 0 {
			s.Steps = steps
		}

		report := s.Run()
		fmt.Print(report.String())
		if !report.Passed() {
			os.Exit(1)
		}
	}

	if len(compile) == 0 {
		return
	}

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Machine.StepLimit = steps

	err = emu.Load(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if check {
		prog := emu.Listing.Program()
		err = prog.Validate()
		if verbose {
			for pc, inst := range prog.Instructions() {
				log.Printf("%03d: %v", pc, inst)
			}
		}
		if err != nil {
			log.Fatalf("%v: line %v: %v", compile, emu.Listing.SourceLine(pcOf(err)), err)
		}
		return
	}

	result, err := emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if verbose {
		log.Printf("%v", emu.Machine)
	}

	fmt.Println(result)
}

// pcOf returns the program index of a machine fault.
func pcOf(err error) int {
	var fault *machine.ErrFault
	if errors.As(err, &fault) {
		return fault.Pc
	}

	return -1
}
