package suite_test

import (
	"os"
	"slices"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/machine/machine"
	"github.com/ezrec/machine/suite"
)

func loadFile(path string) *suite.Suite {
	inf, err := os.Open(path)
	Expect(err).NotTo(HaveOccurred())
	defer inf.Close()

	s, err := suite.Load(inf)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func loadText(lines ...string) (*suite.Suite, error) {
	return suite.Load(strings.NewReader(strings.Join(lines, "\n")))
}

var _ = Describe("Suite", func() {
	Context("catalogs", func() {
		It("should pass the boundary catalog", func() {
			s := loadFile("testdata/boundary.yaml")
			Expect(s.Name).To(Equal("boundary"))
			Expect(s.Steps).To(Equal(10000))

			report := s.Run()
			Expect(report.String()).To(HavePrefix("boundary: 16/16 passed"))
			Expect(report.Passed()).To(BeTrue())
		})

		It("should pass the partition catalog", func() {
			s := loadFile("testdata/partition.yaml")

			report := s.Run()
			Expect(slices.Collect(report.Failures())).To(BeEmpty())
			Expect(report.Outcomes).To(HaveLen(8))
		})
	})

	Context("running", func() {
		It("should report a wrong return value", func() {
			s, err := loadText(
				"name: wrong",
				"cases:",
				"  - name: add",
				"    program: [MOV R1 2, RET R1]",
				"    expect: {return: 3}",
			)
			Expect(err).NotTo(HaveOccurred())

			report := s.Run()
			Expect(report.Passed()).To(BeFalse())

			failures := slices.Collect(report.Failures())
			Expect(failures).To(HaveLen(1))
			Expect(failures[0].Result).To(Equal(2))
			Expect(failures[0].String()).To(Equal("add: expected return 3, got return 2"))
		})

		It("should report an unexpected error", func() {
			s, err := loadText(
				"cases:",
				"  - program: [MOV R1 2]",
				"    expect: {return: 2}",
			)
			Expect(err).NotTo(HaveOccurred())

			report := s.Run()
			Expect(report.Passed()).To(BeFalse())
			Expect(report.Outcomes[0].Case.Name).To(Equal("case 1"))
			Expect(report.Outcomes[0].Err).To(MatchError(machine.ErrNoReturn))
		})

		It("should not confuse error kinds", func() {
			s, err := loadText(
				"cases:",
				"  - program: [MOV R1 70000, RET R1]",
				"    expect: {error: no-return}",
			)
			Expect(err).NotTo(HaveOccurred())

			report := s.Run()
			Expect(report.Passed()).To(BeFalse())
			Expect(report.Outcomes[0].Err).To(MatchError(machine.ErrInvalidInstruction))
		})

		It("should apply per case step limits", func() {
			s, err := loadText(
				"steps: 5",
				"cases:",
				"  - name: short",
				"    program: [MOV R1 1, MOV R1 2, MOV R1 3, MOV R1 4, MOV R1 5, RET R1]",
				"    expect: {error: step-limit}",
				"  - name: long",
				"    steps: 6",
				"    program: [MOV R1 1, MOV R1 2, MOV R1 3, MOV R1 4, MOV R1 5, RET R1]",
				"    expect: {return: 5}",
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Run().Passed()).To(BeTrue())
		})

		It("should report assembly errors", func() {
			s, err := loadText(
				"cases:",
				"  - source: JMP nowhere",
				"    expect: {error: no-return}",
			)
			Expect(err).NotTo(HaveOccurred())

			report := s.Run()
			Expect(report.Passed()).To(BeFalse())
			Expect(report.Outcomes[0].Err).To(MatchError(machine.ErrLabelMissing("nowhere")))
		})
	})

	Context("loading", func() {
		It("should reject a case without an expectation", func() {
			_, err := loadText(
				"cases:",
				"  - name: bare",
				"    program: [RET R0]",
			)
			Expect(err).To(MatchError(suite.ErrExpectMissing))

			var caseErr *suite.ErrCase
			Expect(err).To(BeAssignableToTypeOf(caseErr))
		})

		It("should reject an ambiguous expectation", func() {
			_, err := loadText(
				"cases:",
				"  - program: [RET R0]",
				"    expect: {return: 0, error: no-return}",
			)
			Expect(err).To(MatchError(suite.ErrExpectAmbiguous))
		})

		It("should reject an unknown error kind", func() {
			_, err := loadText(
				"cases:",
				"  - program: [RET R0]",
				"    expect: {error: exploded}",
			)
			Expect(err).To(MatchError(suite.ErrErrorKind("exploded")))
		})

		It("should reject both program and source", func() {
			_, err := loadText(
				"cases:",
				"  - program: [RET R0]",
				"    source: RET R0",
				"    expect: {return: 0}",
			)
			Expect(err).To(MatchError(suite.ErrProgramAmbiguous))
		})

		It("should reject unknown fields", func() {
			_, err := loadText(
				"cases:",
				"  - program: [RET R0]",
				"    expected: {return: 0}",
			)
			Expect(err).To(HaveOccurred())
		})
	})
})
