// Package checker compares candidate output with expected outputs.
package checker

import (
	"strings"

	"leetcph/internal/judge/sandbox/result"
	"leetcph/internal/problem/model"
)

// Judge splits the captured stdout into separator-delimited segments and
// compares segment i with expected[i] after trimming outer whitespace.
// A missing segment counts as empty output. Surplus non-blank segments are
// counted but never change the verdict.
func Judge(res result.ExecutionResult, expected []string) result.JudgeReport {
	actual := splitActual(res.Stdout)
	report := result.JudgeReport{
		Cases:  make([]result.CaseVerdict, len(expected)),
		Passed: true,
	}
	for i, want := range expected {
		got := ""
		if i < len(actual) {
			got = actual[i]
		}
		passed := Equal(want, got)
		report.Cases[i] = result.CaseVerdict{
			Index:    i,
			Expected: want,
			Actual:   got,
			Passed:   passed,
		}
		report.Passed = report.Passed && passed
	}
	for i := len(expected); i < len(actual); i++ {
		if strings.TrimSpace(actual[i]) != "" {
			report.ExtraSegments++
		}
	}
	return report
}

// JudgeSet judges against a stored case set and records each case input.
func JudgeSet(res result.ExecutionResult, set model.TestCaseSet) result.JudgeReport {
	report := Judge(res, set.Outputs())
	for i, tc := range set.Cases {
		report.Cases[i].Input = tc.Input
	}
	return report
}

// Equal reports whether two outputs match ignoring leading and trailing
// whitespace. Interior whitespace is significant.
func Equal(expected, actual string) bool {
	return strings.TrimSpace(expected) == strings.TrimSpace(actual)
}

func splitActual(stdout string) []string {
	normalized := strings.ReplaceAll(stdout, "\r\n", "\n")
	if strings.TrimSpace(normalized) == "" {
		return nil
	}
	return model.SplitBlob(normalized)
}
