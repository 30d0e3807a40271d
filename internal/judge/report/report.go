// Package report renders judge reports as plain text.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"leetcph/internal/judge/sandbox/result"
)

const (
	noOutput  = "No output"
	ruleWidth = 50
)

// Render writes a per-case breakdown followed by the overall outcome.
func Render(w io.Writer, r result.JudgeReport) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "Test Results:\n\n")
	for _, c := range r.Cases {
		actual := c.Actual
		if strings.TrimSpace(actual) == "" {
			actual = noOutput
		}
		fmt.Fprintf(bw, "Test Case %d:\n", c.Index+1)
		fmt.Fprintf(bw, "Input:\n%s\n\n", strings.TrimRight(c.Input, "\n"))
		fmt.Fprintf(bw, "Expected Output:\n%s\n\n", strings.TrimRight(c.Expected, "\n"))
		fmt.Fprintf(bw, "Actual Output:\n%s\n\n", strings.TrimRight(actual, "\n"))
		fmt.Fprintf(bw, "Status: %s\n\n", status(c.Passed))
		fmt.Fprintf(bw, "%s\n\n", strings.Repeat("-", ruleWidth))
	}
	if r.ExtraSegments > 0 {
		fmt.Fprintf(bw, "Note: %d extra output segment(s) ignored\n", r.ExtraSegments)
	}
	fmt.Fprintf(bw, "Overall Result: %s (%d/%d passed)\n", overall(r.Passed), r.PassedCount(), len(r.Cases))
	return bw.Flush()
}

func status(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}

func overall(passed bool) string {
	if passed {
		return "All tests passed!"
	}
	return "Some tests failed."
}
