package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetcph/internal/judge/report"
	"leetcph/internal/judge/sandbox/result"
)

func TestRenderPassing(t *testing.T) {
	var buf bytes.Buffer
	err := report.Render(&buf, result.JudgeReport{
		Passed: true,
		Cases: []result.CaseVerdict{
			{Index: 0, Input: "[2,7,11,15]\n9", Expected: "[0,1]", Actual: "[0,1]\n", Passed: true},
		},
	})
	require.NoError(t, err)

	want := "Test Results:\n\n" +
		"Test Case 1:\n" +
		"Input:\n[2,7,11,15]\n9\n\n" +
		"Expected Output:\n[0,1]\n\n" +
		"Actual Output:\n[0,1]\n\n" +
		"Status: PASSED\n\n" +
		strings.Repeat("-", 50) + "\n\n" +
		"Overall Result: All tests passed! (1/1 passed)\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderFailingWithMissingOutput(t *testing.T) {
	var buf bytes.Buffer
	err := report.Render(&buf, result.JudgeReport{
		Passed:        false,
		ExtraSegments: 2,
		Cases: []result.CaseVerdict{
			{Index: 0, Input: "[3,2,4]\n6", Expected: "[1,2]", Actual: "[1,2]", Passed: true},
			{Index: 1, Input: "[3,3]\n6", Expected: "[0,1]", Actual: "", Passed: false},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Test Case 2:\n")
	assert.Contains(t, out, "Actual Output:\nNo output\n")
	assert.Contains(t, out, "Status: FAILED\n")
	assert.Contains(t, out, "Note: 2 extra output segment(s) ignored\n")
	assert.True(t, strings.HasSuffix(out, "Overall Result: Some tests failed. (1/2 passed)\n"))
}
