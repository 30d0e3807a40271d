// Package model defines the test case types shared by the fetch and run paths.
package model

import "strings"

// Separator is the reserved line that joins case strings in persisted blobs
// and on the candidate program's stdin/stdout.
const Separator = "---"

// TestCase is one input/expected-output pair. Index is its position in the set.
type TestCase struct {
	Index          int
	Input          string
	ExpectedOutput string
}

// TestCaseSet is an ordered sequence of test cases.
type TestCaseSet struct {
	Cases []TestCase
}

// NewTestCaseSet pairs inputs and outputs by position.
// The caller guarantees len(inputs) == len(outputs).
func NewTestCaseSet(inputs, outputs []string) TestCaseSet {
	cases := make([]TestCase, 0, len(inputs))
	for i := range inputs {
		cases = append(cases, TestCase{Index: i, Input: inputs[i], ExpectedOutput: outputs[i]})
	}
	return TestCaseSet{Cases: cases}
}

// Len returns the number of cases.
func (s TestCaseSet) Len() int {
	return len(s.Cases)
}

// Inputs returns case inputs in order.
func (s TestCaseSet) Inputs() []string {
	out := make([]string, len(s.Cases))
	for i, c := range s.Cases {
		out[i] = c.Input
	}
	return out
}

// Outputs returns expected outputs in order.
func (s TestCaseSet) Outputs() []string {
	out := make([]string, len(s.Cases))
	for i, c := range s.Cases {
		out[i] = c.ExpectedOutput
	}
	return out
}

// InputBlob is the stdin stream delivered to the candidate program.
func (s TestCaseSet) InputBlob() string {
	return JoinBlob(s.Inputs())
}

// JoinBlob joins case strings with the separator line.
func JoinBlob(parts []string) string {
	return strings.Join(parts, "\n"+Separator+"\n")
}

// SplitBlob splits a blob on lines that are exactly the separator.
// A blob with no separator line is a single segment.
func SplitBlob(blob string) []string {
	lines := strings.Split(blob, "\n")
	segments := make([]string, 0, 1)
	start := 0
	for i, line := range lines {
		if line != Separator {
			continue
		}
		segments = append(segments, strings.Join(lines[start:i], "\n"))
		start = i + 1
	}
	return append(segments, strings.Join(lines[start:], "\n"))
}
