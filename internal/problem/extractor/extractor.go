// Package extractor turns scraped problem-statement code blocks into test cases.
//
// Recognition is rule based and deliberately narrow: only the parameter
// shapes registered as rules are understood. Supporting another problem
// signature means adding an InputRule, not changing the traversal.
package extractor

import (
	"regexp"
	"strings"

	"leetcph/internal/problem/model"
	appErr "leetcph/pkg/errors"
)

var labelRe = regexp.MustCompile(`^\s*(?:Input|Output|Explanation):`)

// Extractor applies input and output rules to each block in order.
type Extractor struct {
	inputs  []InputRule
	outputs []OutputRule
}

// New creates an extractor. Rules are tried in the order given.
func New(inputs []InputRule, outputs []OutputRule) *Extractor {
	return &Extractor{inputs: inputs, outputs: outputs}
}

// NewDefault creates an extractor for the array+int input family with bare
// array outputs.
func NewDefault() *Extractor {
	return New([]InputRule{ArrayIntRule{}}, []OutputRule{BareArrayRule{}})
}

// Extract returns one case per block in which both an input and an output
// were recognised, in block order. Other blocks are skipped.
// An empty result is a NoCasesFound error.
func (e *Extractor) Extract(blocks []string) (model.TestCaseSet, error) {
	var inputs, outputs []string
	for _, block := range blocks {
		lines := cleanLines(block)
		input, ok := e.matchInput(lines)
		if !ok {
			continue
		}
		output, ok := e.matchOutput(lines)
		if !ok {
			continue
		}
		inputs = append(inputs, input)
		outputs = append(outputs, output)
	}
	if len(inputs) == 0 {
		return model.TestCaseSet{}, appErr.New(appErr.NoCasesFound).WithDetail("blocks", len(blocks))
	}
	return model.NewTestCaseSet(inputs, outputs), nil
}

func (e *Extractor) matchInput(lines []string) (string, bool) {
	for _, rule := range e.inputs {
		if v, ok := rule.MatchInput(lines); ok {
			return v, true
		}
	}
	return "", false
}

func (e *Extractor) matchOutput(lines []string) (string, bool) {
	for _, rule := range e.outputs {
		if v, ok := rule.MatchOutput(lines); ok {
			return v, true
		}
	}
	return "", false
}

// cleanLines drops the leading label and surrounding whitespace of every line.
func cleanLines(block string) []string {
	raw := strings.Split(block, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = labelRe.ReplaceAllString(line, "")
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}
