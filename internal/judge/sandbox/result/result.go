// Package result defines execution results and judge verdicts.
package result

import "time"

// Verdict represents the outcome of one case or a whole run.
type Verdict string

const (
	VerdictAC  Verdict = "AC"
	VerdictWA  Verdict = "WA"
	VerdictTLE Verdict = "TLE"
	VerdictRE  Verdict = "RE"
	VerdictCE  Verdict = "CE"
	VerdictSE  Verdict = "SE"
)

// RunResult captures raw data of one process invocation.
type RunResult struct {
	ExitCode        int
	WallTime        time.Duration
	Stdout          string
	Stderr          string
	TimedOut        bool
	OutputTruncated bool
}

// CompileResult contains compilation outcomes.
type CompileResult struct {
	OK       bool
	ExitCode int
	WallTime time.Duration
	Error    string
}

// ExecutionResult is the outcome of running the candidate once over the whole
// case set.
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// CaseVerdict is the judgement of one case.
type CaseVerdict struct {
	Index    int
	Input    string
	Expected string
	Actual   string
	Passed   bool
}

// Verdict maps the case outcome onto the verdict vocabulary.
func (c CaseVerdict) Verdict() Verdict {
	if c.Passed {
		return VerdictAC
	}
	return VerdictWA
}

// JudgeReport holds per-case verdicts in input order plus the aggregate.
// ExtraSegments counts output segments beyond the number of cases.
type JudgeReport struct {
	Cases         []CaseVerdict
	Passed        bool
	ExtraSegments int
}

// PassedCount returns how many cases passed.
func (r JudgeReport) PassedCount() int {
	n := 0
	for _, c := range r.Cases {
		if c.Passed {
			n++
		}
	}
	return n
}
