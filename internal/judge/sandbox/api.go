// Package sandbox defines the public call interface used by the judge service.
package sandbox

import (
	"context"

	"leetcph/internal/judge/sandbox/result"
	"leetcph/internal/problem/model"
)

// Harness compiles a candidate source file when its language requires it and
// runs it against a whole case set.
//
// A returned error is one of LanguageNotSupported, CompilationError,
// TimeLimitExceeded, RuntimeError or JudgeSystemError. On RuntimeError the
// ExecutionResult still carries whatever output was captured.
type Harness interface {
	Run(ctx context.Context, req RunRequest) (result.ExecutionResult, error)
}

// RunRequest describes one run of a candidate program.
type RunRequest struct {
	// RunID names the scratch workspace; generated when empty.
	RunID      string
	SourcePath string
	LanguageID string
	Cases      model.TestCaseSet
}
