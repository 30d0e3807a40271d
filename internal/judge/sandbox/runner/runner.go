package runner

import (
	"context"
	"time"

	"leetcph/internal/judge/sandbox/engine"
	"leetcph/internal/judge/sandbox/profile"
	"leetcph/internal/judge/sandbox/result"
	"leetcph/internal/judge/sandbox/spec"
	"leetcph/internal/problem/model"
)

// Job is one execution of a compiled candidate over a case set.
type Job struct {
	RunID   string
	WorkDir string
	Cmd     []string
	Env     []string
	Cases   model.TestCaseSet
	Timeout time.Duration
}

// Executor decides how a case set is fed to the candidate program.
type Executor interface {
	Execute(ctx context.Context, job Job) (result.ExecutionResult, error)
}

// BatchExecutor starts the candidate exactly once and writes every case
// input to its stdin, separator-joined in case order. The candidate must
// answer with one separator-joined output segment per case.
type BatchExecutor struct {
	eng engine.Engine
}

// NewBatchExecutor creates the single-process executor.
func NewBatchExecutor(eng engine.Engine) *BatchExecutor {
	return &BatchExecutor{eng: eng}
}

func (b *BatchExecutor) Execute(ctx context.Context, job Job) (result.ExecutionResult, error) {
	runRes, err := b.eng.Run(ctx, spec.RunSpec{
		RunID:    job.RunID,
		TaskType: profile.TaskTypeRun,
		WorkDir:  job.WorkDir,
		Cmd:      job.Cmd,
		Env:      job.Env,
		Stdin:    job.Cases.InputBlob(),
		WallTime: job.Timeout,
	})
	if err != nil {
		return result.ExecutionResult{}, err
	}
	return result.ExecutionResult{
		Stdout:   runRes.Stdout,
		Stderr:   runRes.Stderr,
		ExitCode: runRes.ExitCode,
		TimedOut: runRes.TimedOut,
		Duration: runRes.WallTime,
	}, nil
}
