// Package engine executes one process invocation described by a RunSpec.
package engine

import (
	"context"

	"leetcph/internal/judge/sandbox/result"
	"leetcph/internal/judge/sandbox/spec"
)

// Engine executes a RunSpec as a local process.
// Run returns an error only when the process could not be started; exit
// status, timeouts and output are reported in the RunResult.
type Engine interface {
	Run(ctx context.Context, runSpec spec.RunSpec) (result.RunResult, error)
}
