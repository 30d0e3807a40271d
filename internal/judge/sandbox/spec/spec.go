// Package spec defines the execution specification of one process invocation.
package spec

import (
	"time"

	"leetcph/internal/judge/sandbox/profile"
)

// RunSpec is the unified execution specification for one task.
// Cmd is an argument vector; it is never passed through a shell.
type RunSpec struct {
	RunID    string
	TaskType profile.TaskType
	WorkDir  string
	Cmd      []string
	Env      []string
	Stdin    string
	WallTime time.Duration
}
