//go:build !unix

package engine

import (
	"context"
	"fmt"

	"leetcph/internal/judge/sandbox/result"
	"leetcph/internal/judge/sandbox/spec"
)

type stubEngine struct{}

func NewEngine(cfg Config) Engine {
	return &stubEngine{}
}

func (s *stubEngine) Run(ctx context.Context, runSpec spec.RunSpec) (result.RunResult, error) {
	return result.RunResult{}, fmt.Errorf("local engine is only supported on unix platforms")
}
