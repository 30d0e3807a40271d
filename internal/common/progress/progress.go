// Package progress provides status reporting hooks for long-running actions.
package progress

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"leetcph/pkg/utils/logger"
)

// Stage identifies a step of the fetch or run pipeline.
type Stage string

const (
	StageValidate Stage = "validate"
	StageFetch    Stage = "fetch"
	StageExtract  Stage = "extract"
	StageSave     Stage = "save"
	StageLoad     Stage = "load"
	StageRun      Stage = "run"
	StageJudge    Stage = "judge"
	StageDone     Stage = "done"
)

// Update carries one intermediate status message.
type Update struct {
	Stage   Stage
	Message string
}

// Reporter observes progress. Implementations must not block for long and
// cannot fail the action they observe.
type Reporter interface {
	Report(ctx context.Context, update Update)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, update Update)

func (f ReporterFunc) Report(ctx context.Context, update Update) {
	f(ctx, update)
}

// NoopReporter discards updates.
type NoopReporter struct{}

func (NoopReporter) Report(ctx context.Context, update Update) {}

// LogReporter forwards updates to the structured log.
type LogReporter struct{}

func (LogReporter) Report(ctx context.Context, update Update) {
	logger.Info(ctx, update.Message, zap.String("stage", string(update.Stage)))
}

// WriterReporter prints one line per update, used by the terminal host.
type WriterReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterReporter creates a reporter writing to w.
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

func (r *WriterReporter) Report(ctx context.Context, update Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.w, "[%s] %s\n", update.Stage, update.Message)
}

// Multi fans updates out to several reporters in order.
func Multi(reporters ...Reporter) Reporter {
	return ReporterFunc(func(ctx context.Context, update Update) {
		for _, r := range reporters {
			if r != nil {
				r.Report(ctx, update)
			}
		}
	})
}

// OrNoop returns r, or a NoopReporter when r is nil.
func OrNoop(r Reporter) Reporter {
	if r == nil {
		return NoopReporter{}
	}
	return r
}
