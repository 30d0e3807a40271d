// Package observer defines logging and metrics hooks for sandbox execution.
package observer

import (
	"context"
	"time"

	"leetcph/pkg/utils/logger"

	"go.uber.org/zap"
)

// MetricsRecorder records sandbox metrics.
type MetricsRecorder interface {
	ObserveCompile(ctx context.Context, languageID string, ok bool, wall time.Duration)
	ObserveRun(ctx context.Context, languageID string, verdict string, wall time.Duration, outputBytes int)
}

// NoopMetricsRecorder discards all observations.
type NoopMetricsRecorder struct{}

func (NoopMetricsRecorder) ObserveCompile(ctx context.Context, languageID string, ok bool, wall time.Duration) {
}

func (NoopMetricsRecorder) ObserveRun(ctx context.Context, languageID string, verdict string, wall time.Duration, outputBytes int) {
}

// LogMetricsRecorder writes observations to the structured log at debug level.
type LogMetricsRecorder struct{}

func (LogMetricsRecorder) ObserveCompile(ctx context.Context, languageID string, ok bool, wall time.Duration) {
	logger.Debug(ctx, "compile finished",
		zap.String("language", languageID),
		zap.Bool("ok", ok),
		zap.Duration("wall", wall),
	)
}

func (LogMetricsRecorder) ObserveRun(ctx context.Context, languageID string, verdict string, wall time.Duration, outputBytes int) {
	logger.Debug(ctx, "run finished",
		zap.String("language", languageID),
		zap.String("verdict", verdict),
		zap.Duration("wall", wall),
		zap.Int("output_bytes", outputBytes),
	)
}
