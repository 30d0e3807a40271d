package progress_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"leetcph/internal/common/progress"
)

func TestWriterReporter(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewWriterReporter(&buf)

	r.Report(context.Background(), progress.Update{Stage: progress.StageFetch, Message: "Fetching test cases..."})
	r.Report(context.Background(), progress.Update{Stage: progress.StageDone, Message: "Test cases saved"})

	assert.Equal(t, "[fetch] Fetching test cases...\n[done] Test cases saved\n", buf.String())
}

func TestMultiFansOut(t *testing.T) {
	var got []progress.Stage
	record := progress.ReporterFunc(func(ctx context.Context, u progress.Update) {
		got = append(got, u.Stage)
	})

	m := progress.Multi(record, nil, progress.NoopReporter{}, record)
	m.Report(context.Background(), progress.Update{Stage: progress.StageRun})

	assert.Equal(t, []progress.Stage{progress.StageRun, progress.StageRun}, got)
}

func TestOrNoop(t *testing.T) {
	assert.Equal(t, progress.NoopReporter{}, progress.OrNoop(nil))
	assert.NotPanics(t, func() {
		progress.LogReporter{}.Report(context.Background(), progress.Update{Stage: progress.StageLoad})
	})
}
