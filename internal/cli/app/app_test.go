package app_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetcph/internal/cli/app"
	"leetcph/internal/cli/state"
	"leetcph/internal/common/progress"
	"leetcph/internal/judge/sandbox/result"
	"leetcph/internal/problem/model"
	"leetcph/internal/problem/repository"
	appErr "leetcph/pkg/errors"
)

type fakeFetcher struct {
	store *repository.FileStore
	err   error
	urls  []string
}

func (f *fakeFetcher) FetchTestCases(ctx context.Context, pageURL string, reporter progress.Reporter) error {
	f.urls = append(f.urls, pageURL)
	if f.err != nil {
		return f.err
	}
	reporter.Report(ctx, progress.Update{Stage: progress.StageDone, Message: "saved"})
	return f.store.Write(ctx, model.NewTestCaseSet([]string{"[3,3]\n6"}, []string{"[0,1]"}))
}

type fakeRunner struct {
	report result.JudgeReport
	err    error
	paths  []string
}

func (f *fakeRunner) RunTestCases(ctx context.Context, sourcePath string, reporter progress.Reporter) (result.JudgeReport, error) {
	f.paths = append(f.paths, sourcePath)
	return f.report, f.err
}

type fixture struct {
	app       *app.App
	fetcher   *fakeFetcher
	runner    *fakeRunner
	out       *bytes.Buffer
	errOut    *bytes.Buffer
	statePath string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	store := repository.NewFileStore(root, "")
	f := &fixture{
		fetcher:   &fakeFetcher{store: store},
		runner:    &fakeRunner{},
		out:       &bytes.Buffer{},
		errOut:    &bytes.Buffer{},
		statePath: filepath.Join(root, ".cph", "state.json"),
	}
	f.app = app.New(app.Options{
		Fetcher:   f.fetcher,
		Runner:    f.runner,
		Store:     store,
		StatePath: f.statePath,
		Out:       f.out,
		Err:       f.errOut,
	})
	return f
}

func passingReport() result.JudgeReport {
	return result.JudgeReport{
		Passed: true,
		Cases:  []result.CaseVerdict{{Index: 0, Input: "[3,3]\n6", Expected: "[0,1]", Actual: "[0,1]", Passed: true}},
	}
}

func TestFetchRecordsState(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.app.Fetch(context.Background(), " https://leetcode.com/problems/two-sum/ "))
	assert.Equal(t, []string{"https://leetcode.com/problems/two-sum/"}, f.fetcher.urls)
	assert.Contains(t, f.out.String(), "Test cases fetched successfully! (1 case(s))")
	assert.Contains(t, f.errOut.String(), "[done] saved")

	st, err := state.Load(f.statePath)
	require.NoError(t, err)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", st.ProblemURL)
	assert.Equal(t, 1, st.CaseCount)
}

func TestFetchFailure(t *testing.T) {
	f := newFixture(t)
	f.fetcher.err = appErr.New(appErr.NoCasesFound)

	err := f.app.Fetch(context.Background(), "https://leetcode.com/problems/two-sum/")
	assert.True(t, appErr.Is(err, appErr.NoCasesFound))
	assert.Empty(t, f.out.String())
}

func TestRunRendersReportAndRemembersSource(t *testing.T) {
	f := newFixture(t)
	f.runner.report = passingReport()

	require.NoError(t, f.app.Run(context.Background(), "solution.cpp"))
	assert.Contains(t, f.out.String(), "Status: PASSED")

	require.NoError(t, f.app.Run(context.Background(), ""))
	assert.Equal(t, []string{"solution.cpp", "solution.cpp"}, f.runner.paths)

	st, err := state.Load(f.statePath)
	require.NoError(t, err)
	require.NotNil(t, st.LastPassed)
	assert.True(t, *st.LastPassed)
}

func TestRunWithoutSource(t *testing.T) {
	f := newFixture(t)
	err := f.app.Run(context.Background(), "")
	assert.True(t, appErr.Is(err, appErr.ValidationFailed))
	assert.Empty(t, f.runner.paths)
}

func TestRunFailedCases(t *testing.T) {
	f := newFixture(t)
	rep := passingReport()
	rep.Passed = false
	rep.Cases[0].Passed = false
	rep.Cases[0].Actual = "[1,0]"
	f.runner.report = rep

	err := f.app.Run(context.Background(), "solution.py")
	assert.ErrorIs(t, err, app.ErrCasesFailed)
	assert.Contains(t, f.out.String(), "Status: FAILED")
}

func TestRunCompileErrorPrintsNoReport(t *testing.T) {
	f := newFixture(t)
	f.runner.err = appErr.CompileFailed("main.cpp:3: error: expected ';'")

	err := f.app.Run(context.Background(), "main.cpp")
	assert.True(t, appErr.Is(err, appErr.CompilationError))
	assert.Empty(t, f.out.String())
	assert.Contains(t, app.Describe(err), "expected ';'")
}

func TestRunRuntimeErrorStillRendersPartialReport(t *testing.T) {
	f := newFixture(t)
	rep := passingReport()
	rep.Passed = false
	f.runner.report = rep
	f.runner.err = appErr.RuntimeFailed("Segmentation fault")

	err := f.app.Run(context.Background(), "main.cpp")
	assert.True(t, appErr.Is(err, appErr.RuntimeError))
	assert.Contains(t, f.out.String(), "Test Case 1:")

	st, loadErr := state.Load(f.statePath)
	require.NoError(t, loadErr)
	assert.False(t, *st.LastPassed)
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.app.Status(context.Background()))
	assert.Contains(t, f.out.String(), "(none fetched)")
	assert.Contains(t, f.out.String(), "Please fetch them first")

	f.out.Reset()
	require.NoError(t, f.app.Fetch(context.Background(), "https://leetcode.com/problems/two-sum/"))
	f.out.Reset()
	require.NoError(t, f.app.Status(context.Background()))
	assert.Contains(t, f.out.String(), "Problem:     https://leetcode.com/problems/two-sum/")
	assert.Contains(t, f.out.String(), "Test cases:  1")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", app.Describe(nil))
	assert.Equal(t, "boom", app.Describe(errors.New("boom")))

	wrapped := appErr.Wrapf(errors.New("exec: \"g++\": not found"), appErr.JudgeSystemError, "compiler for cpp is not available")
	assert.Equal(t, "compiler for cpp is not available: exec: \"g++\": not found", app.Describe(wrapped))
}
