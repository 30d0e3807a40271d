package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetcph/internal/judge/sandbox"
	"leetcph/internal/judge/sandbox/config"
	"leetcph/internal/judge/sandbox/result"
	"leetcph/internal/judge/service"
	"leetcph/internal/problem/model"
	"leetcph/internal/problem/repository"
	appErr "leetcph/pkg/errors"
)

type fakeHarness struct {
	res  result.ExecutionResult
	err  error
	reqs []sandbox.RunRequest
}

func (h *fakeHarness) Run(ctx context.Context, req sandbox.RunRequest) (result.ExecutionResult, error) {
	h.reqs = append(h.reqs, req)
	return h.res, h.err
}

func twoSumSet() model.TestCaseSet {
	return model.NewTestCaseSet(
		[]string{"[2,7,11,15]\n9", "[3,2,4]\n6"},
		[]string{"[0,1]", "[1,2]"},
	)
}

func setup(t *testing.T, harness *fakeHarness, fetched bool) (*service.JudgeService, string) {
	t.Helper()
	root := t.TempDir()
	store := repository.NewFileStore(root, "")
	if fetched {
		require.NoError(t, store.Write(context.Background(), twoSumSet()))
	}
	src := filepath.Join(root, "solution.py")
	require.NoError(t, os.WriteFile(src, []byte("print()"), 0644))

	svc, err := service.NewJudgeService(service.Config{
		Languages: config.NewLocalRepository(config.DefaultLanguages()),
		Store:     store,
		Harness:   harness,
	})
	require.NoError(t, err)
	return svc, src
}

func TestRunTestCasesAllPass(t *testing.T) {
	harness := &fakeHarness{res: result.ExecutionResult{Stdout: "[0,1]\n---\n[1,2]\n"}}
	svc, src := setup(t, harness, true)

	report, err := svc.RunTestCases(context.Background(), src, nil)
	require.NoError(t, err)
	assert.True(t, report.Passed)
	require.Len(t, report.Cases, 2)
	assert.Equal(t, "[3,2,4]\n6", report.Cases[1].Input)

	require.Len(t, harness.reqs, 1)
	assert.Equal(t, "python", harness.reqs[0].LanguageID)
	assert.Equal(t, src, harness.reqs[0].SourcePath)
	assert.Equal(t, 2, harness.reqs[0].Cases.Len())
	assert.NotEmpty(t, harness.reqs[0].RunID)
}

func TestRunTestCasesWrongAnswer(t *testing.T) {
	harness := &fakeHarness{res: result.ExecutionResult{Stdout: "[0,1]\n---\n[2,1]"}}
	svc, src := setup(t, harness, true)

	report, err := svc.RunTestCases(context.Background(), src, nil)
	require.NoError(t, err)
	assert.False(t, report.Passed)
	assert.True(t, report.Cases[0].Passed)
	assert.False(t, report.Cases[1].Passed)
}

func TestRunTestCasesValidatesBeforeSideEffects(t *testing.T) {
	harness := &fakeHarness{}
	svc, src := setup(t, harness, true)

	_, err := svc.RunTestCases(context.Background(), filepath.Join(filepath.Dir(src), "solution.rb"), nil)
	assert.True(t, appErr.Is(err, appErr.LanguageNotSupported))

	_, err = svc.RunTestCases(context.Background(), filepath.Join(filepath.Dir(src), "missing.py"), nil)
	assert.True(t, appErr.Is(err, appErr.InvalidParams))

	_, err = svc.RunTestCases(context.Background(), "", nil)
	assert.True(t, appErr.Is(err, appErr.ValidationFailed))

	assert.Empty(t, harness.reqs)
}

func TestRunTestCasesNotFetched(t *testing.T) {
	harness := &fakeHarness{}
	svc, src := setup(t, harness, false)

	_, err := svc.RunTestCases(context.Background(), src, nil)
	assert.True(t, appErr.Is(err, appErr.NotFetched))
	assert.Empty(t, harness.reqs)
}

func TestRunTestCasesCompilationError(t *testing.T) {
	harness := &fakeHarness{err: appErr.CompileFailed("error: expected ';'")}
	svc, src := setup(t, harness, true)

	report, err := svc.RunTestCases(context.Background(), src, nil)
	assert.True(t, appErr.Is(err, appErr.CompilationError))
	assert.Empty(t, report.Cases)
}

func TestRunTestCasesRuntimeErrorKeepsPartialReport(t *testing.T) {
	harness := &fakeHarness{
		res: result.ExecutionResult{Stdout: "[0,1]\n---\n", ExitCode: 1, Stderr: "Traceback"},
		err: appErr.RuntimeFailed("Traceback"),
	}
	svc, src := setup(t, harness, true)

	report, err := svc.RunTestCases(context.Background(), src, nil)
	assert.True(t, appErr.Is(err, appErr.RuntimeError))
	assert.False(t, report.Passed)
	require.Len(t, report.Cases, 2)
	assert.True(t, report.Cases[0].Passed)
	assert.False(t, report.Cases[1].Passed)
}
