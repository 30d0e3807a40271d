package runner

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leetcph/internal/judge/sandbox"
	"leetcph/internal/judge/sandbox/config"
	"leetcph/internal/judge/sandbox/engine"
	"leetcph/internal/judge/sandbox/observer"
	"leetcph/internal/judge/sandbox/profile"
	"leetcph/internal/judge/sandbox/result"
	"leetcph/internal/judge/sandbox/spec"
	appErr "leetcph/pkg/errors"
	"leetcph/pkg/utils/logger"
)

const (
	defaultRunTimeout     = 10 * time.Second
	defaultCompileTimeout = 30 * time.Second
	scratchDirName        = "leetcph"
)

// Options tunes the default runner.
type Options struct {
	// ScratchRoot holds per-run workspaces; defaults to $TMPDIR/leetcph.
	ScratchRoot    string
	RunTimeout     time.Duration
	CompileTimeout time.Duration
	Metrics        observer.MetricsRecorder
	// Executor overrides the single-process strategy.
	Executor Executor
}

// DefaultRunner implements sandbox.Harness on top of an engine.
type DefaultRunner struct {
	languages      config.LanguageSpecRepository
	eng            engine.Engine
	executor       Executor
	metrics        observer.MetricsRecorder
	scratchRoot    string
	runTimeout     time.Duration
	compileTimeout time.Duration
}

var _ sandbox.Harness = (*DefaultRunner)(nil)

// NewRunner creates a new runner backed by the sandbox engine.
func NewRunner(languages config.LanguageSpecRepository, eng engine.Engine, opts Options) *DefaultRunner {
	r := &DefaultRunner{
		languages:      languages,
		eng:            eng,
		executor:       opts.Executor,
		metrics:        opts.Metrics,
		scratchRoot:    opts.ScratchRoot,
		runTimeout:     opts.RunTimeout,
		compileTimeout: opts.CompileTimeout,
	}
	if r.executor == nil {
		r.executor = NewBatchExecutor(eng)
	}
	if r.metrics == nil {
		r.metrics = observer.NoopMetricsRecorder{}
	}
	if r.scratchRoot == "" {
		r.scratchRoot = filepath.Join(os.TempDir(), scratchDirName)
	}
	if r.runTimeout <= 0 {
		r.runTimeout = defaultRunTimeout
	}
	if r.compileTimeout <= 0 {
		r.compileTimeout = defaultCompileTimeout
	}
	return r
}

func (r *DefaultRunner) Run(ctx context.Context, req sandbox.RunRequest) (result.ExecutionResult, error) {
	if err := validateRunRequest(req); err != nil {
		return result.ExecutionResult{}, err
	}
	lang, err := r.languages.GetLanguageSpec(ctx, req.LanguageID)
	if err != nil {
		return result.ExecutionResult{}, err
	}
	sourcePath, err := filepath.Abs(req.SourcePath)
	if err != nil {
		return result.ExecutionResult{}, appErr.Wrapf(err, appErr.InvalidParams, "resolve source path failed")
	}
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}

	workDir, err := r.prepareWorkDir(req.RunID)
	if err != nil {
		return result.ExecutionResult{}, err
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			logger.Warn(ctx, "remove work dir failed", zap.String("work_dir", workDir), zap.Error(rmErr))
		}
	}()

	vars := templateVars(lang, sourcePath, workDir)
	if lang.CompileEnabled() {
		compileRes, err := r.compile(ctx, req.RunID, lang, workDir, vars)
		if err != nil {
			return result.ExecutionResult{}, err
		}
		if !compileRes.OK {
			return result.ExecutionResult{}, appErr.CompileFailed(compileRes.Error)
		}
	}

	cmd, err := buildCommand(lang.RunCmdTpl, vars)
	if err != nil {
		return result.ExecutionResult{}, err
	}
	timeout := scaleTimeout(r.runTimeout, lang.TimeMultiplier)
	execRes, err := r.executor.Execute(ctx, Job{
		RunID:   req.RunID,
		WorkDir: workDir,
		Cmd:     cmd,
		Env:     lang.Env,
		Cases:   req.Cases,
		Timeout: timeout,
	})
	if err != nil {
		r.metrics.ObserveRun(ctx, lang.ID, string(result.VerdictSE), 0, 0)
		return result.ExecutionResult{}, appErr.Wrapf(err, appErr.JudgeSystemError, "run %s failed", lang.ID)
	}

	verdict := mapRunVerdict(execRes)
	r.metrics.ObserveRun(ctx, lang.ID, string(verdict), execRes.Duration, len(execRes.Stdout))
	switch verdict {
	case result.VerdictTLE:
		return execRes, appErr.Newf(appErr.TimeLimitExceeded, "Time limit exceeded (%s)", timeout)
	case result.VerdictRE:
		return execRes, appErr.RuntimeFailed(runtimeDiagnostic(execRes))
	}
	return execRes, nil
}

func (r *DefaultRunner) compile(ctx context.Context, runID string, lang profile.LanguageSpec, workDir string, vars map[string]string) (result.CompileResult, error) {
	cmd, err := buildCommand(lang.CompileCmdTpl, vars)
	if err != nil {
		return result.CompileResult{}, err
	}
	runRes, err := r.eng.Run(ctx, spec.RunSpec{
		RunID:    runID,
		TaskType: profile.TaskTypeCompile,
		WorkDir:  workDir,
		Cmd:      cmd,
		Env:      lang.Env,
		WallTime: r.compileTimeout,
	})
	if err != nil {
		r.metrics.ObserveCompile(ctx, lang.ID, false, 0)
		return result.CompileResult{}, appErr.Wrapf(err, appErr.JudgeSystemError, "compiler for %s is not available", lang.ID)
	}
	if runRes.TimedOut {
		r.metrics.ObserveCompile(ctx, lang.ID, false, runRes.WallTime)
		return result.CompileResult{}, appErr.Newf(appErr.TimeLimitExceeded, "Compilation timed out (%s)", r.compileTimeout)
	}

	compileRes := result.CompileResult{
		OK:       runRes.ExitCode == 0 && strings.TrimSpace(runRes.Stderr) == "",
		ExitCode: runRes.ExitCode,
		WallTime: runRes.WallTime,
	}
	if !compileRes.OK {
		compileRes.Error = runRes.Stderr
		if strings.TrimSpace(compileRes.Error) == "" {
			compileRes.Error = fmt.Sprintf("compiler exited with status %d", runRes.ExitCode)
		}
	}
	r.metrics.ObserveCompile(ctx, lang.ID, compileRes.OK, compileRes.WallTime)
	return compileRes, nil
}

func (r *DefaultRunner) prepareWorkDir(runID string) (string, error) {
	if err := os.MkdirAll(r.scratchRoot, 0755); err != nil {
		return "", appErr.Wrapf(err, appErr.JudgeSystemError, "create scratch root failed")
	}
	workDir, err := os.MkdirTemp(r.scratchRoot, runID+"-")
	if err != nil {
		return "", appErr.Wrapf(err, appErr.JudgeSystemError, "create work dir failed")
	}
	return workDir, nil
}

func validateRunRequest(req sandbox.RunRequest) error {
	if req.SourcePath == "" {
		return appErr.ValidationError("source_path", "required")
	}
	if req.LanguageID == "" {
		return appErr.ValidationError("language_id", "required")
	}
	return nil
}

func mapRunVerdict(res result.ExecutionResult) result.Verdict {
	if res.TimedOut {
		return result.VerdictTLE
	}
	if res.ExitCode != 0 || strings.TrimSpace(res.Stderr) != "" {
		return result.VerdictRE
	}
	return result.VerdictAC
}

func runtimeDiagnostic(res result.ExecutionResult) string {
	if strings.TrimSpace(res.Stderr) != "" {
		return res.Stderr
	}
	return fmt.Sprintf("exit status %d", res.ExitCode)
}

func scaleTimeout(value time.Duration, multiplier float64) time.Duration {
	if multiplier <= 0 {
		return value
	}
	return time.Duration(math.Ceil(float64(value) * multiplier))
}
