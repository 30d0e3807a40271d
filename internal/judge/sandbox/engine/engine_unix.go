//go:build unix

package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"leetcph/internal/judge/sandbox/result"
	"leetcph/internal/judge/sandbox/spec"
	"leetcph/pkg/utils/logger"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

type localEngine struct {
	cfg Config
}

// NewEngine creates an engine that runs commands directly on the host, each
// in its own process group so a timeout can kill the whole tree.
func NewEngine(cfg Config) Engine {
	return &localEngine{cfg: cfg.withDefaults()}
}

func (e *localEngine) Run(ctx context.Context, runSpec spec.RunSpec) (result.RunResult, error) {
	if err := validateRunSpec(runSpec); err != nil {
		return result.RunResult{}, err
	}

	cmd := exec.Command(runSpec.Cmd[0], runSpec.Cmd[1:]...)
	cmd.Dir = runSpec.WorkDir
	cmd.Env = append(os.Environ(), runSpec.Env...)
	cmd.Stdin = strings.NewReader(runSpec.Stdin)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.WaitDelay = e.cfg.WaitDelay

	stdout := newLimitedBuffer(e.cfg.StdoutStderrMaxBytes)
	stderr := newLimitedBuffer(e.cfg.StdoutStderrMaxBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return result.RunResult{}, fmt.Errorf("start %s: %w", runSpec.Cmd[0], err)
	}
	pid := cmd.Process.Pid

	var timedOut atomic.Bool
	killCtx, cancelKill := context.WithCancel(ctx)
	defer cancelKill()

	done := make(chan struct{})
	go func() {
		var wallTimer <-chan time.Time
		if runSpec.WallTime > 0 {
			timer := time.NewTimer(runSpec.WallTime)
			defer timer.Stop()
			wallTimer = timer.C
		}
		select {
		case <-killCtx.Done():
			killProcessGroup(pid)
		case <-wallTimer:
			timedOut.Store(true)
			killProcessGroup(pid)
		case <-done:
		}
	}()

	waitErr := cmd.Wait()
	close(done)
	// The group may outlive its leader; reap stragglers holding our pipes.
	killProcessGroup(pid)

	runResult := result.RunResult{
		ExitCode:        exitCodeFromErr(waitErr, cmd.ProcessState),
		WallTime:        time.Since(start),
		Stdout:          stdout.String(),
		Stderr:          stderr.String(),
		TimedOut:        timedOut.Load(),
		OutputTruncated: stdout.truncated || stderr.truncated,
	}
	if runResult.TimedOut && runResult.ExitCode == 0 {
		runResult.ExitCode = -1
	}
	if waitErr != nil && errors.Is(waitErr, exec.ErrWaitDelay) {
		logger.Debug(ctx, "output pipes closed after wait delay", zap.String("task", string(runSpec.TaskType)))
	}
	return runResult, nil
}

func exitCodeFromErr(err error, state *os.ProcessState) int {
	if state != nil {
		return state.ExitCode()
	}
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func killProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = unix.Kill(-pid, unix.SIGKILL)
}

func validateRunSpec(runSpec spec.RunSpec) error {
	if len(runSpec.Cmd) == 0 || runSpec.Cmd[0] == "" {
		return fmt.Errorf("command is required")
	}
	if runSpec.WorkDir == "" {
		return fmt.Errorf("work dir is required")
	}
	return nil
}
