// Package app binds the fetch and run actions to terminal output.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"leetcph/internal/cli/state"
	"leetcph/internal/common/progress"
	"leetcph/internal/judge/report"
	"leetcph/internal/judge/sandbox/result"
	"leetcph/internal/problem/repository"
	appErr "leetcph/pkg/errors"
	"leetcph/pkg/utils/logger"
)

// ErrCasesFailed is returned by Run when the candidate ran but at least one
// case did not pass.
var ErrCasesFailed = errors.New("some test cases failed")

// Fetcher is the fetch action.
type Fetcher interface {
	FetchTestCases(ctx context.Context, pageURL string, reporter progress.Reporter) error
}

// Runner is the run action.
type Runner interface {
	RunTestCases(ctx context.Context, sourcePath string, reporter progress.Reporter) (result.JudgeReport, error)
}

// Options holds App dependencies.
type Options struct {
	Fetcher   Fetcher
	Runner    Runner
	Store     repository.TestCaseRepository
	StatePath string
	// Out receives reports; Err receives progress and errors.
	Out      io.Writer
	Err      io.Writer
	Reporter progress.Reporter
}

// App runs user actions and prints their outcome.
type App struct {
	fetcher   Fetcher
	runner    Runner
	store     repository.TestCaseRepository
	statePath string
	out       io.Writer
	errOut    io.Writer
	reporter  progress.Reporter
	now       func() time.Time
}

func New(opts Options) *App {
	a := &App{
		fetcher:   opts.Fetcher,
		runner:    opts.Runner,
		store:     opts.Store,
		statePath: opts.StatePath,
		out:       opts.Out,
		errOut:    opts.Err,
		reporter:  opts.Reporter,
		now:       time.Now,
	}
	if a.out == nil {
		a.out = io.Discard
	}
	if a.errOut == nil {
		a.errOut = io.Discard
	}
	if a.reporter == nil {
		a.reporter = progress.NewWriterReporter(a.errOut)
	}
	return a
}

// Fetch downloads and stores the test cases of pageURL.
func (a *App) Fetch(ctx context.Context, pageURL string) error {
	pageURL = strings.TrimSpace(pageURL)
	if err := a.fetcher.FetchTestCases(ctx, pageURL, a.reporter); err != nil {
		return err
	}

	st := a.loadState(ctx)
	st.ProblemURL = pageURL
	st.FetchedAt = a.now()
	st.CaseCount = 0
	if set, err := a.store.Read(ctx); err == nil {
		st.CaseCount = set.Len()
	}
	a.saveState(ctx, st)

	fmt.Fprintf(a.out, "Test cases fetched successfully! (%d case(s))\n", st.CaseCount)
	return nil
}

// Run judges sourcePath, or the last run source when sourcePath is empty.
func (a *App) Run(ctx context.Context, sourcePath string) error {
	st := a.loadState(ctx)
	if strings.TrimSpace(sourcePath) == "" {
		sourcePath = st.LastSource
	}
	if sourcePath == "" {
		return appErr.ValidationError("file", "required")
	}

	rep, err := a.runner.RunTestCases(ctx, sourcePath, a.reporter)
	if err != nil && len(rep.Cases) == 0 {
		return err
	}
	if renderErr := report.Render(a.out, rep); renderErr != nil {
		return multierr.Append(err, renderErr)
	}

	st.LastSource = sourcePath
	st.LastRunAt = a.now()
	passed := err == nil && rep.Passed
	st.LastPassed = &passed
	a.saveState(ctx, st)

	if err != nil {
		return err
	}
	if !rep.Passed {
		return ErrCasesFailed
	}
	return nil
}

// Status prints what the workspace holds.
func (a *App) Status(ctx context.Context) error {
	st := a.loadState(ctx)
	if st.ProblemURL == "" {
		fmt.Fprintln(a.out, "Problem:     (none fetched)")
	} else {
		fmt.Fprintf(a.out, "Problem:     %s\n", st.ProblemURL)
		fmt.Fprintf(a.out, "Fetched at:  %s\n", st.FetchedAt.Format(time.RFC3339))
	}
	if set, err := a.store.Read(ctx); err == nil {
		fmt.Fprintf(a.out, "Test cases:  %d\n", set.Len())
	} else {
		fmt.Fprintf(a.out, "Test cases:  %s\n", Describe(err))
	}
	if st.LastSource != "" {
		outcome := "unknown"
		if st.LastPassed != nil {
			outcome = "failed"
			if *st.LastPassed {
				outcome = "passed"
			}
		}
		fmt.Fprintf(a.out, "Last run:    %s (%s, %s)\n", st.LastSource, outcome, st.LastRunAt.Format(time.RFC3339))
	}
	return nil
}

// Describe renders err for the terminal.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrCasesFailed) {
		return err.Error()
	}
	e := appErr.GetError(err)
	if e == nil {
		return err.Error()
	}
	msg := err.Error()
	if e.Err != nil && !strings.Contains(msg, e.Err.Error()) {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (a *App) loadState(ctx context.Context) state.WorkspaceState {
	if a.statePath == "" {
		return state.WorkspaceState{}
	}
	st, err := state.Load(a.statePath)
	if err != nil {
		logger.Warn(ctx, "load workspace state failed", zap.Error(err))
	}
	return st
}

func (a *App) saveState(ctx context.Context, st state.WorkspaceState) {
	if a.statePath == "" {
		return
	}
	if err := state.Save(a.statePath, st); err != nil {
		logger.Warn(ctx, "save workspace state failed", zap.Error(err))
	}
}
