package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leetcph/internal/common/progress"
	"leetcph/internal/judge/checker"
	"leetcph/internal/judge/sandbox"
	"leetcph/internal/judge/sandbox/config"
	"leetcph/internal/judge/sandbox/result"
	"leetcph/internal/problem/repository"
	appErr "leetcph/pkg/errors"
	"leetcph/pkg/utils/logger"
)

// JudgeService runs a candidate source file against the stored cases.
type JudgeService struct {
	languages config.LanguageSpecRepository
	store     repository.TestCaseRepository
	harness   sandbox.Harness
}

// Config holds service dependencies.
type Config struct {
	Languages config.LanguageSpecRepository
	Store     repository.TestCaseRepository
	Harness   sandbox.Harness
}

// NewJudgeService creates a new judge service.
func NewJudgeService(cfg Config) (*JudgeService, error) {
	if cfg.Languages == nil {
		return nil, fmt.Errorf("language repository is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Harness == nil {
		return nil, fmt.Errorf("harness is required")
	}
	return &JudgeService{languages: cfg.Languages, store: cfg.Store, harness: cfg.Harness}, nil
}

// RunTestCases picks the language from the file extension, runs the
// candidate once over every stored case and judges its output.
//
// On a runtime error the report judged from the partial output is returned
// together with the error. Every other failure returns an empty report.
func (s *JudgeService) RunTestCases(ctx context.Context, sourcePath string, reporter progress.Reporter) (result.JudgeReport, error) {
	reporter = progress.OrNoop(reporter)
	if strings.TrimSpace(sourcePath) == "" {
		return result.JudgeReport{}, appErr.ValidationError("source_path", "required")
	}
	lang, err := s.languages.LanguageForFile(ctx, sourcePath)
	if err != nil {
		return result.JudgeReport{}, err
	}
	if err := checkSourceFile(sourcePath); err != nil {
		return result.JudgeReport{}, err
	}

	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)

	reporter.Report(ctx, progress.Update{Stage: progress.StageLoad, Message: "Loading test cases..."})
	set, err := s.store.Read(ctx)
	if err != nil {
		return result.JudgeReport{}, err
	}

	reporter.Report(ctx, progress.Update{
		Stage:   progress.StageRun,
		Message: fmt.Sprintf("Running %d test case(s) with %s...", set.Len(), displayName(lang.Name, lang.ID)),
	})
	execRes, err := s.harness.Run(ctx, sandbox.RunRequest{
		RunID:      runID,
		SourcePath: sourcePath,
		LanguageID: lang.ID,
		Cases:      set,
	})
	if err != nil {
		logger.Warn(ctx, "candidate run failed",
			zap.String("language", lang.ID),
			zap.Int("code", int(appErr.GetCode(err))),
			zap.Error(err),
		)
		if appErr.Is(err, appErr.RuntimeError) {
			report := checker.JudgeSet(execRes, set)
			report.Passed = false
			return report, err
		}
		return result.JudgeReport{}, err
	}

	reporter.Report(ctx, progress.Update{Stage: progress.StageJudge, Message: "Checking output..."})
	report := checker.JudgeSet(execRes, set)
	logger.Info(ctx, "run judged",
		zap.String("language", lang.ID),
		zap.Int("cases", len(report.Cases)),
		zap.Int("passed", report.PassedCount()),
		zap.Int("extra_segments", report.ExtraSegments),
		zap.Duration("duration", execRes.Duration),
	)
	reporter.Report(ctx, progress.Update{
		Stage:   progress.StageDone,
		Message: fmt.Sprintf("%d/%d passed", report.PassedCount(), len(report.Cases)),
	})
	return report, nil
}

func checkSourceFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return appErr.Newf(appErr.InvalidParams, "Source file %q does not exist", path)
		}
		return appErr.Wrapf(err, appErr.InvalidParams, "stat source file failed")
	}
	if info.IsDir() {
		return appErr.Newf(appErr.InvalidParams, "Source path %q is a directory", path)
	}
	return nil
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
