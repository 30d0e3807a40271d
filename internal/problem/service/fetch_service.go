package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"leetcph/internal/common/progress"
	"leetcph/internal/problem/model"
	"leetcph/internal/problem/provider"
	"leetcph/internal/problem/repository"
	pkgerrors "leetcph/pkg/errors"
	"leetcph/pkg/utils/logger"
)

const defaultFetchTimeout = 60 * time.Second

// Extractor turns page blocks into a case set.
type Extractor interface {
	Extract(blocks []string) (model.TestCaseSet, error)
}

// FetchService acquires test cases from a problem page and persists them.
type FetchService struct {
	validator *provider.URLValidator
	provider  provider.Provider
	extractor Extractor
	store     repository.TestCaseRepository
	timeout   time.Duration
}

// FetchConfig holds service dependencies and settings.
type FetchConfig struct {
	Validator *provider.URLValidator
	Provider  provider.Provider
	Extractor Extractor
	Store     repository.TestCaseRepository
	// Timeout bounds loading the page and reading its blocks.
	Timeout time.Duration
}

// NewFetchService creates a new fetch service.
func NewFetchService(cfg FetchConfig) (*FetchService, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Validator == nil {
		v, err := provider.NewURLValidator("")
		if err != nil {
			return nil, err
		}
		cfg.Validator = v
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultFetchTimeout
	}
	return &FetchService{
		validator: cfg.Validator,
		provider:  cfg.Provider,
		extractor: cfg.Extractor,
		store:     cfg.Store,
		timeout:   cfg.Timeout,
	}, nil
}

// FetchTestCases validates pageURL, reads its statement blocks, extracts the
// cases and overwrites the stored set. Nothing is written unless extraction
// succeeds. The provider session is closed on every path.
func (s *FetchService) FetchTestCases(ctx context.Context, pageURL string, reporter progress.Reporter) (err error) {
	reporter = progress.OrNoop(reporter)
	if err := s.validator.Validate(pageURL); err != nil {
		return err
	}
	ctx = logger.WithProblemURL(ctx, pageURL)

	reporter.Report(ctx, progress.Update{Stage: progress.StageFetch, Message: "Starting page session..."})
	sess, err := s.provider.Open(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.NetworkError)
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			logger.Warn(ctx, "close page session failed", zap.Error(closeErr))
			err = multierr.Append(err, pkgerrors.Wrapf(closeErr, pkgerrors.NetworkError, "close page session failed"))
		}
	}()

	reporter.Report(ctx, progress.Update{Stage: progress.StageFetch, Message: "Loading problem page..."})
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	blocks, err := sess.FetchBlocks(fetchCtx, pageURL)
	if err != nil {
		logger.Warn(ctx, "fetch page failed", zap.Error(err))
		return pkgerrors.Wrap(err, pkgerrors.NetworkError)
	}
	logger.Debug(ctx, "page blocks read", zap.Int("blocks", len(blocks)))

	reporter.Report(ctx, progress.Update{Stage: progress.StageExtract, Message: "Extracting test cases..."})
	set, err := s.extractor.Extract(blocks)
	if err != nil {
		return err
	}

	reporter.Report(ctx, progress.Update{Stage: progress.StageSave, Message: "Saving test cases..."})
	if err := s.store.Write(ctx, set); err != nil {
		return err
	}

	logger.Info(ctx, "test cases fetched", zap.Int("cases", set.Len()))
	reporter.Report(ctx, progress.Update{
		Stage:   progress.StageDone,
		Message: fmt.Sprintf("Saved %d test case(s)", set.Len()),
	})
	return nil
}
