package main

import (
	"fmt"
	"os"

	"leetcph/internal/cli/app"
	"leetcph/internal/cli/command"
	"leetcph/internal/cli/config"
	"leetcph/internal/common/progress"
	judgeservice "leetcph/internal/judge/service"
	sandboxconfig "leetcph/internal/judge/sandbox/config"
	"leetcph/internal/judge/sandbox/engine"
	"leetcph/internal/judge/sandbox/observer"
	"leetcph/internal/judge/sandbox/runner"
	"leetcph/internal/problem/extractor"
	"leetcph/internal/problem/provider"
	"leetcph/internal/problem/repository"
	problemservice "leetcph/internal/problem/service"
)

type dependencies struct {
	app        *app.App
	commands   map[string]command.Command
	extensions []string
}

func build(cfg config.Config, quiet bool) (*dependencies, error) {
	languages := sandboxconfig.NewLocalRepository(
		sandboxconfig.MergeLanguages(sandboxconfig.DefaultLanguages(), cfg.Languages),
	)
	store := repository.NewFileStore(cfg.Workspace.Root, cfg.Workspace.CaseDir)

	eng := engine.NewEngine(engine.Config{StdoutStderrMaxBytes: cfg.Run.MaxOutputBytes})
	harness := runner.NewRunner(languages, eng, runner.Options{
		ScratchRoot:    cfg.Workspace.ScratchDir,
		RunTimeout:     cfg.Run.Timeout,
		CompileTimeout: cfg.Run.CompileTimeout,
		Metrics:        observer.LogMetricsRecorder{},
	})
	judgeSvc, err := judgeservice.NewJudgeService(judgeservice.Config{
		Languages: languages,
		Store:     store,
		Harness:   harness,
	})
	if err != nil {
		return nil, err
	}

	validator, err := provider.NewURLValidator(cfg.Fetch.URLPattern)
	if err != nil {
		return nil, err
	}
	pageProvider, err := newProvider(cfg.Fetch)
	if err != nil {
		return nil, err
	}
	fetchSvc, err := problemservice.NewFetchService(problemservice.FetchConfig{
		Validator: validator,
		Provider:  pageProvider,
		Extractor: extractor.NewDefault(),
		Store:     store,
		Timeout:   cfg.Fetch.Timeout,
	})
	if err != nil {
		return nil, err
	}

	var reporter progress.Reporter = progress.NewWriterReporter(os.Stderr)
	if quiet {
		reporter = progress.LogReporter{}
	}
	return &dependencies{
		app: app.New(app.Options{
			Fetcher:   fetchSvc,
			Runner:    judgeSvc,
			Store:     store,
			StatePath: cfg.StatePath(),
			Out:       os.Stdout,
			Err:       os.Stderr,
			Reporter:  reporter,
		}),
		commands:   command.Registry(),
		extensions: languages.Extensions(),
	}, nil
}

func newProvider(cfg config.FetchConfig) (provider.Provider, error) {
	switch cfg.Provider {
	case config.ProviderChrome:
		return provider.NewChromeProvider(provider.ChromeConfig{
			ContentClass:    cfg.ContentClass,
			UserAgent:       cfg.UserAgent,
			ExecPath:        cfg.ChromePath,
			Headless:        cfg.Headless == nil || *cfg.Headless,
			PageTimeout:     cfg.PageTimeout,
			SelectorTimeout: cfg.SelectorTimeout,
		}), nil
	case config.ProviderHTTP:
		return provider.NewHTTPProvider(provider.HTTPConfig{
			ContentClass: cfg.ContentClass,
			UserAgent:    cfg.UserAgent,
			Timeout:      cfg.Timeout,
		}, nil), nil
	default:
		return nil, fmt.Errorf("unknown fetch provider: %s", cfg.Provider)
	}
}
