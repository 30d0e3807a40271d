package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"leetcph/internal/cli/app"
	"leetcph/internal/cli/command"
	"leetcph/internal/cli/config"
	"leetcph/internal/cli/repl"
	appErr "leetcph/pkg/errors"
	"leetcph/pkg/utils/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage
	configPath := flag.String("config", config.DefaultConfigPath, "Path to config file")
	workspace := flag.String("workspace", "", "Override workspace root")
	providerName := flag.String("provider", "", "Override page provider (chrome|http)")
	runTimeout := flag.Duration("timeout", 0, "Override run timeout (e.g. 5s)")
	logLevel := flag.String("log-level", "", "Override log level (debug|info|warn|error)")
	quiet := flag.Bool("quiet", false, "Send progress to the log instead of the terminal")
	flag.Parse()

	cfg, err := config.Load(*configPath, *configPath == config.DefaultConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		return 2
	}
	if *workspace != "" {
		cfg.Workspace.Root = *workspace
	}
	if *providerName != "" {
		cfg.Fetch.Provider = *providerName
	}
	if *runTimeout > 0 {
		cfg.Run.Timeout = *runTimeout
	}
	if *logLevel != "" {
		cfg.Logger.Level = *logLevel
	}

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	deps, err := build(cfg, *quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", app.Describe(err))
		return 2
	}

	args := flag.Args()
	if len(args) == 0 {
		session := repl.New(deps.app, deps.commands, deps.extensions, cfg.HistoryPath(), os.Stdout)
		if err := session.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return exitCode(dispatch(ctx, deps, args))
}

func dispatch(ctx context.Context, deps *dependencies, args []string) error {
	cmd, ok := command.Lookup(deps.commands, args[0])
	if !ok {
		usage()
		return appErr.Newf(appErr.InvalidParams, "unknown command: %s", args[0])
	}
	params, err := command.ParseArgs(cmd, args[1:])
	if err != nil {
		return appErr.BadRequest(err.Error())
	}

	switch cmd.Name {
	case command.Fetch:
		if missing := command.Missing(cmd, params); len(missing) > 0 {
			return appErr.Newf(appErr.InvalidParams, "usage: cph %s", cmd.Usage())
		}
		return deps.app.Fetch(ctx, params.Get("url"))
	case command.Run:
		return deps.app.Run(ctx, params.Get("file"))
	case command.Status:
		return deps.app.Status(ctx)
	case command.Help:
		usage()
		return nil
	default:
		return appErr.Newf(appErr.InvalidParams, "command %s is only available in the shell", cmd.Name)
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, app.ErrCasesFailed) {
		return 1
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", app.Describe(err))
	return appErr.GetCode(err).ExitCode()
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "usage: cph [flags] [command] [args]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "commands (an empty command starts the interactive shell):")
	registry := command.Registry()
	for _, name := range command.Names(registry) {
		if name == command.Exit {
			continue
		}
		cmd := registry[name]
		fmt.Fprintf(out, "  %-14s %s\n", cmd.Usage(), cmd.Summary)
	}
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "flags:")
	flag.PrintDefaults()
}
