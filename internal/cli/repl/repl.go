package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"

	"leetcph/internal/cli/app"
	"leetcph/internal/cli/command"
)

const defaultPrompt = "cph> "

// Session holds REPL state.
type Session struct {
	app         *app.App
	commands    map[string]command.Command
	extensions  []string
	historyPath string
	out         io.Writer
	prompt      func(label string) (string, error)
}

// New creates a shell over a. extensions drives source file completion.
func New(a *app.App, commands map[string]command.Command, extensions []string, historyPath string, out io.Writer) *Session {
	return &Session{
		app:         a,
		commands:    commands,
		extensions:  extensions,
		historyPath: historyPath,
		out:         out,
		prompt: func(label string) (string, error) {
			return "", fmt.Errorf("missing argument: %s", label)
		},
	}
}

// Run reads commands until exit, EOF or a terminal error.
func (s *Session) Run(ctx context.Context) error {
	if s.historyPath != "" {
		_ = os.MkdirAll(filepath.Dir(s.historyPath), 0o755)
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          defaultPrompt,
		HistoryFile:     s.historyPath,
		AutoComplete:    s.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          s.out,
	})
	if err != nil {
		return fmt.Errorf("init line editor failed: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.prompt = func(label string) (string, error) {
		rl.SetPrompt(label + ": ")
		defer rl.SetPrompt(defaultPrompt)
		line, err := rl.Readline()
		if err != nil {
			return "", fmt.Errorf("read input failed: %w", err)
		}
		return strings.TrimSpace(line), nil
	}

	s.printLine("leetcph interactive shell, type help for commands")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input failed: %w", err)
		}
		exit, err := s.Execute(ctx, line)
		if err != nil && !errors.Is(err, app.ErrCasesFailed) {
			s.printLine("Error: %s", app.Describe(err))
		}
		if exit {
			s.printLine("bye")
			return nil
		}
	}
}

// Execute runs one input line and reports whether the shell should stop.
func (s *Session) Execute(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	tokens, err := shlex.Split(line)
	if err != nil {
		return false, fmt.Errorf("parse command failed: %w", err)
	}
	if len(tokens) == 0 {
		return false, nil
	}
	cmd, ok := command.Lookup(s.commands, tokens[0])
	if !ok {
		return false, fmt.Errorf("unknown command: %s (type help)", tokens[0])
	}
	params, err := command.ParseArgs(cmd, tokens[1:])
	if err != nil {
		return false, err
	}

	switch cmd.Name {
	case command.Exit:
		return true, nil
	case command.Help:
		s.printHelp()
		return false, nil
	case command.Status:
		return false, s.app.Status(ctx)
	case command.Run:
		// An empty file reruns the last source.
		return false, s.app.Run(ctx, params.Get("file"))
	case command.Fetch:
		if err := s.promptMissing(cmd, params); err != nil {
			return false, err
		}
		return false, s.app.Fetch(ctx, params.Get("url"))
	}
	return false, fmt.Errorf("command %s is not available in the shell", cmd.Name)
}

func (s *Session) promptMissing(cmd command.Command, params command.Params) error {
	for _, field := range command.Missing(cmd, params) {
		value, err := s.prompt(field.Prompt)
		if err != nil {
			return err
		}
		params.Set(field.Name, value)
	}
	return nil
}

func (s *Session) completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(s.commands))
	for _, name := range command.Names(s.commands) {
		if name == command.Run {
			items = append(items, readline.PcItem(name, readline.PcItemDynamic(s.sourceFiles)))
			continue
		}
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// sourceFiles lists files in the working directory with a known extension.
func (s *Session) sourceFiles(string) []string {
	entries, err := os.ReadDir(".")
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, known := range s.extensions {
			if ext == known {
				files = append(files, e.Name())
				break
			}
		}
	}
	sort.Strings(files)
	return files
}

func (s *Session) printHelp() {
	s.printLine("commands:")
	for _, name := range command.Names(s.commands) {
		cmd := s.commands[name]
		s.printLine("  %-14s %s", cmd.Usage(), cmd.Summary)
	}
	s.printLine("examples:")
	s.printLine("  fetch https://leetcode.com/problems/two-sum/")
	s.printLine("  run \"two sum.cpp\"")
}

func (s *Session) printLine(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format+"\n", args...)
}
