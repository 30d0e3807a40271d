package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"leetcph/internal/judge/sandbox/profile"
	"leetcph/pkg/utils/logger"
)

const (
	DefaultConfigPath      = "configs/cph.yaml"
	DefaultCaseDir         = "testcases"
	DefaultStateFile       = ".cph/state.json"
	DefaultHistoryFile     = ".cph/history"
	DefaultProvider        = ProviderChrome
	DefaultFetchTimeout    = 60 * time.Second
	DefaultPageTimeout     = 30 * time.Second
	DefaultSelectorTimeout = 10 * time.Second
	DefaultRunTimeout      = 10 * time.Second
	DefaultCompileTimeout  = 30 * time.Second
	DefaultMaxOutputBytes  = 8 << 20
)

// Page content providers.
const (
	ProviderChrome = "chrome"
	ProviderHTTP   = "http"
)

// Config holds CLI configuration.
type Config struct {
	Logger    logger.Config          `yaml:"logger"`
	Workspace WorkspaceConfig        `yaml:"workspace"`
	Fetch     FetchConfig            `yaml:"fetch"`
	Run       RunConfig              `yaml:"run"`
	Languages []profile.LanguageSpec `yaml:"languages"`
}

// WorkspaceConfig locates persisted state.
type WorkspaceConfig struct {
	// Root is the project directory; defaults to the working directory.
	Root        string `yaml:"root"`
	CaseDir     string `yaml:"caseDir"`
	StateFile   string `yaml:"stateFile"`
	HistoryFile string `yaml:"historyFile"`
	// ScratchDir holds per-run build directories; defaults to the OS temp dir.
	ScratchDir string `yaml:"scratchDir"`
}

// FetchConfig configures the page content provider.
type FetchConfig struct {
	Provider        string        `yaml:"provider"`
	URLPattern      string        `yaml:"urlPattern"`
	ContentClass    string        `yaml:"contentClass"`
	UserAgent       string        `yaml:"userAgent"`
	Timeout         time.Duration `yaml:"timeout"`
	PageTimeout     time.Duration `yaml:"pageTimeout"`
	SelectorTimeout time.Duration `yaml:"selectorTimeout"`
	Headless        *bool         `yaml:"headless"`
	ChromePath      string        `yaml:"chromePath"`
}

// RunConfig bounds candidate execution.
type RunConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	CompileTimeout time.Duration `yaml:"compileTimeout"`
	MaxOutputBytes int64         `yaml:"maxOutputBytes"`
}

// Load reads path. When optional is set a missing file yields defaults.
func Load(path string, optional bool) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			applyDefaults(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file failed: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

// CaseDirPath is the directory holding input.txt and output.txt.
func (c Config) CaseDirPath() string {
	return c.resolve(c.Workspace.CaseDir)
}

// StatePath is the JSON file recording the last fetch and run.
func (c Config) StatePath() string {
	return c.resolve(c.Workspace.StateFile)
}

// HistoryPath is the interactive shell history file.
func (c Config) HistoryPath() string {
	return c.resolve(c.Workspace.HistoryFile)
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Workspace.Root, p)
}

func applyDefaults(cfg *Config) {
	if cfg.Workspace.Root == "" {
		cfg.Workspace.Root = "."
	}
	if cfg.Workspace.CaseDir == "" {
		cfg.Workspace.CaseDir = DefaultCaseDir
	}
	if cfg.Workspace.StateFile == "" {
		cfg.Workspace.StateFile = DefaultStateFile
	}
	if cfg.Workspace.HistoryFile == "" {
		cfg.Workspace.HistoryFile = DefaultHistoryFile
	}
	if cfg.Fetch.Provider == "" {
		cfg.Fetch.Provider = DefaultProvider
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = DefaultFetchTimeout
	}
	if cfg.Fetch.PageTimeout == 0 {
		cfg.Fetch.PageTimeout = DefaultPageTimeout
	}
	if cfg.Fetch.SelectorTimeout == 0 {
		cfg.Fetch.SelectorTimeout = DefaultSelectorTimeout
	}
	if cfg.Fetch.Headless == nil {
		value := true
		cfg.Fetch.Headless = &value
	}
	if cfg.Run.Timeout == 0 {
		cfg.Run.Timeout = DefaultRunTimeout
	}
	if cfg.Run.CompileTimeout == 0 {
		cfg.Run.CompileTimeout = DefaultCompileTimeout
	}
	if cfg.Run.MaxOutputBytes == 0 {
		cfg.Run.MaxOutputBytes = DefaultMaxOutputBytes
	}
}

func validate(cfg Config) error {
	switch cfg.Fetch.Provider {
	case ProviderChrome, ProviderHTTP:
	default:
		return fmt.Errorf("unknown fetch provider: %s", cfg.Fetch.Provider)
	}
	if cfg.Run.Timeout < 0 || cfg.Run.CompileTimeout < 0 || cfg.Fetch.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	for i, lang := range cfg.Languages {
		if lang.ID == "" {
			return fmt.Errorf("languages[%d]: id is required", i)
		}
		if lang.RunCmdTpl == "" {
			return fmt.Errorf("languages[%d] (%s): runCmd is required", i, lang.ID)
		}
	}
	return nil
}
