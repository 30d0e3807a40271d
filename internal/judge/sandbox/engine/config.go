package engine

import "time"

const (
	defaultStdoutStderrMaxBytes int64 = 8 << 20
	defaultWaitDelay                  = 500 * time.Millisecond
)

// Config controls engine behavior.
type Config struct {
	// StdoutStderrMaxBytes caps how much of each stream is kept.
	StdoutStderrMaxBytes int64 `yaml:"stdoutStderrMaxBytes"`
	// WaitDelay bounds how long to wait for output pipes after the process
	// is gone, e.g. when a grandchild still holds them open.
	WaitDelay time.Duration `yaml:"waitDelay"`
}

func (c Config) withDefaults() Config {
	if c.StdoutStderrMaxBytes <= 0 {
		c.StdoutStderrMaxBytes = defaultStdoutStderrMaxBytes
	}
	if c.WaitDelay <= 0 {
		c.WaitDelay = defaultWaitDelay
	}
	return c
}
