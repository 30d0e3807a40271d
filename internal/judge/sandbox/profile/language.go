// Package profile defines language and task profiles used by the sandbox.
package profile

import (
	"path/filepath"
	"strings"
)

// Placeholders understood by command templates.
const (
	PlaceholderSource    = "{src}"
	PlaceholderSourceDir = "{srcdir}"
	PlaceholderBinary    = "{bin}"
	PlaceholderDir       = "{dir}"
	PlaceholderClass     = "{class}"
)

// LanguageSpec defines how to compile and run a language.
// CompileCmdTpl is optional; RunCmdTpl is required.
type LanguageSpec struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Extensions     []string `yaml:"extensions"`
	BinaryFile     string   `yaml:"binaryFile"`
	CompileCmdTpl  string   `yaml:"compileCmd"`
	RunCmdTpl      string   `yaml:"runCmd"`
	Env            []string `yaml:"env"`
	TimeMultiplier float64  `yaml:"timeMultiplier"`
}

// CompileEnabled reports whether the language has a compile step.
func (l LanguageSpec) CompileEnabled() bool {
	return strings.TrimSpace(l.CompileCmdTpl) != ""
}

// MatchesFile reports whether path carries one of the language's extensions.
func (l LanguageSpec) MatchesFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, e := range l.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
