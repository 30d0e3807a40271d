package config

import "leetcph/internal/judge/sandbox/profile"

// DefaultLanguages is the built-in adapter table. Configuration may replace
// entries by id or add new ones.
func DefaultLanguages() []profile.LanguageSpec {
	return []profile.LanguageSpec{
		{
			ID:             "cpp",
			Name:           "C++17",
			Extensions:     []string{".cpp", ".cc", ".cxx"},
			BinaryFile:     "main",
			CompileCmdTpl:  "g++ -std=c++17 -O2 -o {bin} {src}",
			RunCmdTpl:      "{bin}",
			TimeMultiplier: 1,
		},
		{
			ID:             "python",
			Name:           "Python 3",
			Extensions:     []string{".py"},
			RunCmdTpl:      "python3 {src}",
			TimeMultiplier: 2,
		},
		{
			ID:             "java",
			Name:           "Java",
			Extensions:     []string{".java"},
			CompileCmdTpl:  "javac -encoding UTF-8 -d {dir} {src}",
			RunCmdTpl:      "java -cp {dir} {class}",
			TimeMultiplier: 2,
		},
		{
			ID:             "javascript",
			Name:           "JavaScript (Node.js)",
			Extensions:     []string{".js"},
			RunCmdTpl:      "node {src}",
			TimeMultiplier: 1.5,
		},
	}
}

// MergeLanguages overlays configured specs on top of the defaults by id.
func MergeLanguages(defaults, overrides []profile.LanguageSpec) []profile.LanguageSpec {
	merged := make([]profile.LanguageSpec, 0, len(defaults)+len(overrides))
	merged = append(merged, defaults...)
	return append(merged, overrides...)
}
