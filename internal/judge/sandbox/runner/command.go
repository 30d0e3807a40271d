package runner

import (
	"path/filepath"
	"strings"

	"github.com/google/shlex"

	"leetcph/internal/judge/sandbox/profile"
	appErr "leetcph/pkg/errors"
)

const defaultBinaryName = "main"

// templateVars resolves the placeholders for one source file and workspace.
func templateVars(lang profile.LanguageSpec, sourcePath, workDir string) map[string]string {
	binary := lang.BinaryFile
	if binary == "" {
		binary = defaultBinaryName
	}
	base := filepath.Base(sourcePath)
	return map[string]string{
		profile.PlaceholderSource:    sourcePath,
		profile.PlaceholderSourceDir: filepath.Dir(sourcePath),
		profile.PlaceholderBinary:    filepath.Join(workDir, binary),
		profile.PlaceholderDir:       workDir,
		profile.PlaceholderClass:     strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// buildCommand tokenises the template first and substitutes placeholders
// inside each token, so a path with spaces or quotes stays one argument.
func buildCommand(tpl string, vars map[string]string) ([]string, error) {
	if strings.TrimSpace(tpl) == "" {
		return nil, appErr.New(appErr.InvalidParams).WithMessage("command template is required")
	}
	fields, err := shlex.Split(tpl)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.InvalidParams, "parse command template failed")
	}
	if len(fields) == 0 {
		return nil, appErr.New(appErr.InvalidParams).WithMessage("command is empty after expansion")
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, k, v)
	}
	replacer := strings.NewReplacer(pairs...)
	for i, field := range fields {
		fields[i] = replacer.Replace(field)
	}
	return fields, nil
}
