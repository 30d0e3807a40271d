package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetcph/internal/judge/sandbox/profile"
	appErr "leetcph/pkg/errors"
)

func TestBuildCommand(t *testing.T) {
	lang := profile.LanguageSpec{ID: "cpp", BinaryFile: "solution"}
	vars := templateVars(lang, "/home/me/leet code/Two Sum.cpp", "/tmp/leetcph/run-1")

	tests := []struct {
		name string
		tpl  string
		want []string
	}{
		{
			name: "compile",
			tpl:  "g++ -std=c++17 -o {bin} {src}",
			want: []string{"g++", "-std=c++17", "-o", "/tmp/leetcph/run-1/solution", "/home/me/leet code/Two Sum.cpp"},
		},
		{
			name: "quoted flag",
			tpl:  `sh -c "echo hi" {class}`,
			want: []string{"sh", "-c", "echo hi", "Two Sum"},
		},
		{
			name: "placeholder inside argument",
			tpl:  "tool --out={dir}/x --src-dir={srcdir}",
			want: []string{"tool", "--out=/tmp/leetcph/run-1/x", "--src-dir=/home/me/leet code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildCommand(tt.tpl, vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildCommandRejectsEmptyTemplate(t *testing.T) {
	_, err := buildCommand("   ", nil)
	assert.True(t, appErr.Is(err, appErr.InvalidParams))
}

func TestTemplateVarsDefaultBinary(t *testing.T) {
	vars := templateVars(profile.LanguageSpec{}, "/src/a.cpp", "/work")
	assert.Equal(t, "/work/main", vars[profile.PlaceholderBinary])
}
