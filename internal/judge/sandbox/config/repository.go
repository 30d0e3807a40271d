// Package config holds the language adapter registry used by the sandbox.
package config

import (
	"context"

	"leetcph/internal/judge/sandbox/profile"
)

// LanguageSpecRepository loads language specifications.
type LanguageSpecRepository interface {
	GetLanguageSpec(ctx context.Context, id string) (profile.LanguageSpec, error)
	LanguageForFile(ctx context.Context, path string) (profile.LanguageSpec, error)
}
