package config

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"leetcph/internal/judge/sandbox/profile"
	appErr "leetcph/pkg/errors"
)

// LocalRepository is a read-only in-memory language registry.
type LocalRepository struct {
	languages map[string]profile.LanguageSpec
	order     []string
}

// NewLocalRepository creates a registry from config lists.
// Entries without an id or run template are skipped; a later entry with the
// same id replaces an earlier one.
func NewLocalRepository(languages []profile.LanguageSpec) *LocalRepository {
	langMap := make(map[string]profile.LanguageSpec)
	var order []string
	for _, lang := range languages {
		if lang.ID == "" || strings.TrimSpace(lang.RunCmdTpl) == "" {
			continue
		}
		if _, seen := langMap[lang.ID]; !seen {
			order = append(order, lang.ID)
		}
		langMap[lang.ID] = lang
	}
	return &LocalRepository{languages: langMap, order: order}
}

// GetLanguageSpec returns a language spec.
func (r *LocalRepository) GetLanguageSpec(ctx context.Context, id string) (profile.LanguageSpec, error) {
	if id == "" {
		return profile.LanguageSpec{}, appErr.ValidationError("language_id", "required")
	}
	lang, ok := r.languages[id]
	if !ok {
		return profile.LanguageSpec{}, appErr.Newf(appErr.LanguageNotSupported, "unsupported language: %s", id)
	}
	return lang, nil
}

// LanguageForFile picks the language by source file extension.
func (r *LocalRepository) LanguageForFile(ctx context.Context, path string) (profile.LanguageSpec, error) {
	for _, id := range r.order {
		if lang := r.languages[id]; lang.MatchesFile(path) {
			return lang, nil
		}
	}
	return profile.LanguageSpec{}, appErr.Newf(appErr.LanguageNotSupported,
		"Unsupported file type %q! Supported types: %s", filepath.Ext(path), strings.Join(r.Extensions(), ", ")).
		WithDetail("path", path)
}

// Extensions lists every registered extension, sorted.
func (r *LocalRepository) Extensions() []string {
	var exts []string
	for _, lang := range r.languages {
		exts = append(exts, lang.Extensions...)
	}
	sort.Strings(exts)
	return exts
}

// IDs lists registered language ids in registration order.
func (r *LocalRepository) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
