// Package provider obtains the raw text blocks of a problem statement page.
package provider

import (
	"context"
	"regexp"
	"strings"

	appErr "leetcph/pkg/errors"
)

const (
	// DefaultURLPattern matches problem statement pages.
	DefaultURLPattern = `^https://leetcode\.com/problems/[A-Za-z0-9-]+/?`
	// DefaultContentClass is the CSS class of the statement region.
	DefaultContentClass = "elfjS"
	// DefaultUserAgent is sent by both providers.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Provider opens sessions against the page source.
type Provider interface {
	Open(ctx context.Context) (Session, error)
}

// Session fetches pages. Callers must Close it on every path.
type Session interface {
	// FetchBlocks returns the text of every pre element inside the content
	// region of the page, in document order.
	FetchBlocks(ctx context.Context, pageURL string) ([]string, error)
	Close() error
}

// URLValidator checks that a URL points at a problem page.
type URLValidator struct {
	pattern *regexp.Regexp
}

// NewURLValidator compiles pattern; an empty pattern selects the default.
func NewURLValidator(pattern string) (*URLValidator, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultURLPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.InvalidParams, "invalid url pattern %q", pattern)
	}
	return &URLValidator{pattern: re}, nil
}

// Validate returns InvalidURL when pageURL does not match.
func (v *URLValidator) Validate(pageURL string) error {
	if v.pattern.MatchString(strings.TrimSpace(pageURL)) {
		return nil
	}
	return appErr.Newf(appErr.InvalidURL, "Invalid LeetCode URL: %q", pageURL).
		WithDetail("url", pageURL)
}
