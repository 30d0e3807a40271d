package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetcph/internal/problem/provider"
	appErr "leetcph/pkg/errors"
)

func TestURLValidator(t *testing.T) {
	v, err := provider.NewURLValidator("")
	require.NoError(t, err)

	tests := []struct {
		url   string
		valid bool
	}{
		{url: "https://leetcode.com/problems/two-sum/", valid: true},
		{url: "https://leetcode.com/problems/two-sum", valid: true},
		{url: "https://leetcode.com/problems/two-sum/description/", valid: true},
		{url: "  https://leetcode.com/problems/3sum/  ", valid: true},
		{url: "http://leetcode.com/problems/two-sum/", valid: false},
		{url: "https://leetcode.com/contest/weekly-1/", valid: false},
		{url: "https://example.com/problems/two-sum/", valid: false},
		{url: "https://leetcode.com/problems/", valid: false},
		{url: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := v.Validate(tt.url)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, appErr.Is(err, appErr.InvalidURL))
		})
	}
}

func TestURLValidatorCustomPattern(t *testing.T) {
	v, err := provider.NewURLValidator(`^https://leetcode\.cn/problems/[a-z-]+/?`)
	require.NoError(t, err)
	assert.NoError(t, v.Validate("https://leetcode.cn/problems/two-sum/"))
	assert.Error(t, v.Validate("https://leetcode.com/problems/two-sum/"))

	_, err = provider.NewURLValidator(`([`)
	assert.True(t, appErr.Is(err, appErr.InvalidParams))
}
