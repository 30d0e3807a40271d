package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetcph/internal/problem/provider"
	appErr "leetcph/pkg/errors"
)

const problemPage = `<!DOCTYPE html>
<html><body>
<pre>outside region</pre>
<div class="xFUwe elfjS" data-track-load="description_content">
<p>Given an array of integers <code>nums</code>&nbsp;and an integer <code>target</code>...</p>
<pre><strong>Input:</strong> nums = [2,7,11,15], target = 9
<strong>Output:</strong> [0,1]
<strong>Explanation:</strong> Because nums[0] + nums[1] == 9, we return [0, 1].
</pre>
<div><pre><strong>Input:</strong> nums = [3,2,4], target = 6<br><strong>Output:</strong> [1,2]</pre></div>
<pre>a &lt; b</pre>
</div>
</body></html>`

func fetch(t *testing.T, handler http.HandlerFunc, timeout time.Duration) ([]string, error) {
	t.Helper()
	srv := httptest.NewServer(handler)
	defer srv.Close()

	p := provider.NewHTTPProvider(provider.HTTPConfig{}, srv.Client())
	sess, err := p.Open(context.Background())
	require.NoError(t, err)
	defer func() { assert.NoError(t, sess.Close()) }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return sess.FetchBlocks(ctx, srv.URL+"/problems/two-sum/")
}

func TestHTTPProviderExtractsPreBlocks(t *testing.T) {
	var gotUA string
	blocks, err := fetch(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(problemPage))
	}, 5*time.Second)
	require.NoError(t, err)

	require.Len(t, blocks, 3)
	assert.Equal(t, "Input: nums = [2,7,11,15], target = 9\nOutput: [0,1]\nExplanation: Because nums[0] + nums[1] == 9, we return [0, 1].\n", blocks[0])
	assert.Equal(t, "Input: nums = [3,2,4], target = 6\nOutput: [1,2]", blocks[1])
	assert.Equal(t, "a < b", blocks[2])
	assert.Equal(t, provider.DefaultUserAgent, gotUA)
}

func TestHTTPProviderContentNotFound(t *testing.T) {
	_, err := fetch(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><pre>Input: x</pre></body></html>`))
	}, 5*time.Second)
	assert.True(t, appErr.Is(err, appErr.ContentNotFound))
}

func TestHTTPProviderBadStatus(t *testing.T) {
	_, err := fetch(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}, 5*time.Second)
	require.Error(t, err)
	assert.True(t, appErr.Is(err, appErr.NetworkError))
	assert.Contains(t, err.Error(), "403")
}

func TestHTTPProviderTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	_, err := fetch(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 100*time.Millisecond)
	assert.True(t, appErr.Is(err, appErr.FetchTimeout))
}
