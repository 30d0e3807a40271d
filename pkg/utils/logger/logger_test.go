package logger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestContextFieldsReachJSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cph.log")
	l, err := NewLogger(Config{Level: "debug", Format: "json", OutputPath: path})
	require.NoError(t, err)

	ctx := WithProblemURL(WithRunID(context.Background(), "run-1"), "https://leetcode.com/problems/two-sum/")
	l.WithContext(ctx).Info("cases judged", zap.Int("total", 2))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "cases judged", entry["msg"])
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", entry["problem_url"])
	assert.EqualValues(t, 2, entry["total"])
}

func TestGlobalHelpersWithoutInitAreNoops(t *testing.T) {
	saved := globalLogger
	globalLogger = nil
	defer func() { globalLogger = saved }()

	Info(context.Background(), "ignored")
	assert.NoError(t, Sync())
}
