package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"leetcph/internal/problem/model"
	appErr "leetcph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	sets := []model.TestCaseSet{
		model.NewTestCaseSet([]string{"[2,7,11,15]\n9"}, []string{"[0,1]"}),
		model.NewTestCaseSet([]string{"1\n2", "3\n4"}, []string{"3", "7"}),
		model.NewTestCaseSet([]string{"", "x"}, []string{" padded ", ""}),
		model.NewTestCaseSet([]string{"a\n", "\nb", "c"}, []string{"1", "2", "3"}),
	}

	for _, set := range sets {
		store := NewFileStore(t.TempDir(), "")
		require.NoError(t, store.Write(context.Background(), set))

		got, err := store.Read(context.Background())
		require.NoError(t, err)
		assert.Equal(t, set, got)
	}
}

func TestFileStoreLayout(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "")
	set := model.NewTestCaseSet([]string{"1\n2", "3\n4"}, []string{"3", "7"})
	require.NoError(t, store.Write(context.Background(), set))

	inputs, err := os.ReadFile(filepath.Join(root, "testcases", "input.txt"))
	require.NoError(t, err)
	outputs, err := os.ReadFile(filepath.Join(root, "testcases", "output.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n---\n3\n4", string(inputs))
	assert.Equal(t, "3\n---\n7", string(outputs))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp files must not be left behind")
}

func TestFileStoreOverwrite(t *testing.T) {
	store := NewFileStore(t.TempDir(), "cases")
	first := model.NewTestCaseSet([]string{"1", "2", "3"}, []string{"a", "b", "c"})
	second := model.NewTestCaseSet([]string{"9"}, []string{"z"})

	require.NoError(t, store.Write(context.Background(), first))
	require.NoError(t, store.Write(context.Background(), second))

	got, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestFileStoreReadNotFetched(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "")

	_, err := store.Read(context.Background())
	assert.True(t, appErr.Is(err, appErr.NotFetched), "got %v", err)

	require.NoError(t, os.MkdirAll(store.Dir(), 0o755))
	require.NoError(t, os.WriteFile(store.InputPath(), []byte("1"), 0o644))
	_, err = store.Read(context.Background())
	assert.True(t, appErr.Is(err, appErr.NotFetched), "missing outputs must be NotFetched, got %v", err)
}

func TestFileStoreReadMismatchedBlobs(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")
	require.NoError(t, os.MkdirAll(store.Dir(), 0o755))
	require.NoError(t, os.WriteFile(store.InputPath(), []byte("1\n---\n2"), 0o644))
	require.NoError(t, os.WriteFile(store.OutputPath(), []byte("1"), 0o644))

	_, err := store.Read(context.Background())
	assert.True(t, appErr.Is(err, appErr.TestCaseInvalid), "got %v", err)
}

func TestFileStoreRejectsEmptySet(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")
	err := store.Write(context.Background(), model.TestCaseSet{})
	assert.True(t, appErr.Is(err, appErr.InvalidParams), "got %v", err)

	_, statErr := os.Stat(store.InputPath())
	assert.True(t, os.IsNotExist(statErr))
}
