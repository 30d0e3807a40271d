package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"leetcph/internal/problem/model"
	appErr "leetcph/pkg/errors"
	"leetcph/pkg/utils/logger"

	"go.uber.org/zap"
)

const (
	DefaultCaseDir  = "testcases"
	inputFileName   = "input.txt"
	outputFileName  = "output.txt"
	caseFilePerm    = 0o644
	caseDirPermBits = 0o755
)

// TestCaseRepository persists the current test case set.
// Writes are last-write-wins; concurrent fetch and read are not guarded.
type TestCaseRepository interface {
	Write(ctx context.Context, set model.TestCaseSet) error
	Read(ctx context.Context) (model.TestCaseSet, error)
}

// FileStore keeps inputs and outputs as two separator-joined text files.
type FileStore struct {
	dir string
}

// NewFileStore creates a store under <root>/<caseDir>.
func NewFileStore(root, caseDir string) *FileStore {
	if caseDir == "" {
		caseDir = DefaultCaseDir
	}
	return &FileStore{dir: filepath.Join(root, caseDir)}
}

// Dir returns the directory holding the case files.
func (s *FileStore) Dir() string {
	return s.dir
}

// InputPath returns the path of the inputs blob.
func (s *FileStore) InputPath() string {
	return filepath.Join(s.dir, inputFileName)
}

// OutputPath returns the path of the outputs blob.
func (s *FileStore) OutputPath() string {
	return filepath.Join(s.dir, outputFileName)
}

// Write replaces the persisted set. Case strings containing a line that is
// exactly the separator will not round-trip.
func (s *FileStore) Write(ctx context.Context, set model.TestCaseSet) error {
	if set.Len() == 0 {
		return appErr.New(appErr.InvalidParams).WithMessage("refusing to persist an empty test case set")
	}
	if err := os.MkdirAll(s.dir, caseDirPermBits); err != nil {
		return appErr.Wrapf(err, appErr.TestCaseUploadFailed, "create test case dir failed")
	}
	if err := writeFileAtomic(s.InputPath(), model.JoinBlob(set.Inputs())); err != nil {
		return appErr.Wrapf(err, appErr.TestCaseUploadFailed, "write inputs failed")
	}
	if err := writeFileAtomic(s.OutputPath(), model.JoinBlob(set.Outputs())); err != nil {
		return appErr.Wrapf(err, appErr.TestCaseUploadFailed, "write outputs failed")
	}
	logger.Debug(ctx, "test cases saved", zap.String("dir", s.dir), zap.Int("cases", set.Len()))
	return nil
}

// Read loads the persisted set.
func (s *FileStore) Read(ctx context.Context) (model.TestCaseSet, error) {
	inputs, err := readBlob(s.InputPath())
	if err != nil {
		return model.TestCaseSet{}, err
	}
	outputs, err := readBlob(s.OutputPath())
	if err != nil {
		return model.TestCaseSet{}, err
	}
	in := model.SplitBlob(inputs)
	out := model.SplitBlob(outputs)
	if len(in) != len(out) {
		return model.TestCaseSet{}, appErr.Newf(appErr.TestCaseInvalid,
			"test case files disagree: %d inputs, %d outputs", len(in), len(out))
	}
	logger.Debug(ctx, "test cases loaded", zap.String("dir", s.dir), zap.Int("cases", len(in)))
	return model.NewTestCaseSet(in, out), nil
}

func readBlob(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", appErr.New(appErr.NotFetched).WithDetail("path", path)
		}
		return "", appErr.Wrapf(err, appErr.InternalServerError, "read %s failed", filepath.Base(path))
	}
	return string(data), nil
}

func writeFileAtomic(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(caseFilePerm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
