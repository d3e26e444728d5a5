package reportstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/argus-sec/argus-portal/internal/domain"
)

// FilesystemStore stores report files below a base directory on the local
// filesystem.
type FilesystemStore struct {
	basePath string
}

// NewFilesystemStore creates a new FilesystemStore instance.
func NewFilesystemStore(basePath string) (*FilesystemStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("storage base path must not be empty")
	}

	s := &FilesystemStore{basePath: basePath}

	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", basePath, err)
	}

	return s, nil
}

// Put writes the given contents to the given path.
// The path is relative to the base path of the store.
// If the parent directory does not exist, it is created.
// If the file already exists, it is overwritten.
func (s *FilesystemStore) Put(_ context.Context, path string, contents io.Reader) (int64, error) {
	filePath := filepath.Join(s.basePath, path)
	parentDirectory := filepath.Dir(filePath)

	if err := os.MkdirAll(parentDirectory, 0700); err != nil {
		return 0, fmt.Errorf("failed to create parent directory %s: %w", parentDirectory, err)
	}

	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func(file *os.File) {
		if err := file.Close(); err != nil {
			slog.Error("failed to close file", "file", file.Name(), "error", err)
		}
	}(file)

	written, err := io.Copy(file, contents)
	if err != nil {
		return 0, fmt.Errorf("failed to write file contents: %w", err)
	}

	return written, nil
}

// Get opens the file at the given path, relative to the base path.
func (s *FilesystemStore) Get(_ context.Context, path string) (io.ReadCloser, error) {
	filePath := filepath.Join(s.basePath, path)

	file, err := os.Open(filePath)
	if err != nil && os.IsNotExist(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}

	return file, nil
}

// Delete removes the file at the given path, relative to the base path.
func (s *FilesystemStore) Delete(_ context.Context, path string) error {
	filePath := filepath.Join(s.basePath, path)

	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file %s: %w", filePath, err)
	}

	return nil
}
