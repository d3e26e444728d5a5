package reportstore

import (
	"context"
	"fmt"
	"io"

	"github.com/argus-sec/argus-portal/internal/config"
)

// Store persists generated report files. Implementations exist for the local
// filesystem and for S3 compatible object storage.
type Store interface {
	// Put writes the given contents to the given path, overwriting an
	// existing file. It returns the number of bytes written.
	Put(ctx context.Context, path string, contents io.Reader) (int64, error)
	// Get opens the file at the given path for reading. The caller must
	// close the returned reader. If no file exists, domain.ErrNotFound is
	// returned.
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes the file at the given path. Deleting a missing file is
	// not an error.
	Delete(ctx context.Context, path string) error
}

// New creates the report store backend selected by the given configuration.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case config.StorageTypeFilesystem:
		return NewFilesystemStore(cfg.BasePath)
	case config.StorageTypeS3:
		return NewS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
