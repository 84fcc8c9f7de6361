package ports

import (
	"context"
	"io"
)

// FileStorage keeps the raw uploaded file that backs a dataset
type FileStorage interface {
	Store(ctx context.Context, r io.Reader, filename string) (string, error)
	GetReader(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}
