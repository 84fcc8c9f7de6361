package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "datasentry/internal/errors"
	"datasentry/ports"

	"github.com/google/uuid"
)

// LocalFileStorage implements FileStorage using local filesystem
type LocalFileStorage struct {
	basePath string
}

var _ ports.FileStorage = (*LocalFileStorage)(nil)

// NewLocalFileStorage creates a new local file storage rooted at basePath
func NewLocalFileStorage(basePath string) *LocalFileStorage {
	if basePath == "" {
		basePath = "uploads"
	}
	return &LocalFileStorage{basePath: basePath}
}

// Store saves the content under a unique name that keeps the original extension
func (s *LocalFileStorage) Store(ctx context.Context, r io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	uniqueName := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	filePath := filepath.Join(s.basePath, uniqueName)

	destFile, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, r); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to copy file contents: %w", err)
	}
	return filePath, nil
}

// owns reports whether filePath lies inside the storage directory
func (s *LocalFileStorage) owns(filePath string) bool {
	rel, err := filepath.Rel(filepath.Clean(s.basePath), filepath.Clean(filePath))
	return err == nil && rel != "." && !strings.HasPrefix(rel, "..")
}

// GetReader returns a reader for the stored file
func (s *LocalFileStorage) GetReader(ctx context.Context, filePath string) (io.ReadCloser, error) {
	if !s.owns(filePath) {
		return nil, fmt.Errorf("path %s is outside %s", filePath, s.basePath)
	}
	file, err := os.Open(filePath)
	if os.IsNotExist(err) {
		return nil, apperrors.WithCode(err, apperrors.CodeNotFound, "stored file not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes a file from storage. A file that is already gone is not an error.
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	if !s.owns(filePath) {
		return fmt.Errorf("path %s is outside %s", filePath, s.basePath)
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists checks if a file exists in storage
func (s *LocalFileStorage) Exists(ctx context.Context, filePath string) (bool, error) {
	if !s.owns(filePath) {
		return false, nil
	}
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}
	return true, nil
}
