package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// Blob abstracts the byte store underneath the video file store so the
// upload pipeline can run against local disk, S3, or an in-memory store
// in tests. Paths are slash-agnostic; each implementation maps them to
// its own namespace.
type Blob interface {
	Write(ctx context.Context, path string, data []byte) error
	Read(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}

// DiskBlob writes files under the local filesystem. Directory creation is
// idempotent; concurrent writers for the same owner are safe because every
// upload computes its own distinct filename.
type DiskBlob struct{}

func NewDiskBlob() *DiskBlob {
	return &DiskBlob{}
}

func (b *DiskBlob) Write(ctx context.Context, path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (b *DiskBlob) Read(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (b *DiskBlob) Delete(ctx context.Context, path string) error {
	return os.Remove(path)
}

func (b *DiskBlob) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
