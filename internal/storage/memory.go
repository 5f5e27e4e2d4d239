package storage

import (
	"context"
	"os"
	"sync"
)

// MemBlob is an in-memory Blob used by tests.
type MemBlob struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemBlob() *MemBlob {
	return &MemBlob{files: make(map[string][]byte)}
}

func (b *MemBlob) Write(ctx context.Context, path string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	b.files[path] = buf
	return nil
}

func (b *MemBlob) Read(ctx context.Context, path string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (b *MemBlob) Delete(ctx context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.files[path]; !ok {
		return os.ErrNotExist
	}
	delete(b.files, path)
	return nil
}

func (b *MemBlob) Exists(ctx context.Context, path string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.files[path]
	return ok, nil
}

// Len reports the number of stored files.
func (b *MemBlob) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.files)
}
