package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileBucket stores the bucket as a single JSON file on local disk.
type fileBucket struct {
	path string
	mu   sync.Mutex
}

// NewFileBucket creates a file-backed bucket named name under dir.
// The directory is created on first Set, not here.
func NewFileBucket(dir, name string) Bucket {
	return &fileBucket{path: filepath.Join(dir, name+".json")}
}

func (b *fileBucket) Get(_ context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (b *fileBucket) Set(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return err
	}

	// Write-then-rename so a crash mid-write never corrupts the bucket.
	tmp := fmt.Sprintf("%s.tmp", b.path)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}

func (b *fileBucket) Clear(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.Remove(b.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryBucket is an in-memory Bucket used in tests and for throwaway
// process-local setups.
type MemoryBucket struct {
	mu     sync.Mutex
	data   []byte
	exists bool
}

func NewMemoryBucket() *MemoryBucket {
	return &MemoryBucket{}
}

func (b *MemoryBucket) Get(_ context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.exists {
		return nil, nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

func (b *MemoryBucket) Set(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = make([]byte, len(data))
	copy(b.data, data)
	b.exists = true
	return nil
}

func (b *MemoryBucket) Clear(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = nil
	b.exists = false
	return nil
}
