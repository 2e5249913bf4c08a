// Package fsx abstracts the blob storage used for uploaded and generated files.
package fsx

import (
	"context"
	"errors"
	"path"
	"strings"
	"sync"
)

// ErrNotExist is returned when a path has no object
var ErrNotExist = errors.New("fsx: file does not exist")

// FileSystem is a flat, path-addressed object store
type FileSystem interface {
	Join(elem ...string) string
	WriteFile(ctx context.Context, path string, data []byte) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	DeleteFile(ctx context.Context, path string) error
}

// Uploader stores bytes with a content type and returns their public URL
type Uploader interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// BlobStore is what the upload and image flows depend on
type BlobStore interface {
	FileSystem
	Uploader
}

// ============================================================================
// In-memory implementation
// ============================================================================

type memObject struct {
	data        []byte
	contentType string
}

// MemoryFileSystem keeps objects in a map; used by tests and local runs
type MemoryFileSystem struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memObject
}

func NewMemoryFileSystem(baseURL string) *MemoryFileSystem {
	return &MemoryFileSystem{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]memObject),
	}
}

func (m *MemoryFileSystem) Join(elem ...string) string {
	return strings.TrimPrefix(path.Join(elem...), "/")
}

func (m *MemoryFileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	_, err := m.Upload(ctx, p, data, "application/octet-stream")
	return err
}

func (m *MemoryFileSystem) Upload(_ context.Context, p string, data []byte, contentType string) (string, error) {
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.objects[p] = memObject{data: buf, contentType: contentType}
	m.mu.Unlock()
	return m.baseURL + "/" + p, nil
}

func (m *MemoryFileSystem) ReadFile(_ context.Context, p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[p]
	if !ok {
		return nil, ErrNotExist
	}
	return obj.data, nil
}

func (m *MemoryFileSystem) DeleteFile(_ context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[p]; !ok {
		return ErrNotExist
	}
	delete(m.objects, p)
	return nil
}

// ContentType returns the stored content type of p
func (m *MemoryFileSystem) ContentType(p string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[p]
	return obj.contentType, ok
}

// Len is the number of stored objects
func (m *MemoryFileSystem) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
