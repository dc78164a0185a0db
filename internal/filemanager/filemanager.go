// Package filemanager reads and writes small YAML state files under an
// advisory file lock. Writes go through a temp file and an atomic rename so
// a reader never sees a half-written document.
package filemanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// ErrLockTimeout is returned when acquiring a file lock times out
var ErrLockTimeout = errors.New("timeout acquiring file lock")

const lockRetryDelay = 50 * time.Millisecond

// FileInfo describes the version of a document returned by Read.
type FileInfo struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// UpdateFunc modifies data in place.
type UpdateFunc[T any] func(data *T) error

// Manager reads and writes YAML documents of type T.
type Manager[T any] struct {
	lockTimeout time.Duration
}

// NewManager creates a Manager with a 5 second lock timeout.
func NewManager[T any]() *Manager[T] {
	return NewManagerWithTimeout[T](5 * time.Second)
}

// NewManagerWithTimeout creates a Manager with a custom lock timeout.
func NewManagerWithTimeout[T any](timeout time.Duration) *Manager[T] {
	return &Manager[T]{lockTimeout: timeout}
}

// lockPath keeps the lock beside the document so the document itself can be
// replaced by rename while the lock is held.
func lockPath(path string) string {
	return path + ".lock"
}

func (m *Manager[T]) lock(ctx context.Context, path string, shared bool) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	fl := flock.New(lockPath(path))

	lockCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = fl.TryRLockContext(lockCtx, lockRetryDelay)
	} else {
		locked, err = fl.TryLockContext(lockCtx, lockRetryDelay)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}
	return fl, nil
}

// Read returns the decoded document and the version that was read.
func (m *Manager[T]) Read(ctx context.Context, path string) (*T, *FileInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, err
	}

	fl, err := m.lock(ctx, path, true)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = fl.Unlock() }()

	return readDocument[T](path)
}

func readDocument[T any](path string) (*T, *FileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	var result T
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal yaml %s: %w", path, err)
	}
	return &result, &FileInfo{Path: path, ModTime: stat.ModTime(), Size: stat.Size()}, nil
}

// Write replaces the document.
func (m *Manager[T]) Write(ctx context.Context, path string, data *T) error {
	fl, err := m.lock(ctx, path, false)
	if err != nil {
		return err
	}
	defer func() { _ = fl.Unlock() }()

	return writeDocument(path, data)
}

func writeDocument[T any](path string, data *T) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := atomicRename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Update reads the document (or starts from the zero value when it does
// not exist), applies fn and writes the result back. The exclusive lock is
// held for the whole cycle.
func (m *Manager[T]) Update(ctx context.Context, path string, fn UpdateFunc[T]) error {
	fl, err := m.lock(ctx, path, false)
	if err != nil {
		return err
	}
	defer func() { _ = fl.Unlock() }()

	data, _, err := readDocument[T](path)
	switch {
	case os.IsNotExist(err):
		data = new(T)
	case err != nil:
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := fn(data); err != nil {
		return fmt.Errorf("update function failed: %w", err)
	}
	return writeDocument(path, data)
}

// Delete removes the document and its lock file. A missing document is not
// an error.
func (m *Manager[T]) Delete(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}

	fl, err := m.lock(ctx, path, false)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		_ = fl.Unlock()
		return fmt.Errorf("failed to remove file: %w", err)
	}
	_ = fl.Unlock()
	_ = os.Remove(lockPath(path))
	return nil
}
