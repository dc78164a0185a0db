package filemanager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}

func TestManager_ReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.yaml")
	mgr := NewManager[testDoc]()
	ctx := context.Background()

	require.NoError(t, mgr.Write(ctx, path, &testDoc{Name: "crow", Value: 42}))

	doc, info, err := mgr.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, testDoc{Name: "crow", Value: 42}, *doc)
	assert.Equal(t, path, info.Path)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files must not be left behind")
}

func TestManager_ReadMissing(t *testing.T) {
	_, _, err := NewManager[testDoc]().Read(context.Background(), filepath.Join(t.TempDir(), "none.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestManager_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	mgr := NewManager[testDoc]()
	ctx := context.Background()

	require.NoError(t, mgr.Update(ctx, path, func(d *testDoc) error {
		d.Name = "created"
		return nil
	}))
	require.NoError(t, mgr.Update(ctx, path, func(d *testDoc) error {
		d.Value = 7
		return nil
	}))

	doc, _, err := mgr.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, testDoc{Name: "created", Value: 7}, *doc)
}

func TestManager_UpdateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	mgr := NewManager[testDoc]()
	boom := errors.New("boom")

	err := mgr.Update(context.Background(), path, func(*testDoc) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestManager_ConcurrentUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	mgr := NewManager[testDoc]()
	ctx := context.Background()
	require.NoError(t, mgr.Write(ctx, path, &testDoc{}))

	const workers = 4
	const increments = 5

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				if err := mgr.Update(ctx, path, func(d *testDoc) error {
					d.Value++
					return nil
				}); err != nil {
					t.Errorf("update failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	doc, _, err := mgr.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, workers*increments, doc.Value)
}

func TestManager_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	mgr := NewManager[testDoc]()
	ctx := context.Background()

	require.NoError(t, mgr.Write(ctx, path, &testDoc{Name: "x"}))
	require.NoError(t, mgr.Delete(ctx, path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(lockPath(path))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, mgr.Delete(ctx, path))
}

func TestManager_LockTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	mgr := NewManagerWithTimeout[testDoc](50 * time.Millisecond)
	ctx := context.Background()
	require.NoError(t, mgr.Write(ctx, path, &testDoc{}))

	holder := flock.New(lockPath(path))
	locked, err := holder.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer func() { _ = holder.Unlock() }()

	err = mgr.Write(ctx, path, &testDoc{Value: 1})
	assert.ErrorIs(t, err, ErrLockTimeout)
}
