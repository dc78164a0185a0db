package dirlock

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_AcquireRelease(t *testing.T) {
	target := t.TempDir()
	locker := New(t.TempDir(), time.Second)

	lock, err := locker.Acquire(context.Background(), target)
	require.NoError(t, err)

	path, err := locker.Path(target)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	// nothing is added to the target directory
	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, lock.Release())

	again, err := locker.Acquire(context.Background(), target)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestLocker_Contention(t *testing.T) {
	target := t.TempDir()
	locker := New(t.TempDir(), 150*time.Millisecond)

	held, err := locker.Acquire(context.Background(), target)
	require.NoError(t, err)
	defer func() { _ = held.Release() }()

	_, err = locker.Acquire(context.Background(), target)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestLocker_DistinctTargets(t *testing.T) {
	root := t.TempDir()
	locker := New(t.TempDir(), time.Second)

	a, err := locker.Acquire(context.Background(), filepath.Join(root, "a"))
	require.NoError(t, err)
	defer func() { _ = a.Release() }()

	b, err := locker.Acquire(context.Background(), filepath.Join(root, "b"))
	require.NoError(t, err)
	require.NoError(t, b.Release())
}

func TestNew_DefaultsToTempDir(t *testing.T) {
	assert.Equal(t, os.TempDir(), New("", 0).Dir)
}
