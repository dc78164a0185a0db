// Package dirlock serializes dsrename runs on the same directory with an
// advisory file lock. The lock file never lives inside the locked
// directory, since the renamer must not add entries to it. Programs other
// than dsrename are not affected by the lock.
package dirlock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the lock past the timeout.
var ErrLocked = errors.New("directory is locked by another dsrename process")

const retryDelay = 100 * time.Millisecond

// Locker acquires directory locks. Lock files are kept in Dir.
type Locker struct {
	Dir     string
	Timeout time.Duration
}

// New returns a Locker storing lock files in lockDir, or the system temp
// directory when lockDir is empty.
func New(lockDir string, timeout time.Duration) *Locker {
	if lockDir == "" {
		lockDir = os.TempDir()
	}
	return &Locker{Dir: lockDir, Timeout: timeout}
}

// Lock is a held directory lock.
type Lock struct {
	target string
	fl     *flock.Flock
}

// Path returns the lock file path used for target.
func (l *Locker) Path(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", target, err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(l.Dir, "dsrename-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// Acquire blocks until the lock for target is held, ctx is done or the
// timeout passes.
func (l *Locker) Acquire(ctx context.Context, target string) (*Lock, error) {
	path, err := l.Path(target)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(path)

	lockCtx := ctx
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	locked, err := fl.TryLockContext(lockCtx, retryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %s", ErrLocked, target)
		}
		return nil, fmt.Errorf("failed to acquire lock for %s: %w", target, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, target)
	}
	return &Lock{target: target, fl: fl}, nil
}

// Release drops the lock. The lock file is left in place: removing it
// would let a waiter lock a file that a third process then recreates.
func (lk *Lock) Release() error {
	if err := lk.fl.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock for %s: %w", lk.target, err)
	}
	return nil
}
