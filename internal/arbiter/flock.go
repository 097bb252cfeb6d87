package arbiter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockFileName is the single fixed lock file for the exclusive-lock
// discipline.
const lockFileName = "audio.lock"

// FileLock implements the exclusive-lock discipline: one OS-level advisory
// lock over a fixed file. Simpler than the ticket queue and race-free, but
// the order among concurrent waiters is whatever the kernel picks. The lock
// is dropped automatically when the holding process dies.
type FileLock struct {
	fl         *flock.Flock
	retryDelay time.Duration
}

// NewFileLock creates an exclusive-lock arbiter over dir.
func NewFileLock(dir string) *FileLock {
	return &FileLock{
		fl:         flock.New(filepath.Join(dir, lockFileName)),
		retryDelay: 50 * time.Millisecond,
	}
}

// Acquire blocks until the advisory lock is held or ctx is canceled.
func (l *FileLock) Acquire(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0o755); err != nil {
		return fmt.Errorf("creating queue directory: %w", err)
	}
	ok, err := l.fl.TryLockContext(ctx, l.retryDelay)
	if err != nil {
		return fmt.Errorf("acquiring audio lock: %w", err)
	}
	if !ok {
		return ErrAcquireTimeout
	}
	return nil
}

// Release drops the advisory lock.
func (l *FileLock) Release() error {
	if !l.fl.Locked() {
		return ErrNotHeld
	}
	return l.fl.Unlock()
}
