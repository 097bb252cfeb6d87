// Package arbiter coordinates exclusive access to the shared audio device
// across independent speak processes. The only shared state is the queue
// directory on disk, so any number of unrelated processes can participate
// without a central daemon.
package arbiter

import (
	"context"
	"errors"
)

// Common arbiter errors.
var (
	// ErrAcquireTimeout indicates the bounded wait for a turn was exceeded.
	ErrAcquireTimeout = errors.New("could not acquire audio device turn")

	// ErrNotHeld indicates Release was called without a successful Acquire.
	ErrNotHeld = errors.New("audio device is not held")
)

// Arbiter grants at most one live holder of the audio device at a time.
// Acquire blocks until the device is granted, the context is canceled, or
// the implementation's wait bound is exceeded. Release must be called on
// every exit path after a successful Acquire.
type Arbiter interface {
	Acquire(ctx context.Context) error
	Release() error
}
