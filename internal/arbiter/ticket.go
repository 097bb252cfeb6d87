package arbiter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const (
	// ticketSuffix marks transient per-job ticket files in the queue directory.
	ticketSuffix = ".job"

	// registerLockName is the short-lived lock serializing ticket creation.
	// Without it two late arrivals could each observe themselves oldest.
	registerLockName = ".register.lock"
)

// Default timing for the FIFO discipline.
const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultMaxWait      = 30 * time.Second
)

// TicketQueue implements the FIFO discipline: each request registers a
// uniquely named ticket file and polls until its ticket is the oldest
// outstanding one. Tickets are named by the job id (a nanosecond creation
// timestamp) so lexicographic order is arrival order.
type TicketQueue struct {
	dir          string
	jobID        string
	pollInterval time.Duration
	maxWait      time.Duration

	ticket string // path of our ticket file, empty when not registered

	heartbeatStop chan struct{}
	heartbeatDone chan struct{}
}

// TicketOption configures a TicketQueue.
type TicketOption func(*TicketQueue)

// WithPollInterval sets how often the queue head is re-checked.
func WithPollInterval(d time.Duration) TicketOption {
	return func(t *TicketQueue) {
		t.pollInterval = d
	}
}

// WithMaxWait bounds how long Acquire waits for the queue head. The same
// bound is used to expire orphaned tickets left by crashed processes.
func WithMaxWait(d time.Duration) TicketOption {
	return func(t *TicketQueue) {
		t.maxWait = d
	}
}

// NewTicketQueue creates a FIFO arbiter over the given queue directory.
// jobID must be unique across concurrent requests; the dispatcher uses a
// nanosecond timestamp.
func NewTicketQueue(dir, jobID string, opts ...TicketOption) *TicketQueue {
	t := &TicketQueue{
		dir:          dir,
		jobID:        jobID,
		pollInterval: DefaultPollInterval,
		maxWait:      DefaultMaxWait,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Acquire registers a ticket and waits until it reaches the head of the
// queue. On timeout or cancellation the ticket is removed before returning.
func (t *TicketQueue) Acquire(ctx context.Context) error {
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return fmt.Errorf("creating queue directory: %w", err)
	}

	// Clear tickets abandoned by crashed holders so they cannot block the
	// queue forever.
	t.reapStale()

	if err := t.register(); err != nil {
		return err
	}

	deadline := time.NewTimer(t.maxWait)
	defer deadline.Stop()
	tick := time.NewTicker(t.pollInterval)
	defer tick.Stop()

	for {
		head, err := t.isHead()
		if err != nil {
			t.removeTicket()
			return err
		}
		if head {
			t.startHeartbeat()
			return nil
		}

		select {
		case <-ctx.Done():
			t.removeTicket()
			return ctx.Err()
		case <-deadline.C:
			t.removeTicket()
			return ErrAcquireTimeout
		case <-tick.C:
			t.touch()
		}
	}
}

// Release removes this request's ticket, letting the next waiter proceed.
// Safe to call more than once.
func (t *TicketQueue) Release() error {
	if t.ticket == "" {
		return ErrNotHeld
	}
	t.stopHeartbeat()
	t.removeTicket()
	return nil
}

// startHeartbeat refreshes the held ticket's mtime in the background so a
// long playback never makes it look orphaned to later arrivals. The
// reaper's age criterion is only sound while every live ticket keeps
// getting touched.
func (t *TicketQueue) startHeartbeat() {
	t.heartbeatStop = make(chan struct{})
	t.heartbeatDone = make(chan struct{})
	go func(path string, stop, done chan struct{}) {
		defer close(done)
		tick := time.NewTicker(t.pollInterval)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				now := time.Now()
				os.Chtimes(path, now, now) //nolint:errcheck
			}
		}
	}(t.ticket, t.heartbeatStop, t.heartbeatDone)
}

func (t *TicketQueue) stopHeartbeat() {
	if t.heartbeatStop == nil {
		return
	}
	close(t.heartbeatStop)
	<-t.heartbeatDone
	t.heartbeatStop = nil
	t.heartbeatDone = nil
}

// touch refreshes our ticket's mtime while waiting in line.
func (t *TicketQueue) touch() {
	now := time.Now()
	os.Chtimes(t.ticket, now, now) //nolint:errcheck
}

// register atomically creates the ticket file. Creation happens under a
// short-lived exclusive lock so that ticket creation and the first head
// check cannot interleave between two arrivals.
func (t *TicketQueue) register() error {
	lock := flock.New(filepath.Join(t.dir, registerLockName))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquiring registration lock: %w", err)
	}
	defer lock.Unlock() //nolint:errcheck

	path := filepath.Join(t.dir, t.jobID+ticketSuffix)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating ticket: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ticket: %w", err)
	}
	t.ticket = path
	return nil
}

// isHead reports whether our ticket is the oldest outstanding one.
func (t *TicketQueue) isHead() (bool, error) {
	tickets, err := t.listTickets()
	if err != nil {
		return false, err
	}
	if len(tickets) == 0 {
		// Our own ticket is gone (reaped externally); treat the queue as
		// free rather than deadlocking.
		return true, nil
	}
	return tickets[0] == filepath.Base(t.ticket), nil
}

// listTickets returns ticket file names sorted by arrival order.
func (t *TicketQueue) listTickets() ([]string, error) {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		return nil, fmt.Errorf("reading queue directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ticketSuffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// reapStale removes tickets older than the max wait bound. Every live
// process refreshes its ticket's mtime at least once per poll interval,
// waiting or holding, so a ticket that old belongs to a crashed process.
func (t *TicketQueue) reapStale() {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-t.maxWait)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ticketSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(t.dir, e.Name()))
		}
	}
}

func (t *TicketQueue) removeTicket() {
	if t.ticket != "" {
		os.Remove(t.ticket)
		t.ticket = ""
	}
}
