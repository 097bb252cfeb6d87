package provider

import (
	"context"
	"sync"
	"time"
)

// Mock is a configurable provider for tests. It records every invocation
// with wall-clock start and end times so tests can assert ordering and
// overlap properties.
type Mock struct {
	name      string
	available bool
	err       error
	delay     time.Duration

	mu    sync.Mutex
	calls []MockCall
}

// MockCall is one recorded SynthesizeAndPlay invocation.
type MockCall struct {
	Text  string
	Start time.Time
	End   time.Time
}

// NewMock creates an available mock provider that always succeeds.
func NewMock(name string) *Mock {
	return &Mock{name: name, available: true}
}

// WithError makes every call fail with err.
func (m *Mock) WithError(err error) *Mock {
	m.err = err
	return m
}

// WithDelay makes every call take d, honoring cancellation.
func (m *Mock) WithDelay(d time.Duration) *Mock {
	m.delay = d
	return m
}

// WithAvailable sets the availability predicate result.
func (m *Mock) WithAvailable(ok bool) *Mock {
	m.available = ok
	return m
}

// Name implements Provider.
func (m *Mock) Name() string { return m.name }

// Available implements Provider.
func (m *Mock) Available() bool { return m.available }

// SynthesizeAndPlay implements Provider.
func (m *Mock) SynthesizeAndPlay(ctx context.Context, text string) error {
	start := time.Now()
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.delay):
		}
	}

	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Text: text, Start: start, End: time.Now()})
	m.mu.Unlock()

	return m.err
}

// Calls returns the recorded invocations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times the provider was invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
