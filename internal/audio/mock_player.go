package audio

import (
	"context"
	"sync"
	"time"
)

// MockPlayer records Play calls without touching the audio device. Used by
// provider and coordinator tests.
type MockPlayer struct {
	mu      sync.Mutex
	plays   [][]byte
	delay   time.Duration
	failErr error
}

// NewMockPlayer creates a silent player.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// FailWith makes every subsequent Play return err.
func (m *MockPlayer) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// SetDelay makes Play block for d, honoring context cancellation.
func (m *MockPlayer) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Play records the buffer and simulates playback time.
func (m *MockPlayer) Play(ctx context.Context, pcm []byte) error {
	m.mu.Lock()
	delay, failErr := m.delay, m.failErr
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	if failErr != nil {
		return failErr
	}

	m.mu.Lock()
	m.plays = append(m.plays, pcm)
	m.mu.Unlock()
	return nil
}

// Plays returns the recorded buffers.
func (m *MockPlayer) Plays() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.plays))
	copy(out, m.plays)
	return out
}
