package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/InstruktAI/ClaudeConfig/internal/arbiter"
	"github.com/InstruktAI/ClaudeConfig/internal/provider"
)

// Coordinator owns one playback attempt chain: it acquires the arbiter,
// walks the provider list in order until one succeeds, and releases on
// every exit path.
type Coordinator struct {
	arb             arbiter.Arbiter
	providers       []provider.Provider
	providerTimeout time.Duration
	cooldown        time.Duration
	log             *log.Logger
	sleep           func(time.Duration) // injectable for tests
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithProviderTimeout bounds each provider's synthesize-and-play call.
func WithProviderTimeout(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		c.providerTimeout = d
	}
}

// WithCooldown sets the settle delay after a successful playback, before
// the device is released to the next job.
func WithCooldown(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		c.cooldown = d
	}
}

func withSleep(fn func(time.Duration)) CoordinatorOption {
	return func(c *Coordinator) {
		c.sleep = fn
	}
}

// NewCoordinator creates a coordinator for one request.
func NewCoordinator(arb arbiter.Arbiter, providers []provider.Provider, logger *log.Logger, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		arb:             arb,
		providers:       providers,
		providerTimeout: 10 * time.Second,
		cooldown:        500 * time.Millisecond,
		log:             logger,
		sleep:           time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run speaks text once: waits for the device turn, then tries each provider
// in order under its timeout, stopping at the first success. Returns nil
// iff some provider produced audio. The chain is never retried.
func (c *Coordinator) Run(ctx context.Context, text string) error {
	if len(c.providers) == 0 {
		return ErrNoProviderAvailable
	}

	if err := c.arb.Acquire(ctx); err != nil {
		return fmt.Errorf("acquiring audio device: %w", err)
	}
	defer func() {
		if err := c.arb.Release(); err != nil {
			c.log.Error("releasing audio device", "err", err)
		}
	}()

	for i, p := range c.providers {
		err := c.tryProvider(ctx, p, text)
		if err == nil {
			c.log.Debug("playback succeeded", "provider", p.Name(), "attempt", i+1)
			// Let the device settle so the next job doesn't truncate us.
			c.sleep(c.cooldown)
			return nil
		}
		c.log.Warn("TTS provider failed, advancing", "provider", p.Name(), "err", err)
	}

	return ErrAllProvidersFailed
}

// tryProvider runs one synthesize-and-play call under the per-provider
// timeout. A panicking provider is treated as a failed attempt, not a
// coordinator crash.
func (c *Coordinator) tryProvider(ctx context.Context, p provider.Provider, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider %s panicked: %v", p.Name(), r)
		}
	}()

	pctx, cancel := context.WithTimeout(ctx, c.providerTimeout)
	defer cancel()
	return p.SynthesizeAndPlay(pctx, text)
}
