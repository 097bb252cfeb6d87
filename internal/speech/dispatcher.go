package speech

import (
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/InstruktAI/ClaudeConfig/internal/provider"
)

// SpawnFunc launches a detached worker for a request with the filtered
// provider name list. The default re-execs this binary; tests substitute
// an in-process fake.
type SpawnFunc func(req Request, providers []string) error

// Dispatcher is the caller-facing entry point. Speak filters the provider
// chain, hands the request to a detached worker, and returns immediately.
// It never waits for audio.
type Dispatcher struct {
	cfg      Config
	registry *provider.Registry
	spawn    SpawnFunc
	log      *log.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSpawn replaces the worker spawn mechanism.
func WithSpawn(fn SpawnFunc) DispatcherOption {
	return func(d *Dispatcher) {
		d.spawn = fn
	}
}

// NewDispatcher creates a dispatcher over the given provider registry.
func NewDispatcher(cfg Config, registry *provider.Registry, logger *log.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		cfg:      cfg,
		registry: registry,
		spawn:    spawnWorker,
		log:      logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Speak accepts a request and returns once a worker has been spawned. The
// worker's outcome is observable only through its exit code and logs; the
// caller gets no synchronous playback signal.
func (d *Dispatcher) Speak(req Request) error {
	if !bool(d.cfg.Enabled) {
		return ErrDisabled
	}
	if strings.TrimSpace(req.Text) == "" {
		return ErrEmptyText
	}

	names := provider.ParsePriority(d.cfg.Services)
	eligible := provider.Filter(d.registry.Resolve(names))
	if len(eligible) == 0 {
		d.log.Warn("no eligible TTS provider", "priority", d.cfg.Services)
		return ErrNoProviderAvailable
	}

	if req.JobID == "" {
		req.JobID = NewJobID()
	}
	if req.CorrelationID == "" {
		req.CorrelationID = NewCorrelationID()
	}

	chain := make([]string, len(eligible))
	for i, p := range eligible {
		chain[i] = p.Name()
	}

	d.log.Debug("dispatching speak request",
		"job", req.JobID, "hook", req.HookName, "providers", strings.Join(chain, ","))
	return d.spawn(req, chain)
}

// spawnWorker re-execs this binary as a detached worker process. The worker
// outlives the dispatching hook; stdio is dropped so the hook's own output
// stays clean.
func spawnWorker(req Request, providers []string) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, "worker",
		"--job-id", req.JobID,
		"--providers", strings.Join(providers, ","),
		"--correlation-id", req.CorrelationID,
		"--text", req.Text,
	)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return err
	}
	// Detach: the worker's exit status is its own business.
	return cmd.Process.Release()
}
