package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/InstruktAI/ClaudeConfig/internal/provider"
	"github.com/InstruktAI/ClaudeConfig/internal/speech"
)

var (
	workerJobID     string
	workerProviders string
	workerCorrID    string
	workerText      string

	workerCmd = &cobra.Command{
		Use:    "worker",
		Hidden: true,
		Short:  "Internal playback worker (spawned by dispatch, do not run by hand)",
		Args:   cobra.NoArgs,
		RunE:   runWorker,
	}
)

// runWorker is the detached coordinator process: it waits for its turn at
// the audio device, plays through the fallback chain, and reports the
// outcome solely through its exit code.
func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	logger = logger.With("job", workerJobID, "correlation", workerCorrID)

	// Release the ticket even when the worker is terminated externally.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := newRegistry(cfg, logger)
	providers := provider.Filter(registry.Resolve(provider.ParsePriority(workerProviders)))

	c := speech.NewCoordinator(
		speech.NewArbiter(cfg, workerJobID),
		providers,
		logger,
		speech.WithProviderTimeout(cfg.ProviderTimeout),
		speech.WithCooldown(cfg.Cooldown),
	)
	if err := c.Run(ctx, workerText); err != nil {
		logger.Error("playback failed", "err", err)
		return err
	}
	return nil
}

func init() {
	workerCmd.Flags().StringVar(&workerJobID, "job-id", "", "queue ordering id")
	workerCmd.Flags().StringVar(&workerProviders, "providers", "", "filtered provider priority list")
	workerCmd.Flags().StringVar(&workerCorrID, "correlation-id", "", "correlation id for logs")
	workerCmd.Flags().StringVar(&workerText, "text", "", "text to speak")
	_ = workerCmd.MarkFlagRequired("job-id")
	_ = workerCmd.MarkFlagRequired("providers")
	_ = workerCmd.MarkFlagRequired("text")
}
