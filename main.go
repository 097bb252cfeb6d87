// Package main provides the claudespeak CLI: spoken announcements for
// lifecycle hooks, with multi-provider fallback and cross-process playback
// coordination.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/InstruktAI/ClaudeConfig/internal/audio"
	"github.com/InstruktAI/ClaudeConfig/internal/provider"
	"github.com/InstruktAI/ClaudeConfig/internal/speech"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile    string
	hookName      string
	sessionID     string
	correlationID string

	rootCmd = &cobra.Command{
		Use:   "claudespeak [TEXT]",
		Short: "Speak short announcements with provider fallback",
		Long: "Speak a short announcement through the first working TTS provider.\n\n" +
			"Playback runs in a detached worker coordinated through a filesystem\n" +
			"queue, so concurrent callers never talk over each other and never\n" +
			"block waiting for audio.",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		PersistentPreRun: func(*cobra.Command, []string) {
			if configFile != "" {
				viper.SetConfigFile(configFile)
			}
		},
		RunE: executeSpeak,
	}
)

// loadConfig reads configuration and builds the root logger.
func loadConfig() (speech.Config, *log.Logger, error) {
	cfg, err := speech.Load()
	if err != nil {
		return cfg, nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "claudespeak",
	})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return cfg, logger, nil
}

// newRegistry builds the provider set for this process. The audio context
// inside the player is lazy, so constructing it here is free for commands
// that never play.
func newRegistry(cfg speech.Config, logger *log.Logger) *provider.Registry {
	return provider.NewRegistry(cfg.ProviderSettings(), audio.NewOtoPlayer(), logger)
}

func executeSpeak(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	d := speech.NewDispatcher(cfg, newRegistry(cfg, logger), logger)
	err = d.Speak(speech.Request{
		Text:          args[0],
		HookName:      hookName,
		SessionID:     sessionID,
		CorrelationID: correlationID,
	})
	if errors.Is(err, speech.ErrDisabled) {
		logger.Debug("TTS disabled, nothing to do")
		return nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ~/.config/claudespeak/claudespeak.yml)")
	rootCmd.Flags().StringVar(&hookName, "hook-name", "cli", "calling-context label for logs")
	rootCmd.Flags().StringVar(&sessionID, "session-id", "", "session id of the triggering session")
	rootCmd.Flags().StringVar(&correlationID, "correlation-id", "", "correlation id (generated when empty)")

	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(configCmd)

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
