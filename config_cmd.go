package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"

	"github.com/InstruktAI/ClaudeConfig/internal/speech"
)

const defaultConfig = `# TTS (Text-to-Speech) configuration.
# Environment variables always override values set here.
tts:
  # Enable the subsystem (TTS_ENABLED).
  enabled: false

  # Ordered provider priority list (TTS_SERVICE).
  # Known providers: say, elevenlabs, openai.
  service: "say"

  # Log level: debug, info, warn, error (TTS_LOG_LEVEL).
  log_level: "info"

  # Queue discipline: "ticket" (FIFO, fair) or "lock" (simpler, unordered).
  queue_mode: "ticket"
  # queue_dir: "~/.claude/.tmp/tts_queue"

  # Timing.
  max_wait: "30s"
  poll_interval: "100ms"
  provider_timeout: "10s"
  cooldown: "500ms"
  debounce_window: "10s"

  # Hook events to silence, comma-separated (TTS_SKIP_HOOK_EVENTS).
  # skip_hook_events: "SessionStart,SessionEnd"

  elevenlabs:
    # voice_id: "EXAVITQu4vr4xnSDxMaL"
    # model_id: "eleven_flash_v2_5"

  openai:
    # model: "gpt-4o-mini-tts"
    # voice: "nova"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Edit the claudespeak config file",
	Long:    "Edit the claudespeak config file. We'll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.",
	Example: "claudespeak config\nclaudespeak config --config path/to/claudespeak.yml",
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("claudespeak", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = speech.ConfigFilePath()
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
