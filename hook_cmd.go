package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/InstruktAI/ClaudeConfig/internal/debounce"
	"github.com/InstruktAI/ClaudeConfig/internal/hooks"
	"github.com/InstruktAI/ClaudeConfig/internal/speech"
)

var (
	hookEventType string

	hookCmd = &cobra.Command{
		Use:   "hook",
		Short: "Announce a lifecycle hook event (reads the payload from stdin)",
		Long: "Announce a lifecycle hook event. The event payload is read as JSON\n" +
			"from stdin. Always exits zero: an announcement failure must never\n" +
			"disturb the workflow that triggered the hook.",
		Args: cobra.NoArgs,
		RunE: runHook,
	}
)

// runHook swallows every failure after logging it. The event source treats
// a nonzero hook exit as a problem worth surfacing to the user; silence is
// the designed failure mode here.
func runHook(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if !bool(cfg.Enabled) {
		return nil
	}

	event, err := hooks.ParseEvent(hookEventType)
	if err != nil {
		return err
	}

	payload, err := hooks.ParsePayload(cmd.InOrStdin())
	if err != nil {
		logger.Error("bad hook payload", "err", err)
		return nil
	}

	logger.Info("hook triggered", "event", event, "session", payload.SessionID)

	d := speech.NewDispatcher(cfg, newRegistry(cfg, logger), logger)
	speak := func(text, hookName, session string) error {
		err := d.Speak(speech.Request{Text: text, HookName: hookName, SessionID: session})
		if errors.Is(err, speech.ErrDisabled) {
			return nil
		}
		return err
	}

	guard := debounce.NewGuard(os.TempDir(), cfg.DebounceWindow)
	h := hooks.NewHandler(speak, guard, cfg.SkipHookEvents, cfg.EngineerName, logger)
	if err := h.Handle(event, payload); err != nil {
		logger.Error("hook announcement failed", "event", event, "err", err)
	}
	return nil
}

func init() {
	hookCmd.Flags().StringVar(&hookEventType, "event-type", "", "event type: "+joinEvents())
	_ = hookCmd.MarkFlagRequired("event-type")
}

func joinEvents() string {
	out := ""
	for i, e := range hooks.Events() {
		if i > 0 {
			out += ", "
		}
		out += e
	}
	return out
}
