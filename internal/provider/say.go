package provider

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
)

// Overridable for tests.
var (
	sayLookPath = exec.LookPath
	sayRun      = func(ctx context.Context, name string, args ...string) error {
		return exec.CommandContext(ctx, name, args...).Run()
	}
)

// Say speaks through the native platform speech command: `say` on macOS,
// espeak-ng/espeak/spd-say on Linux. Needs no credentials, which makes it
// the default tail of the fallback chain.
type Say struct {
	log *log.Logger
}

// NewSay creates the platform speech provider.
func NewSay(logger *log.Logger) *Say {
	return &Say{log: logger}
}

// Name implements Provider.
func (s *Say) Name() string { return "say" }

// Available reports whether a speech command exists on PATH.
func (s *Say) Available() bool {
	_, _, err := s.backend()
	return err == nil
}

// SynthesizeAndPlay runs the speech command. The command plays audio itself;
// there is no separate playback step.
func (s *Say) SynthesizeAndPlay(ctx context.Context, text string) error {
	bin, extra, err := s.backend()
	if err != nil {
		return err
	}
	args := append(extra, text)
	s.log.Debug("speaking via platform command", "binary", bin)
	if err := sayRun(ctx, bin, args...); err != nil {
		return fmt.Errorf("%s: %w", bin, err)
	}
	return nil
}

// backend picks the first speech command present on PATH for this platform.
func (s *Say) backend() (string, []string, error) {
	for _, c := range speechCandidates() {
		if path, err := sayLookPath(c.bin); err == nil {
			return path, c.args, nil
		}
	}
	return "", nil, errors.New("no platform speech command found")
}

type speechCommand struct {
	bin  string
	args []string
}

func speechCandidates() []speechCommand {
	if runtime.GOOS == "darwin" {
		return []speechCommand{{bin: "say"}}
	}
	return []speechCommand{
		{bin: "espeak-ng"},
		{bin: "espeak"},
		// spd-say returns before playback ends unless told to wait.
		{bin: "spd-say", args: []string{"--wait"}},
	}
}
