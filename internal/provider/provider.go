// Package provider wraps concrete speech backends behind a single
// synthesize-and-play operation. Providers own all of their failure modes:
// a missing credential, a network error, or an unsupported platform comes
// back as a plain error, never a panic. Sequencing across providers is the
// coordinator's job, not theirs.
package provider

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
)

// Provider is one speech backend normalized to a uniform operation.
type Provider interface {
	// Name is the identifier used in the TTS_SERVICE priority list.
	Name() string

	// Available reports whether the provider can be used right now,
	// typically whether its required credential is present.
	Available() bool

	// SynthesizeAndPlay speaks text on the audio device, blocking until
	// playback finishes. Any internal fault is returned as an error.
	SynthesizeAndPlay(ctx context.Context, text string) error
}

// Settings carries per-provider configuration sourced from the environment.
type Settings struct {
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
	ElevenLabsModelID string

	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIVoice  string
}

// Registry holds the known providers in registration order.
type Registry struct {
	providers map[string]Provider
	log       *log.Logger
}

// NewRegistry builds the default provider set from settings. The player is
// shared by the network providers; the platform speech provider plays
// through its backend command directly.
func NewRegistry(s Settings, player Playback, logger *log.Logger) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		log:       logger,
	}
	r.Register(NewSay(logger))
	r.Register(NewElevenLabs(s, player, logger))
	r.Register(NewOpenAI(s, player, logger))
	return r
}

// Playback is the slice of the audio player providers need.
type Playback interface {
	Play(ctx context.Context, pcm []byte) error
}

// Register adds or replaces a provider by name.
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Resolve maps an ordered name list to providers, dropping unknown names
// with a warning and preserving the relative order of the rest.
func (r *Registry) Resolve(names []string) []Provider {
	out := make([]Provider, 0, len(names))
	for _, name := range names {
		p, ok := r.providers[name]
		if !ok {
			r.log.Warn("unknown TTS provider in priority list", "provider", name)
			continue
		}
		out = append(out, p)
	}
	return out
}

// ParsePriority splits a comma-separated provider priority list, trimming
// whitespace and lowercasing names. Empty entries are dropped.
func ParsePriority(csv string) []string {
	parts := strings.Split(csv, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.ToLower(strings.TrimSpace(p))
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Filter keeps the providers whose availability predicate holds, in order.
func Filter(providers []Provider) []Provider {
	out := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p.Available() {
			out = append(out, p)
		}
	}
	return out
}
