package provider

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI speech defaults.
const (
	DefaultOpenAIModel = "gpt-4o-mini-tts"
	DefaultOpenAIVoice = "nova"
)

// OpenAI synthesizes speech through the OpenAI audio API and plays the
// returned PCM on the shared player.
type OpenAI struct {
	apiKey string
	model  string
	voice  string
	client openai.Client
	player Playback
	log    *log.Logger
}

// NewOpenAI creates the OpenAI provider. Empty model or voice fall back to
// the defaults above.
func NewOpenAI(s Settings, player Playback, logger *log.Logger) *OpenAI {
	model := s.OpenAIModel
	if model == "" {
		model = DefaultOpenAIModel
	}
	voice := s.OpenAIVoice
	if voice == "" {
		voice = DefaultOpenAIVoice
	}
	return &OpenAI{
		apiKey: s.OpenAIAPIKey,
		model:  model,
		voice:  voice,
		client: openai.NewClient(option.WithAPIKey(s.OpenAIAPIKey)),
		player: player,
		log:    logger,
	}
}

// Name implements Provider.
func (o *OpenAI) Name() string { return "openai" }

// Available requires the API key.
func (o *OpenAI) Available() bool { return o.apiKey != "" }

// SynthesizeAndPlay converts text and plays the result. The pcm response
// format is 24kHz 16-bit mono, matching the shared player.
func (o *OpenAI) SynthesizeAndPlay(ctx context.Context, text string) error {
	if o.apiKey == "" {
		return fmt.Errorf("openai: missing API key")
	}

	o.log.Debug("synthesizing via OpenAI", "model", o.model, "voice", o.voice, "chars", len(text))

	resp, err := o.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(o.model),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(o.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		return fmt.Errorf("openai: speech request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("openai: reading audio: %w", err)
	}

	o.log.Debug("playing OpenAI audio", "bytes", len(pcm))
	return o.player.Play(ctx, pcm)
}
