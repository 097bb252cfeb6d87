package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// ElevenLabs defaults matching the Flash v2.5 low-latency setup.
const (
	elevenLabsEndpoint     = "https://api.elevenlabs.io/v1/text-to-speech"
	DefaultElevenLabsVoice = "EXAVITQu4vr4xnSDxMaL"
	DefaultElevenLabsModel = "eleven_flash_v2_5"

	// pcm_24000 keeps the response playable without a decoder.
	elevenLabsOutputFormat = "pcm_24000"
)

// ElevenLabs synthesizes speech through the ElevenLabs HTTP API and plays
// the returned PCM on the shared player.
type ElevenLabs struct {
	apiKey   string
	voiceID  string
	modelID  string
	endpoint string
	client   *http.Client
	player   Playback
	log      *log.Logger
}

// NewElevenLabs creates the ElevenLabs provider. Empty voice or model fall
// back to the defaults above.
func NewElevenLabs(s Settings, player Playback, logger *log.Logger) *ElevenLabs {
	voice := s.ElevenLabsVoiceID
	if voice == "" {
		voice = DefaultElevenLabsVoice
	}
	model := s.ElevenLabsModelID
	if model == "" {
		model = DefaultElevenLabsModel
	}
	return &ElevenLabs{
		apiKey:   s.ElevenLabsAPIKey,
		voiceID:  voice,
		modelID:  model,
		endpoint: elevenLabsEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		player:   player,
		log:      logger,
	}
}

// Name implements Provider.
func (e *ElevenLabs) Name() string { return "elevenlabs" }

// Available requires the API key.
func (e *ElevenLabs) Available() bool { return e.apiKey != "" }

type elevenLabsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// SynthesizeAndPlay converts text and plays the result.
func (e *ElevenLabs) SynthesizeAndPlay(ctx context.Context, text string) error {
	if e.apiKey == "" {
		return fmt.Errorf("elevenlabs: missing API key")
	}

	body, err := json.Marshal(elevenLabsRequest{Text: text, ModelID: e.modelID})
	if err != nil {
		return fmt.Errorf("elevenlabs: encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?output_format=%s", e.endpoint, e.voiceID, elevenLabsOutputFormat)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("elevenlabs: creating request: %w", err)
	}
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	e.log.Debug("synthesizing via ElevenLabs", "voice", e.voiceID, "model", e.modelID, "chars", len(text))

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("elevenlabs: request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("elevenlabs: status %d: %s", resp.StatusCode, detail)
	}

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("elevenlabs: reading audio: %w", err)
	}

	e.log.Debug("playing ElevenLabs audio", "bytes", len(pcm))
	return e.player.Play(ctx, pcm)
}
