// Package audio plays raw PCM through the system audio device via oto.
package audio

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// PCM parameters shared by all network providers. ElevenLabs pcm_24000 and
// the OpenAI pcm response format both produce 24kHz 16-bit LE mono.
const (
	SampleRate   = 24000
	ChannelCount = 1
)

// Player plays a complete PCM buffer, blocking until playback finishes or
// the context is canceled.
type Player interface {
	Play(ctx context.Context, pcm []byte) error
}

// OtoPlayer implements Player on the oto audio context. The context is
// created lazily on first use because it binds the audio device, and a
// worker that never reaches a network provider should not touch it.
type OtoPlayer struct {
	once    sync.Once
	ctx     *oto.Context
	initErr error
}

// NewOtoPlayer creates an uninitialized system audio player.
func NewOtoPlayer() *OtoPlayer {
	return &OtoPlayer{}
}

func (p *OtoPlayer) init() {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		p.initErr = err
		return
	}
	<-ready
	p.ctx = ctx
}

// Play blocks until the buffer has been played. Cancellation pauses the
// stream and returns the context error.
func (p *OtoPlayer) Play(ctx context.Context, pcm []byte) error {
	p.once.Do(p.init)
	if p.initErr != nil {
		return p.initErr
	}

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))
	defer player.Close() //nolint:errcheck
	player.Play()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return nil
}
