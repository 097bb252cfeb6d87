package speech

import "errors"

// Terminal outcomes of the speak pipeline. Provider-level failures are
// recovered inside the coordinator by advancing to the next provider and
// never surface through these.
var (
	// ErrDisabled indicates the global TTS enable flag is off.
	ErrDisabled = errors.New("TTS is disabled")

	// ErrEmptyText indicates a speak request with no text.
	ErrEmptyText = errors.New("speak request has empty text")

	// ErrNoProviderAvailable indicates every configured provider was
	// filtered out (unknown name or missing credential).
	ErrNoProviderAvailable = errors.New("no TTS provider available")

	// ErrAllProvidersFailed indicates the whole fallback chain was
	// exhausted without audible output.
	ErrAllProvidersFailed = errors.New("all TTS providers failed")
)
