// Package speech is the playback coordination core: the dispatcher that
// accepts speak requests from hooks, and the coordinator that owns one
// exclusive playback attempt chain in a detached worker process.
package speech

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/InstruktAI/ClaudeConfig/internal/provider"
)

// Overridable for tests.
var godotenvLoad = godotenv.Load

// Arbiter disciplines.
const (
	QueueModeTicket = "ticket"
	QueueModeLock   = "lock"
)

// Toggle is a boolean accepting common true/false spellings. Anything not
// recognized as true reads as false, so a malformed TTS_ENABLED value
// disables the subsystem rather than breaking the caller's hook.
type Toggle bool

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Toggle) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "1", "t", "true", "y", "yes", "on":
		*t = true
	default:
		*t = false
	}
	return nil
}

// Config holds all subsystem settings, read from the environment with an
// optional YAML config file supplying defaults underneath.
type Config struct {
	Enabled  Toggle `env:"TTS_ENABLED" envDefault:"false"`
	Services string `env:"TTS_SERVICE" envDefault:"say"`
	LogLevel string `env:"TTS_LOG_LEVEL" envDefault:"info"`

	QueueDir  string `env:"TTS_QUEUE_DIR"`
	QueueMode string `env:"TTS_QUEUE_MODE" envDefault:"ticket"`

	MaxWait         time.Duration `env:"TTS_MAX_WAIT" envDefault:"30s"`
	PollInterval    time.Duration `env:"TTS_POLL_INTERVAL" envDefault:"100ms"`
	ProviderTimeout time.Duration `env:"TTS_PROVIDER_TIMEOUT" envDefault:"10s"`
	Cooldown        time.Duration `env:"TTS_COOLDOWN" envDefault:"500ms"`
	DebounceWindow  time.Duration `env:"TTS_DEBOUNCE_WINDOW" envDefault:"10s"`

	SkipHookEvents string `env:"TTS_SKIP_HOOK_EVENTS"`
	EngineerName   string `env:"ENGINEER_NAME"`

	ElevenLabsAPIKey  string `env:"ELEVENLABS_API_KEY"`
	ElevenLabsVoiceID string `env:"ELEVENLABS_VOICE_ID"`
	ElevenLabsModelID string `env:"ELEVENLABS_MODEL_ID"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_TTS_MODEL"`
	OpenAIVoice  string `env:"OPENAI_TTS_VOICE"`
}

// ProviderSettings extracts the provider-facing slice of the config.
func (c Config) ProviderSettings() provider.Settings {
	return provider.Settings{
		ElevenLabsAPIKey:  c.ElevenLabsAPIKey,
		ElevenLabsVoiceID: c.ElevenLabsVoiceID,
		ElevenLabsModelID: c.ElevenLabsModelID,
		OpenAIAPIKey:      c.OpenAIAPIKey,
		OpenAIModel:       c.OpenAIModel,
		OpenAIVoice:       c.OpenAIVoice,
	}
}

// Load reads configuration: a best-effort ~/.claude/.env, then the
// environment, then file defaults for anything the environment left unset.
func Load() (Config, error) {
	loadDotenv()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}

	applyFileConfig(&cfg)

	if cfg.QueueDir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return cfg, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.QueueDir = filepath.Join(home, ".claude", ".tmp", "tts_queue")
	}

	if cfg.QueueMode != QueueModeTicket && cfg.QueueMode != QueueModeLock {
		return cfg, fmt.Errorf("invalid TTS_QUEUE_MODE %q: use %q or %q",
			cfg.QueueMode, QueueModeTicket, QueueModeLock)
	}
	return cfg, nil
}

// loadDotenv mirrors the hook convention of keeping credentials in
// ~/.claude/.env. Missing file is fine; explicit environment always wins
// because godotenv never overrides set variables.
func loadDotenv() {
	home, err := homedir.Dir()
	if err != nil {
		return
	}
	_ = godotenvLoad(filepath.Join(home, ".claude", ".env"))
}

// applyFileConfig layers values from the optional config file under the
// environment: a file value is used only when the corresponding variable
// is not set.
func applyFileConfig(cfg *Config) {
	if !readConfigFile() {
		return
	}

	setString := func(envName, key string, dst *string) {
		if _, ok := os.LookupEnv(envName); !ok && viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}
	setDuration := func(envName, key string, dst *time.Duration) {
		if _, ok := os.LookupEnv(envName); ok || !viper.IsSet(key) {
			return
		}
		if d, err := time.ParseDuration(viper.GetString(key)); err == nil {
			*dst = d
		}
	}

	if _, ok := os.LookupEnv("TTS_ENABLED"); !ok && viper.IsSet("tts.enabled") {
		cfg.Enabled = Toggle(viper.GetBool("tts.enabled"))
	}
	setString("TTS_SERVICE", "tts.service", &cfg.Services)
	setString("TTS_LOG_LEVEL", "tts.log_level", &cfg.LogLevel)
	setString("TTS_QUEUE_DIR", "tts.queue_dir", &cfg.QueueDir)
	setString("TTS_QUEUE_MODE", "tts.queue_mode", &cfg.QueueMode)
	setString("TTS_SKIP_HOOK_EVENTS", "tts.skip_hook_events", &cfg.SkipHookEvents)
	setDuration("TTS_MAX_WAIT", "tts.max_wait", &cfg.MaxWait)
	setDuration("TTS_POLL_INTERVAL", "tts.poll_interval", &cfg.PollInterval)
	setDuration("TTS_PROVIDER_TIMEOUT", "tts.provider_timeout", &cfg.ProviderTimeout)
	setDuration("TTS_COOLDOWN", "tts.cooldown", &cfg.Cooldown)
	setDuration("TTS_DEBOUNCE_WINDOW", "tts.debounce_window", &cfg.DebounceWindow)
	setString("ELEVENLABS_VOICE_ID", "tts.elevenlabs.voice_id", &cfg.ElevenLabsVoiceID)
	setString("ELEVENLABS_MODEL_ID", "tts.elevenlabs.model_id", &cfg.ElevenLabsModelID)
	setString("OPENAI_TTS_MODEL", "tts.openai.model", &cfg.OpenAIModel)
	setString("OPENAI_TTS_VOICE", "tts.openai.voice", &cfg.OpenAIVoice)
}

// readConfigFile loads the claudespeak config file into viper if present.
func readConfigFile() bool {
	if path := ConfigFilePath(); path != "" {
		viper.SetConfigFile(path)
	}
	return viper.ReadInConfig() == nil
}

// ConfigFilePath returns the config file location, honoring an explicit
// path set through viper (the --config flag) before the default.
func ConfigFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "claudespeak", "claudespeak.yml")
}
