package speech

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InstruktAI/ClaudeConfig/internal/provider"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

type spawnRecorder struct {
	calls []spawnCall
}

type spawnCall struct {
	req       Request
	providers []string
}

func (s *spawnRecorder) spawn(req Request, providers []string) error {
	s.calls = append(s.calls, spawnCall{req: req, providers: providers})
	return nil
}

func testRegistry(providers ...provider.Provider) *provider.Registry {
	r := provider.NewRegistry(provider.Settings{}, nil, testLogger())
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

func TestDispatcherRejectsEmptyText(t *testing.T) {
	rec := &spawnRecorder{}
	d := NewDispatcher(Config{Enabled: true, Services: "say"},
		testRegistry(), testLogger(), WithSpawn(rec.spawn))

	assert.ErrorIs(t, d.Speak(Request{Text: "   "}), ErrEmptyText)
	assert.Empty(t, rec.calls)
}

func TestDispatcherDisabledShortCircuit(t *testing.T) {
	dir := t.TempDir()
	rec := &spawnRecorder{}
	d := NewDispatcher(Config{Enabled: false, Services: "say", QueueDir: dir},
		testRegistry(), testLogger(), WithSpawn(rec.spawn))

	assert.ErrorIs(t, d.Speak(Request{Text: "hello"}), ErrDisabled)
	assert.Empty(t, rec.calls, "disabled dispatch must not spawn")

	// And must not leave any filesystem artifact behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDispatcherNoProviderAvailable(t *testing.T) {
	rec := &spawnRecorder{}
	reg := testRegistry(provider.NewMock("offline").WithAvailable(false))
	d := NewDispatcher(Config{Enabled: true, Services: "offline"},
		reg, testLogger(), WithSpawn(rec.spawn))

	assert.ErrorIs(t, d.Speak(Request{Text: "hello"}), ErrNoProviderAvailable)
	assert.Empty(t, rec.calls)
}

func TestDispatcherFiltersAndPreservesOrder(t *testing.T) {
	rec := &spawnRecorder{}
	reg := testRegistry(
		provider.NewMock("first").WithAvailable(false),
		provider.NewMock("second"),
		provider.NewMock("third"),
	)
	cfg := Config{Enabled: true, Services: "first, second, unknown, third"}
	d := NewDispatcher(cfg, reg, testLogger(), WithSpawn(rec.spawn))

	require.NoError(t, d.Speak(Request{Text: "hello", HookName: "tts"}))
	require.Len(t, rec.calls, 1, "exactly one worker per request")
	assert.Equal(t, []string{"second", "third"}, rec.calls[0].providers)
}

func TestDispatcherFillsGeneratedFields(t *testing.T) {
	rec := &spawnRecorder{}
	reg := testRegistry(provider.NewMock("mock"))
	d := NewDispatcher(Config{Enabled: true, Services: "mock"},
		reg, testLogger(), WithSpawn(rec.spawn))

	require.NoError(t, d.Speak(Request{Text: "hello"}))
	require.Len(t, rec.calls, 1)
	got := rec.calls[0].req
	assert.NotEmpty(t, got.JobID)
	assert.NotEmpty(t, got.CorrelationID)
}

func TestDispatcherKeepsCallerCorrelationID(t *testing.T) {
	rec := &spawnRecorder{}
	reg := testRegistry(provider.NewMock("mock"))
	d := NewDispatcher(Config{Enabled: true, Services: "mock"},
		reg, testLogger(), WithSpawn(rec.spawn))

	require.NoError(t, d.Speak(Request{Text: "hello", CorrelationID: "corr-7"}))
	require.Len(t, rec.calls, 1)
	assert.Equal(t, "corr-7", rec.calls[0].req.CorrelationID)
}

func TestJobIDsAreMonotonic(t *testing.T) {
	a := NewJobID()
	b := NewJobID()
	assert.LessOrEqual(t, a, b)
}

func TestConfigFilePathDefault(t *testing.T) {
	path := ConfigFilePath()
	if path == "" {
		t.Skip("no home directory")
	}
	assert.Equal(t, "claudespeak.yml", filepath.Base(path))
}
