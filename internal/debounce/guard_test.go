package debounce

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshScopeNeverSuppressed(t *testing.T) {
	g := NewGuard(t.TempDir(), time.Second)
	assert.False(t, g.ShouldSuppress("session-1"))
}

func TestSuppressWithinWindow(t *testing.T) {
	g := NewGuard(t.TempDir(), time.Second)

	require.NoError(t, g.Mark("session-1"))
	assert.True(t, g.ShouldSuppress("session-1"))

	// Other scopes are unaffected.
	assert.False(t, g.ShouldSuppress("session-2"))
}

func TestAllowBeyondWindow(t *testing.T) {
	g := NewGuard(t.TempDir(), 50*time.Millisecond)

	require.NoError(t, g.Mark("session-1"))
	assert.True(t, g.ShouldSuppress("session-1"))

	now := time.Now()
	g.now = func() time.Time { return now.Add(100 * time.Millisecond) }
	assert.False(t, g.ShouldSuppress("session-1"))
}

func TestCorruptRecordPlays(t *testing.T) {
	dir := t.TempDir()
	g := NewGuard(dir, time.Second)

	require.NoError(t, g.Mark("session-1"))
	path := filepath.Join(dir, "tts_last_session-1")
	require.NoError(t, os.WriteFile(path, []byte("not a timestamp"), 0o644))

	assert.False(t, g.ShouldSuppress("session-1"))
}

func TestScopeKeySanitized(t *testing.T) {
	dir := t.TempDir()
	g := NewGuard(dir, time.Second)

	require.NoError(t, g.Mark("a/b c"))
	assert.FileExists(t, filepath.Join(dir, "tts_last_a_b_c"))
}
