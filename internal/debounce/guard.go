// Package debounce suppresses rapid repeat announcements within a scope.
// The per-scope record is a timestamp file, so independent hook processes
// share it. Read-then-write is deliberately best-effort: a race can let a
// duplicate announcement through, which is acceptable; it can never
// suppress the first announcement in a fresh scope.
package debounce

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the minimum interval between announcements in a scope.
const DefaultWindow = 10 * time.Second

// Guard tracks the last announcement time per scope.
type Guard struct {
	dir    string
	window time.Duration
	now    func() time.Time // injectable clock for tests
}

// NewGuard creates a guard persisting records under dir. A zero window
// falls back to DefaultWindow.
func NewGuard(dir string, window time.Duration) *Guard {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Guard{dir: dir, window: window, now: time.Now}
}

// ShouldSuppress reports whether an announcement in scope arrived within
// the window of the previous one. Any read or parse error counts as "no
// previous announcement" so a fresh or corrupted scope always plays.
func (g *Guard) ShouldSuppress(scope string) bool {
	data, err := os.ReadFile(g.path(scope))
	if err != nil {
		return false
	}
	nanos, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return false
	}
	return g.now().Sub(time.Unix(0, nanos)) < g.window
}

// Mark records that an announcement was queued for scope just now. Call it
// after the announcement is actually dispatched, not before.
func (g *Guard) Mark(scope string) error {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return err
	}
	stamp := strconv.FormatInt(g.now().UnixNano(), 10)
	return os.WriteFile(g.path(scope), []byte(stamp), 0o644)
}

func (g *Guard) path(scope string) string {
	return filepath.Join(g.dir, "tts_last_"+sanitize(scope))
}

// sanitize keeps scope keys filesystem-safe.
func sanitize(scope string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, scope)
}
