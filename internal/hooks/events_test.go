package hooks

import (
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InstruktAI/ClaudeConfig/internal/debounce"
)

type spokenLine struct {
	text, hook, session string
}

type speakRecorder struct {
	lines []spokenLine
}

func (s *speakRecorder) speak(text, hook, session string) error {
	s.lines = append(s.lines, spokenLine{text, hook, session})
	return nil
}

func newTestHandler(t *testing.T, skipCSV, engineer string) (*Handler, *speakRecorder) {
	t.Helper()
	rec := &speakRecorder{}
	guard := debounce.NewGuard(t.TempDir(), time.Second)
	h := NewHandler(rec.speak, guard, skipCSV, engineer, log.New(io.Discard))
	h.rand = rand.New(rand.NewSource(1))
	return h, rec
}

func TestParsePayload(t *testing.T) {
	in := `{"session_id":"s1","message":"hi","source":"resume","reason":"clear","extra":true}`
	p, err := ParsePayload(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, Payload{SessionID: "s1", Message: "hi", Source: "resume", Reason: "clear"}, p)

	_, err = ParsePayload(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestParseEvent(t *testing.T) {
	e, err := ParseEvent("SessionStart")
	require.NoError(t, err)
	assert.Equal(t, EventSessionStart, e)

	_, err = ParseEvent("Coffee")
	assert.Error(t, err)
}

func TestNotificationSpeaksCannedLine(t *testing.T) {
	h, rec := newTestHandler(t, "", "")
	require.NoError(t, h.Handle(EventNotification, Payload{SessionID: "s1"}))
	require.Len(t, rec.lines, 1)
	assert.Contains(t, notificationMessages, rec.lines[0].text)
	assert.Equal(t, "s1", rec.lines[0].session)
}

func TestNotificationIgnoresIdleMessage(t *testing.T) {
	h, rec := newTestHandler(t, "", "")
	require.NoError(t, h.Handle(EventNotification, Payload{Message: idleNotification}))
	assert.Empty(t, rec.lines)
}

func TestSessionStartBySource(t *testing.T) {
	h, rec := newTestHandler(t, "", "")
	require.NoError(t, h.Handle(EventSessionStart, Payload{Source: "resume"}))
	require.NoError(t, h.Handle(EventSessionStart, Payload{Source: "weird"}))

	require.Len(t, rec.lines, 2)
	assert.Equal(t, "Resuming previous session", rec.lines[0].text)
	assert.Equal(t, "Session started", rec.lines[1].text)
}

func TestSessionEndByReason(t *testing.T) {
	h, rec := newTestHandler(t, "", "")
	require.NoError(t, h.Handle(EventSessionEnd, Payload{Reason: "logout"}))
	require.Len(t, rec.lines, 1)
	assert.Equal(t, "Logging out", rec.lines[0].text)
}

func TestSkipListSilencesEvent(t *testing.T) {
	h, rec := newTestHandler(t, "SessionStart, SessionEnd", "")
	require.NoError(t, h.Handle(EventSessionStart, Payload{Source: "startup"}))
	require.NoError(t, h.Handle(EventSessionEnd, Payload{Reason: "logout"}))
	assert.Empty(t, rec.lines)

	require.NoError(t, h.Handle(EventNotification, Payload{}))
	assert.Len(t, rec.lines, 1, "events outside the skip list still play")
}

func TestStopSpeaksSummaryThenCompletion(t *testing.T) {
	h, rec := newTestHandler(t, "", "")
	require.NoError(t, h.Handle(EventStop, Payload{Message: "Refactored the parser."}))

	require.Len(t, rec.lines, 2)
	assert.Equal(t, "Refactored the parser.", rec.lines[0].text)
	assert.Contains(t, completionMessages, rec.lines[1].text)
}

func TestStopWithoutSummary(t *testing.T) {
	h, rec := newTestHandler(t, "", "")
	require.NoError(t, h.Handle(EventStop, Payload{}))
	require.Len(t, rec.lines, 1)
	assert.Contains(t, completionMessages, rec.lines[0].text)
}

func TestSubagentStopDebounce(t *testing.T) {
	h, rec := newTestHandler(t, "", "")

	require.NoError(t, h.Handle(EventSubagentStop, Payload{SessionID: "s1", Message: "First done"}))
	require.NoError(t, h.Handle(EventSubagentStop, Payload{SessionID: "s1", Message: "Second done"}))
	assert.Len(t, rec.lines, 1, "repeat within the window is suppressed")

	// A different session is an independent scope.
	require.NoError(t, h.Handle(EventSubagentStop, Payload{SessionID: "s2", Message: "Other done"}))
	assert.Len(t, rec.lines, 2)
}

func TestSubagentStopFallsBackToStartupLine(t *testing.T) {
	h, rec := newTestHandler(t, "", "")
	require.NoError(t, h.Handle(EventSubagentStop, Payload{SessionID: "s1"}))
	require.Len(t, rec.lines, 1)
	assert.Contains(t, startupMessages, rec.lines[0].text)
}

func TestNotificationAddressesEngineer(t *testing.T) {
	h, rec := newTestHandler(t, "", "Dana")

	// Enough samples that both the personalized and plain form appear.
	personalized := false
	for i := 0; i < 40; i++ {
		require.NoError(t, h.Handle(EventNotification, Payload{}))
	}
	for _, line := range rec.lines {
		if strings.HasPrefix(line.text, "Dana, ") {
			personalized = true
		}
	}
	assert.True(t, personalized)
}
