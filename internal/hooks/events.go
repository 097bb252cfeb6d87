// Package hooks maps lifecycle events from the external event source to
// speak requests. It only turns event payloads into short plain-text
// announcements; transcript analysis and summarization happen upstream and
// arrive here as ready text if at all.
package hooks

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/InstruktAI/ClaudeConfig/internal/debounce"
)

// Event identifies the lifecycle notification that fired.
type Event string

// Supported events.
const (
	EventNotification Event = "Notification"
	EventSessionStart Event = "SessionStart"
	EventSessionEnd   Event = "SessionEnd"
	EventStop         Event = "Stop"
	EventSubagentStop Event = "SubagentStop"
)

// Events lists the supported event names for CLI validation.
func Events() []string {
	return []string{
		string(EventNotification),
		string(EventSessionStart),
		string(EventSessionEnd),
		string(EventStop),
		string(EventSubagentStop),
	}
}

// ParseEvent validates an event name.
func ParseEvent(name string) (Event, error) {
	for _, e := range Events() {
		if e == name {
			return Event(e), nil
		}
	}
	return "", fmt.Errorf("unknown event type %q", name)
}

// Payload is the JSON document the event source writes to the hook's stdin.
// Unknown fields are ignored.
type Payload struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	Reason    string `json:"reason"`
}

// ParsePayload decodes a hook payload from r.
func ParsePayload(r io.Reader) (Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("decoding hook payload: %w", err)
	}
	return p, nil
}

// idleNotification is noise from the event source, not something to speak.
const idleNotification = "Claude is waiting for your input"

// Speaker dispatches one announcement; wired to the speech dispatcher.
type Speaker func(text, hookName, sessionID string) error

// Handler turns events into announcements.
type Handler struct {
	speak        Speaker
	guard        *debounce.Guard
	skip         map[Event]bool
	engineerName string
	log          *log.Logger
	rand         *rand.Rand
}

// NewHandler creates an event handler. skipCSV is the comma-separated list
// of event names to silence (TTS_SKIP_HOOK_EVENTS).
func NewHandler(speak Speaker, guard *debounce.Guard, skipCSV, engineerName string, logger *log.Logger) *Handler {
	skip := make(map[Event]bool)
	for _, name := range strings.Split(skipCSV, ",") {
		if name = strings.TrimSpace(name); name != "" {
			skip[Event(name)] = true
		}
	}
	return &Handler{
		speak:        speak,
		guard:        guard,
		skip:         skip,
		engineerName: engineerName,
		log:          logger,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Handle announces one event. Failures are logged, never fatal: a broken
// announcement must not disturb the caller's primary workflow.
func (h *Handler) Handle(event Event, p Payload) error {
	if h.skip[event] {
		h.log.Debug("event silenced by skip list", "event", event)
		return nil
	}

	switch event {
	case EventNotification:
		return h.handleNotification(p)
	case EventSessionStart:
		return h.handleSessionStart(p)
	case EventSessionEnd:
		return h.handleSessionEnd(p)
	case EventStop:
		return h.handleStop(p)
	case EventSubagentStop:
		return h.handleSubagentStop(p)
	default:
		return fmt.Errorf("unknown event type %q", event)
	}
}

func (h *Handler) handleNotification(p Payload) error {
	if p.Message == idleNotification {
		return nil
	}

	msg := h.pick(notificationMessages)
	// Half the time, address the engineer by name when configured.
	if name := strings.TrimSpace(h.engineerName); name != "" && h.rand.Float64() < 0.5 {
		msg = fmt.Sprintf("%s, %s", name, strings.ToLower(msg))
	}
	return h.speak(msg, "notification", p.SessionID)
}

func (h *Handler) handleSessionStart(p Payload) error {
	msg, ok := sessionStartMessages[p.Source]
	if !ok {
		msg = "Session started"
	}
	return h.speak(msg, "session_start", p.SessionID)
}

func (h *Handler) handleSessionEnd(p Payload) error {
	msg, ok := sessionEndMessages[p.Reason]
	if !ok {
		msg = "Session ended"
	}
	return h.speak(msg, "session_end", p.SessionID)
}

// handleStop announces the end of a response. When the event source sends
// a prepared summary in Message it is spoken first.
func (h *Handler) handleStop(p Payload) error {
	if summary := strings.TrimSpace(p.Message); summary != "" {
		if err := h.speak(summary, "stop", p.SessionID); err != nil {
			h.log.Warn("summary announcement failed", "err", err)
		}
	}
	return h.speak(h.pick(completionMessages), "stop", p.SessionID)
}

// handleSubagentStop is debounced per session: parallel subagents finishing
// together should produce one announcement, not a chorus.
func (h *Handler) handleSubagentStop(p Payload) error {
	scope := p.SessionID
	if scope == "" {
		scope = "global"
	}
	if h.guard.ShouldSuppress(scope) {
		h.log.Debug("subagent announcement debounced", "session", p.SessionID)
		return nil
	}

	msg := strings.TrimSpace(p.Message)
	if msg == "" {
		msg = h.pick(startupMessages)
	}
	if err := h.speak(msg, "subagent_stop", p.SessionID); err != nil {
		return err
	}
	// Mark only after the announcement is actually queued.
	if err := h.guard.Mark(scope); err != nil {
		h.log.Warn("updating debounce record", "err", err)
	}
	return nil
}

func (h *Handler) pick(msgs []string) string {
	return msgs[h.rand.Intn(len(msgs))]
}
