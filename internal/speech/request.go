package speech

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Request is one speak request. Immutable once dispatched: the dispatcher
// fills the generated fields and hands a copy to exactly one worker.
type Request struct {
	// Text to speak. Must be non-empty.
	Text string

	// HookName labels the calling context, e.g. "tts" or "notification".
	HookName string

	// SessionID correlates the request with the triggering session, when
	// the caller has one.
	SessionID string

	// CorrelationID ties worker logs back to the dispatching hook. Filled
	// with a fresh UUID when the caller leaves it empty.
	CorrelationID string

	// JobID orders the request in the queue directory. A nanosecond
	// timestamp: collision-resistant and monotonic, so lexicographic
	// ticket order is arrival order.
	JobID string
}

// NewJobID generates a queue-ordering job id from the current time.
func NewJobID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

// NewCorrelationID generates a fresh correlation id.
func NewCorrelationID() string {
	return uuid.NewString()
}
