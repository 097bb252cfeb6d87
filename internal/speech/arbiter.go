package speech

import (
	"github.com/InstruktAI/ClaudeConfig/internal/arbiter"
)

// NewArbiter builds the configured arbiter discipline for one job. Ticket
// FIFO is the default; the exclusive lock trades fairness for simplicity.
func NewArbiter(cfg Config, jobID string) arbiter.Arbiter {
	if cfg.QueueMode == QueueModeLock {
		return arbiter.NewFileLock(cfg.QueueDir)
	}
	return arbiter.NewTicketQueue(cfg.QueueDir, jobID,
		arbiter.WithPollInterval(cfg.PollInterval),
		arbiter.WithMaxWait(cfg.MaxWait),
	)
}
