package models

import (
	"encoding/json"
	"time"
)

// QueuedOperation is a mutating request that could not be delivered to the
// remote proxy and is parked for retry. Body is the original JSON payload,
// replayed verbatim on drain. Attempts and LastError exist for diagnostics
// only; entries are never expired automatically.
type QueuedOperation struct {
	QueueID    string          `json:"queueId"`
	Resource   string          `json:"resource"`
	Method     string          `json:"method"`
	Body       json.RawMessage `json:"body"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
	Attempts   int             `json:"attempts"`
	LastError  string          `json:"lastError,omitempty"`
}
