package models

import "time"

// Event types written to the event log.
const (
	EventCommand            = "COMMAND"
	EventCommandFailed      = "COMMAND_FAILED"
	EventModeChange         = "MODE_CHANGE"
	EventFilterChange       = "FILTER_CHANGE"
	EventLocked             = "LOCKED"
	EventUnlocked           = "UNLOCKED"
	EventConnectionLost     = "CONNECTION_LOST"
	EventConnectionRestored = "CONNECTION_RESTORED"
)

// PoolEvent is a single log entry.
type PoolEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // one of the Event* constants
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
