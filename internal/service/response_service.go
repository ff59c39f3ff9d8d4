package service

import (
	"time"

	"pool_automation/internal/models"
)

// Command is a requested change of one attribute, e.g. {"poolmode", "spa"}.
type Command struct {
	Attribute string // lights | poolmode | filtermode | heater-auto
	State     string // on/off, pool/spa/spillover, off/low/high
}

// CommandResult reports what a command did to the panel.
type CommandResult struct {
	Plan        PressPlan `json:"plan"`
	PressesSent int       `json:"presses_sent"`
	Disabled    bool      `json:"disabled"` // panel locked; nothing was pressed
}

// KeyReport is the diagnostic decode of a raw LED segment.
type KeyReport struct {
	Results map[models.KeyID]string `json:"results"`
	Keys    map[models.KeyID]string `json:"keys"`
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", or one of the models.Event* types
}
