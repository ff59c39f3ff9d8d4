package models

// PollResponse is one parsed status page. It is never persisted.
type PollResponse struct {
	LineOne             string
	LineTwo             string
	RawLeds             string
	IsConfigLocked      bool
	IsServiceMode       bool
	IsHeaterAutoControl *bool
	AirTemp             *int
	PoolTemp            *int
	SpaTemp             *int
}
