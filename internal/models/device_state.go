package models

import "time"

// DeviceState is the cached snapshot of the panel.
type DeviceState struct {
	ID                  int                `json:"id"`
	KeyStates           map[KeyID]LedState `json:"key_states"`
	PoolTemperature     float64            `json:"pool_temperature"`
	PoolTemperatureAsOf *time.Time         `json:"pool_temperature_as_of,omitempty"`
	SpaTemperature      float64            `json:"spa_temperature"`
	SpaTemperatureAsOf  *time.Time         `json:"spa_temperature_as_of,omitempty"`
	AirTemperature      float64            `json:"air_temperature"`
	IsHeaterAutoControl *bool              `json:"is_heater_auto_control"` // nil until the display reports it
	IsDisabled          bool               `json:"is_disabled"`            // menu locked or service mode
	DisplayLineOne      string             `json:"display_line_one"`
	DisplayLineTwo      string             `json:"display_line_two"`
	Message             string             `json:"message,omitempty"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// NewDeviceState returns an empty state with an allocated key table.
func NewDeviceState() DeviceState {
	return DeviceState{ID: 1, KeyStates: map[KeyID]LedState{}}
}

// KeyState returns the state of key, or def when the key was never reported.
func (s DeviceState) KeyState(key KeyID, def LedState) LedState {
	if state, ok := s.KeyStates[key]; ok {
		return state
	}
	return def
}

// SetKeyState inserts or overwrites the state of key.
func (s *DeviceState) SetKeyState(key KeyID, state LedState) {
	if s.KeyStates == nil {
		s.KeyStates = map[KeyID]LedState{}
	}
	s.KeyStates[key] = state
}

// modeKeys is evaluated in order; the first lit key wins.
var modeKeys = []struct {
	key  KeyID
	mode PoolMode
}{
	{PoolKey, PoolModePool},
	{SpaKey, PoolModeSpa},
	{SpilloverKey, PoolModeSpillover},
}

// Mode derives the operating mode from the mode keys.
func (s DeviceState) Mode() PoolMode {
	for _, mk := range modeKeys {
		if s.KeyState(mk.key, LedOff) == LedOn {
			return mk.mode
		}
	}
	return PoolModeOff
}

// SetMode lights the key for m and darkens the other mode keys.
func (s *DeviceState) SetMode(m PoolMode) {
	for _, mk := range modeKeys {
		state := LedOff
		if mk.mode == m {
			state = LedOn
		}
		s.SetKeyState(mk.key, state)
	}
}

// FilterMode derives the filter speed. The filter key blinks in low speed;
// AUX1 is only lit after automation stepped down from high.
func (s DeviceState) FilterMode() FilterMode {
	filter := s.KeyState(FilterKey, LedOff)
	switch {
	case filter == LedOn:
		return FilterModeHigh
	case filter == LedBlink, s.KeyState(Aux1Key, LedOff) == LedOn:
		return FilterModeLow
	default:
		return FilterModeOff
	}
}

// SetFilterMode writes the key pattern the panel shows for m.
func (s *DeviceState) SetFilterMode(m FilterMode) {
	switch m {
	case FilterModeOff:
		s.SetKeyState(FilterKey, LedOff)
		s.SetKeyState(Aux1Key, LedOff)
	case FilterModeLow:
		s.SetKeyState(FilterKey, LedBlink)
		s.SetKeyState(Aux1Key, LedOn)
	case FilterModeHigh:
		s.SetKeyState(FilterKey, LedOn)
		s.SetKeyState(Aux1Key, LedOff)
	}
}

func (s DeviceState) LightsOn() bool { return s.KeyState(LightsKey, LedOff) == LedOn }

func (s *DeviceState) SetLightsOn(on bool) {
	state := LedOff
	if on {
		state = LedOn
	}
	s.SetKeyState(LightsKey, state)
}

func (s DeviceState) HeaterOn() bool { return s.KeyState(Heater1Key, LedOff) == LedOn }

// HeaterAuto reports the heater auto-control flag, treating unknown as off.
func (s DeviceState) HeaterAuto() bool {
	return s.IsHeaterAutoControl != nil && *s.IsHeaterAutoControl
}

// Clone returns a deep copy safe to hand out of a lock.
func (s DeviceState) Clone() DeviceState {
	out := s
	out.KeyStates = make(map[KeyID]LedState, len(s.KeyStates))
	for k, v := range s.KeyStates {
		out.KeyStates[k] = v
	}
	if s.PoolTemperatureAsOf != nil {
		t := *s.PoolTemperatureAsOf
		out.PoolTemperatureAsOf = &t
	}
	if s.SpaTemperatureAsOf != nil {
		t := *s.SpaTemperatureAsOf
		out.SpaTemperatureAsOf = &t
	}
	if s.IsHeaterAutoControl != nil {
		b := *s.IsHeaterAutoControl
		out.IsHeaterAutoControl = &b
	}
	return out
}
