package handlers

import (
	"html"
	"strings"
	"time"

	"pool_automation/internal/models"
)

// PoolStatus is the client view of the device state.
type PoolStatus struct {
	PoolMode            string                           `json:"pool_mode" example:"pool"`
	FilterMode          string                           `json:"filter_mode" example:"high"`
	AirTemperature      float64                          `json:"air_temperature" example:"71"`
	PoolTemperature     float64                          `json:"pool_temperature" example:"84"`
	PoolTemperatureAsOf *time.Time                       `json:"pool_temperature_as_of"`
	SpaTemperature      float64                          `json:"spa_temperature" example:"101"`
	SpaTemperatureAsOf  *time.Time                       `json:"spa_temperature_as_of"`
	Lights              string                           `json:"lights" example:"off"`
	Heater              string                           `json:"heater" example:"on"`
	HeaterAuto          string                           `json:"heater_auto" example:"auto"` // auto | off | unknown
	IsDisabled          bool                             `json:"is_disabled"`
	DisplayLineOne      string                           `json:"display_line_one" example:"Pool Temp 84°F"`
	DisplayLineTwo      string                           `json:"display_line_two"`
	Message             string                           `json:"message,omitempty"`
	Keys                map[models.KeyID]models.LedState `json:"keys" swaggertype:"object"`
	UpdatedAt           time.Time                        `json:"updated_at"`
}

// CommandRequest is the body of POST /api/v1/pool.
type CommandRequest struct {
	// lights | poolmode | filtermode | heater-auto
	Attribute string `json:"attribute" binding:"required" example:"poolmode"`
	// on/off, pool/spa/spillover or off/low/high
	State string `json:"state" binding:"required" example:"spa"`
}

func newPoolStatus(st models.DeviceState) PoolStatus {
	return PoolStatus{
		PoolMode:            strings.ToLower(st.Mode().String()),
		FilterMode:          strings.ToLower(st.FilterMode().String()),
		AirTemperature:      st.AirTemperature,
		PoolTemperature:     st.PoolTemperature,
		PoolTemperatureAsOf: st.PoolTemperatureAsOf,
		SpaTemperature:      st.SpaTemperature,
		SpaTemperatureAsOf:  st.SpaTemperatureAsOf,
		Lights:              onOff(st.LightsOn()),
		Heater:              onOff(st.HeaterOn()),
		HeaterAuto:          heaterAutoLabel(st.IsHeaterAutoControl),
		IsDisabled:          st.IsDisabled,
		DisplayLineOne:      html.UnescapeString(st.DisplayLineOne),
		DisplayLineTwo:      html.UnescapeString(st.DisplayLineTwo),
		Message:             html.UnescapeString(st.Message),
		Keys:                st.KeyStates,
		UpdatedAt:           st.UpdatedAt,
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func heaterAutoLabel(auto *bool) string {
	switch {
	case auto == nil:
		return "unknown"
	case *auto:
		return "auto"
	default:
		return "off"
	}
}
