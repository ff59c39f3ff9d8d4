package models

import (
	"fmt"
	"strings"
)

// LedState is the display state of a single panel key.
type LedState int

const (
	LedNoKey LedState = iota
	LedOff
	LedOn
	LedBlink
)

var ledStateNames = map[LedState]string{
	LedNoKey: "NO_KEY",
	LedOff:   "OFF",
	LedOn:    "ON",
	LedBlink: "BLINK",
}

func (s LedState) String() string {
	if name, ok := ledStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("LedState(%d)", int(s))
}

// MarshalText encodes the state as its NO_KEY/OFF/ON/BLINK token.
func (s LedState) MarshalText() ([]byte, error) {
	name, ok := ledStateNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown led state %d", int(s))
	}
	return []byte(name), nil
}

func (s *LedState) UnmarshalText(b []byte) error {
	token := strings.ToUpper(strings.TrimSpace(string(b)))
	for state, name := range ledStateNames {
		if name == token {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown led state %q", string(b))
}

// KeyID identifies a key slot by its decode position, e.g. "Key_03".
type KeyID string

// KeyAt returns the identifier of the key decoded at position idx.
func KeyAt(idx int) KeyID {
	return KeyID(fmt.Sprintf("Key_%02d", idx))
}

// Keys with a known meaning on the panel. Everything else is passthrough.
const (
	PoolKey      KeyID = "Key_00"
	SpaKey       KeyID = "Key_01"
	SpilloverKey KeyID = "Key_02"
	FilterKey    KeyID = "Key_03"
	LightsKey    KeyID = "Key_04"
	Heater1Key   KeyID = "Key_06"
	Valve3Key    KeyID = "Key_07"
	Aux1Key      KeyID = "Key_09"
	Aux2Key      KeyID = "Key_10"
)

// KeyLegend maps known keys to the label printed on the panel.
func KeyLegend() map[KeyID]string {
	return map[KeyID]string{
		PoolKey:      "POOL",
		SpaKey:       "SPA",
		SpilloverKey: "SPILLOVER",
		FilterKey:    "FILTER",
		LightsKey:    "LIGHTS",
		Heater1Key:   "HEATER1",
		Valve3Key:    "VALVE3",
		Aux1Key:      "AUX1",
		Aux2Key:      "AUX2",
	}
}

// Codes sent as KeyId=NN to press a panel button. They are button numbers,
// unrelated to the LED positions above.
const (
	ButtonPoolMode   = "07"
	ButtonFilterMode = "08"
	ButtonLights     = "09"
	ButtonHeaterAuto = "13"
)
