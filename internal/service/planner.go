package service

import (
	"errors"
	"fmt"
	"strings"

	"pool_automation/internal/models"
)

// Attribute names a controllable feature of the panel.
type Attribute string

const (
	AttributeLights     Attribute = "lights"
	AttributePoolMode   Attribute = "poolmode"
	AttributeFilterMode Attribute = "filtermode"
	AttributeHeaterAuto Attribute = "heater-auto"
)

var (
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrInvalidState     = errors.New("invalid state for attribute")
)

// The panel only offers "advance by one" for the 3-valued attributes.
var (
	poolModeCycle = map[models.PoolMode]models.PoolMode{
		models.PoolModePool:      models.PoolModeSpa,
		models.PoolModeSpa:       models.PoolModeSpillover,
		models.PoolModeSpillover: models.PoolModePool,
	}
	filterModeCycle = map[models.FilterMode]models.FilterMode{
		models.FilterModeHigh: models.FilterModeLow,
		models.FilterModeLow:  models.FilterModeOff,
		models.FilterModeOff:  models.FilterModeHigh,
	}
)

// PressPlan is the outcome of planning a command: which button to press, how
// many times, and the state the panel is expected to end up in.
type PressPlan struct {
	Attribute Attribute `json:"attribute"`
	Key       string    `json:"key,omitempty"` // empty when nothing needs pressing
	Presses   int       `json:"presses"`
	Message   string    `json:"message,omitempty"`

	apply func(st *models.DeviceState)
}

// NoOp reports whether the requested state is already current.
func (p PressPlan) NoOp() bool { return p.Key == "" }

// Apply writes the intended final state into st.
func (p PressPlan) Apply(st *models.DeviceState) {
	if p.apply != nil {
		p.apply(st)
	}
}

type attributePlanner func(st models.DeviceState, value string) (PressPlan, error)

var planners = map[Attribute]attributePlanner{
	AttributeLights:     planLights,
	AttributeHeaterAuto: planHeaterAuto,
	AttributePoolMode:   planPoolMode,
	AttributeFilterMode: planFilterMode,
}

// Plan computes the key presses needed to move st to the state cmd asks for.
// It does not modify st.
func Plan(st models.DeviceState, cmd Command) (PressPlan, error) {
	attr := Attribute(strings.ToLower(strings.TrimSpace(cmd.Attribute)))
	planner, ok := planners[attr]
	if !ok {
		return PressPlan{}, fmt.Errorf("%w: %q", ErrUnknownAttribute, cmd.Attribute)
	}
	plan, err := planner(st, cmd.State)
	if err != nil {
		return PressPlan{}, err
	}
	plan.Attribute = attr
	return plan, nil
}

func planLights(st models.DeviceState, value string) (PressPlan, error) {
	want, err := parseOnOff(AttributeLights, value)
	if err != nil {
		return PressPlan{}, err
	}
	return planToggle("Lights", models.ButtonLights, st.LightsOn(), want, func(st *models.DeviceState) {
		st.SetLightsOn(want)
	}), nil
}

// An unknown heater auto flag is treated as off.
func planHeaterAuto(st models.DeviceState, value string) (PressPlan, error) {
	want, err := parseOnOff(AttributeHeaterAuto, value)
	if err != nil {
		return PressPlan{}, err
	}
	return planToggle("Heater-Auto", models.ButtonHeaterAuto, st.HeaterAuto(), want, func(st *models.DeviceState) {
		st.IsHeaterAutoControl = &want
	}), nil
}

func planPoolMode(st models.DeviceState, value string) (PressPlan, error) {
	want, err := models.ParsePoolMode(value)
	if err != nil {
		return PressPlan{}, fmt.Errorf("%w: %s %q", ErrInvalidState, AttributePoolMode, value)
	}
	if _, ok := poolModeCycle[want]; !ok {
		return PressPlan{}, fmt.Errorf("%w: %s cannot be set to %s", ErrInvalidState, AttributePoolMode, want)
	}
	path := cyclePath(poolModeCycle, st.Mode(), want)
	return cyclePlan("Mode", models.ButtonPoolMode, st.Mode(), path, func(st *models.DeviceState) {
		st.SetMode(want)
	}), nil
}

func planFilterMode(st models.DeviceState, value string) (PressPlan, error) {
	want, err := models.ParseFilterMode(value)
	if err != nil {
		return PressPlan{}, fmt.Errorf("%w: %s %q", ErrInvalidState, AttributeFilterMode, value)
	}
	path := cyclePath(filterModeCycle, st.FilterMode(), want)
	return cyclePlan("Speed", models.ButtonFilterMode, st.FilterMode(), path, func(st *models.DeviceState) {
		st.SetFilterMode(want)
	}), nil
}

func planToggle(label, key string, current, want bool, apply func(*models.DeviceState)) PressPlan {
	if current == want {
		return PressPlan{}
	}
	return PressPlan{
		Key:     key,
		Presses: 1,
		Message: fmt.Sprintf("%s: %s -> %s", label, onOff(current), onOff(want)),
		apply:   apply,
	}
}

// cyclePath returns the modes visited when pressing from current until target.
// A current mode outside the cycle (pool mode Off) reaches any target in one press.
func cyclePath[M comparable](cycle map[M]M, current, target M) []M {
	if current == target {
		return nil
	}
	next, ok := cycle[current]
	if !ok || next == target {
		return []M{target}
	}
	return []M{next, target}
}

func cyclePlan[M fmt.Stringer](label, key string, current M, path []M, apply func(*models.DeviceState)) PressPlan {
	if len(path) == 0 {
		return PressPlan{}
	}
	steps := []string{current.String()}
	for _, m := range path {
		steps = append(steps, m.String())
	}
	return PressPlan{
		Key:     key,
		Presses: len(path),
		Message: label + ": " + strings.Join(steps, " -> "),
		apply:   apply,
	}
}

func parseOnOff(attr Attribute, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s %q", ErrInvalidState, attr, value)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
