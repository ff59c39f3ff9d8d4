package webstr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pool_automation/internal/models"
)

const (
	bodyOpen      = "<body>"
	bodyClose     = "</body>"
	lineSeparator = "xxx"
	degreeEntity  = "&#176"
)

// ErrMalformedResponse is returned when the status page lacks the body marker
// or the three xxx-separated segments.
var ErrMalformedResponse = errors.New("malformed webstr response")

// labelPair is a two-line display message matched exactly, ignoring case.
type labelPair [2]string

var (
	menuConfigLocked  = labelPair{"Configuration", "Menu-Locked"}
	serviceModeLocked = labelPair{"Service Mode", "System Locked"}
	heaterAutoControl = labelPair{"Heater1", "Auto Control"}
	heaterManualOff   = labelPair{"Heater1", "Manual Off"}
)

func (p labelPair) matches(lineOne, lineTwo string) bool {
	return strings.EqualFold(lineOne, p[0]) && strings.EqualFold(lineTwo, p[1])
}

// temperatureLabels select which reading line one carries, e.g. "Pool Temp 80&#176F".
var temperatureLabels = []struct {
	label string
	field func(*models.PollResponse) **int
}{
	{"Air Temp", func(r *models.PollResponse) **int { return &r.AirTemp }},
	{"Pool Temp", func(r *models.PollResponse) **int { return &r.PoolTemp }},
	{"Spa Temp", func(r *models.PollResponse) **int { return &r.SpaTemp }},
}

// ParseResponse splits a status page into display lines and the raw LED
// segment, and interprets the display text.
func ParseResponse(body string) (models.PollResponse, error) {
	_, content, ok := strings.Cut(body, bodyOpen)
	if !ok {
		return models.PollResponse{}, fmt.Errorf("%w: missing %s", ErrMalformedResponse, bodyOpen)
	}
	// the panel firmware does not always send the closing tag
	content, _, _ = strings.Cut(content, bodyClose)

	segments := strings.Split(content, lineSeparator)
	if len(segments) < 3 {
		return models.PollResponse{}, fmt.Errorf("%w: want 3 segments, got %d", ErrMalformedResponse, len(segments))
	}

	resp := models.PollResponse{
		LineOne: strings.TrimSpace(segments[0]),
		LineTwo: strings.TrimSpace(segments[1]),
		RawLeds: strings.TrimSpace(segments[2]),
	}

	switch {
	case menuConfigLocked.matches(resp.LineOne, resp.LineTwo):
		resp.IsConfigLocked = true
	case serviceModeLocked.matches(resp.LineOne, resp.LineTwo):
		resp.IsConfigLocked = true
		resp.IsServiceMode = true
	}

	switch {
	case heaterAutoControl.matches(resp.LineOne, resp.LineTwo):
		resp.IsHeaterAutoControl = boolPtr(true)
	case heaterManualOff.matches(resp.LineOne, resp.LineTwo):
		resp.IsHeaterAutoControl = boolPtr(false)
	}

	for _, tl := range temperatureLabels {
		if !containsFold(resp.LineOne, tl.label) {
			continue
		}
		if v, ok := parseTemperature(resp.LineOne); ok {
			*tl.field(&resp) = &v
		}
	}

	return resp, nil
}

// parseTemperature reads the third token of e.g. "Spa Temp 101&#176F".
func parseTemperature(line string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, false
	}
	value, _, _ := strings.Cut(fields[2], degreeEntity)
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func boolPtr(b bool) *bool { return &b }
