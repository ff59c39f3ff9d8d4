package webstr

import (
	"errors"
	"testing"
)

func TestParseResponse_PoolTemperature(t *testing.T) {
	resp, err := ParseResponse("<body>Pool Temp 84&#176F  xxxLine2xxx3456</body>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.LineOne != "Pool Temp 84&#176F" {
		t.Errorf("line one: %q", resp.LineOne)
	}
	if resp.LineTwo != "Line2" {
		t.Errorf("line two: %q", resp.LineTwo)
	}
	if resp.RawLeds != "3456" {
		t.Errorf("raw leds: %q", resp.RawLeds)
	}
	if resp.PoolTemp == nil || *resp.PoolTemp != 84 {
		t.Errorf("pool temp: %v", resp.PoolTemp)
	}
	if resp.AirTemp != nil || resp.SpaTemp != nil {
		t.Errorf("expected no air/spa reading, got %v/%v", resp.AirTemp, resp.SpaTemp)
	}
	if resp.IsHeaterAutoControl != nil {
		t.Errorf("expected heater auto unknown")
	}
	if resp.IsConfigLocked || resp.IsServiceMode {
		t.Errorf("expected unlocked")
	}
}

func TestParseResponse_Temperatures(t *testing.T) {
	tests := []struct {
		name              string
		lineOne           string
		wantAir, wantPool *int
		wantSpa           *int
	}{
		{name: "air", lineOne: "Air Temp 80&#176F", wantAir: intPtr(80)},
		{name: "spa lower case", lineOne: "spa temp 101&#176F", wantSpa: intPtr(101)},
		{name: "negative air", lineOne: "Air Temp -3&#176F", wantAir: intPtr(-3)},
		{name: "label without value", lineOne: "Pool Temp"},
		{name: "label with garbage", lineOne: "Pool Temp --&#176F"},
		{name: "other text", lineOne: "Filter Speed 50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse("<body>" + tt.lineOne + "xxxxxx</body>")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertIntPtr(t, "air", resp.AirTemp, tt.wantAir)
			assertIntPtr(t, "pool", resp.PoolTemp, tt.wantPool)
			assertIntPtr(t, "spa", resp.SpaTemp, tt.wantSpa)
		})
	}
}

func TestParseResponse_DisplayLabels(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		locked     bool
		service    bool
		heaterAuto *bool
	}{
		{name: "menu locked", body: "<body>Configuration xxx Menu-Locked xxxTE</body>", locked: true},
		{name: "service mode", body: "<body>Service Mode xxx System Locked xxxTE</body>", locked: true, service: true},
		{name: "case insensitive", body: "<body>  CONFIGURATION xxxmenu-locked xxxTE", locked: true},
		{name: "heater auto", body: "<body>Heater1xxxAuto Controlxxx</body>", heaterAuto: boolPtr(true)},
		{name: "heater manual off", body: "<body>Heater1xxxManual Offxxx</body>", heaterAuto: boolPtr(false)},
		{name: "partial match is not a match", body: "<body>Heater1xxxAuto Control Onxxx</body>"},
		{name: "swapped lines", body: "<body>Menu-LockedxxxConfigurationxxx</body>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse(tt.body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.IsConfigLocked != tt.locked {
				t.Errorf("locked: got %v, want %v", resp.IsConfigLocked, tt.locked)
			}
			if resp.IsServiceMode != tt.service {
				t.Errorf("service: got %v, want %v", resp.IsServiceMode, tt.service)
			}
			switch {
			case tt.heaterAuto == nil && resp.IsHeaterAutoControl != nil:
				t.Errorf("heater auto: got %v, want unknown", *resp.IsHeaterAutoControl)
			case tt.heaterAuto != nil && resp.IsHeaterAutoControl == nil:
				t.Errorf("heater auto: got unknown, want %v", *tt.heaterAuto)
			case tt.heaterAuto != nil && *resp.IsHeaterAutoControl != *tt.heaterAuto:
				t.Errorf("heater auto: got %v, want %v", *resp.IsHeaterAutoControl, *tt.heaterAuto)
			}
		})
	}
}

func TestParseResponse_Malformed(t *testing.T) {
	for _, body := range []string{
		"",
		"Pool Temp 84xxxLine2xxx3456",
		"<body>Pool Temp 84xxxLine2</body>",
		"<body></body>xxxLine2xxx3456",
	} {
		if _, err := ParseResponse(body); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("%q: expected ErrMalformedResponse, got %v", body, err)
		}
	}
}

func TestParseResponse_ExtraSegmentsIgnored(t *testing.T) {
	resp, err := ParseResponse("<body>Air Temp 71&#176FxxxSaltxxxTECDxxxjunk</body>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.RawLeds != "TECD" {
		t.Fatalf("raw leds: %q", resp.RawLeds)
	}
}

func intPtr(v int) *int { return &v }

func assertIntPtr(t *testing.T, name string, got, want *int) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Errorf("%s: got %d, want none", name, *got)
	case want != nil && got == nil:
		t.Errorf("%s: got none, want %d", name, *want)
	case want != nil && *got != *want:
		t.Errorf("%s: got %d, want %d", name, *got, *want)
	}
}
