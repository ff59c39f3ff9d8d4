package device

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pool_automation/internal/models"
	"pool_automation/internal/webstr"
)

func newSimulatorClient(t *testing.T) (*Simulator, *Client) {
	t.Helper()
	sim := NewSimulator()
	srv := httptest.NewServer(sim)
	t.Cleanup(srv.Close)
	return sim, NewClient(srv.URL, "", time.Second)
}

func decodeStatus(t *testing.T, c *Client) (models.PollResponse, models.DeviceState) {
	t.Helper()
	body, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	resp, err := webstr.ParseResponse(body)
	if err != nil {
		t.Fatalf("ParseResponse(%q): %v", body, err)
	}
	return resp, models.DeviceState{KeyStates: webstr.Decode(resp.RawLeds)}
}

func TestSimulator_StatusDecodesToInitialModes(t *testing.T) {
	_, c := newSimulatorClient(t)

	_, st := decodeStatus(t, c)
	if st.Mode() != models.PoolModePool {
		t.Fatalf("mode: got %s, want Pool", st.Mode())
	}
	if st.FilterMode() != models.FilterModeHigh {
		t.Fatalf("filter: got %s, want High", st.FilterMode())
	}
	if st.LightsOn() {
		t.Fatalf("expected lights off")
	}
}

func TestSimulator_KeyCycles(t *testing.T) {
	sim, c := newSimulatorClient(t)
	ctx := context.Background()

	wantModes := []models.PoolMode{models.PoolModeSpa, models.PoolModeSpillover, models.PoolModePool}
	for _, want := range wantModes {
		if err := c.PressKey(ctx, models.ButtonPoolMode); err != nil {
			t.Fatalf("PressKey: %v", err)
		}
		if _, st := decodeStatus(t, c); st.Mode() != want {
			t.Fatalf("mode: got %s, want %s", st.Mode(), want)
		}
	}

	wantFilters := []models.FilterMode{models.FilterModeLow, models.FilterModeOff, models.FilterModeHigh}
	for _, want := range wantFilters {
		if err := c.PressKey(ctx, models.ButtonFilterMode); err != nil {
			t.Fatalf("PressKey: %v", err)
		}
		if _, st := decodeStatus(t, c); st.FilterMode() != want {
			t.Fatalf("filter: got %s, want %s", st.FilterMode(), want)
		}
	}

	if err := c.PressKey(ctx, models.ButtonLights); err != nil {
		t.Fatalf("PressKey: %v", err)
	}
	if _, st := decodeStatus(t, c); !st.LightsOn() {
		t.Fatalf("expected lights on after press")
	}

	if got := len(sim.Presses()); got != 7 {
		t.Fatalf("expected 7 presses recorded, got %d", got)
	}
}

func TestSimulator_DisplayRotation(t *testing.T) {
	_, c := newSimulatorClient(t)

	var sawPool, sawAir, sawHeater bool
	for i := 0; i < 3; i++ {
		resp, _ := decodeStatus(t, c)
		if resp.PoolTemp != nil {
			sawPool = true
		}
		if resp.AirTemp != nil && *resp.AirTemp == int(AmbientF) {
			sawAir = true
		}
		if resp.IsHeaterAutoControl != nil && *resp.IsHeaterAutoControl {
			sawHeater = true
		}
	}
	if !sawPool || !sawAir || !sawHeater {
		t.Fatalf("expected pool, air and heater screens; got pool=%v air=%v heater=%v", sawPool, sawAir, sawHeater)
	}
}

func TestSimulator_LockedIgnoresPresses(t *testing.T) {
	sim, c := newSimulatorClient(t)
	sim.SetLocked(true)

	if err := c.PressKey(context.Background(), models.ButtonPoolMode); err != nil {
		t.Fatalf("PressKey: %v", err)
	}
	resp, st := decodeStatus(t, c)
	if !resp.IsConfigLocked {
		t.Fatalf("expected locked screen, got %q/%q", resp.LineOne, resp.LineTwo)
	}
	if st.Mode() != models.PoolModePool {
		t.Fatalf("locked panel changed mode to %s", st.Mode())
	}
}

func TestSimulator_RejectsGet(t *testing.T) {
	sim := NewSimulator()
	w := httptest.NewRecorder()
	sim.ServeHTTP(w, httptest.NewRequest(http.MethodGet, DefaultStatusPath, nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestSimulator_SpaHeatsTowardSetpoint(t *testing.T) {
	sim := NewSimulator()
	clock := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	sim.now = func() time.Time { return clock }

	sim.press(models.ButtonPoolMode) // Pool -> Spa
	_ = sim.statusPage()
	clock = clock.Add(10 * time.Minute)
	page := sim.statusPage()
	for i := 0; i < 2 && !strings.Contains(page, "Spa Temp"); i++ {
		page = sim.statusPage()
	}

	resp, err := webstr.ParseResponse(page)
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if resp.SpaTemp == nil || *resp.SpaTemp != int(SpaSetpointF) {
		t.Fatalf("expected spa at setpoint, got %v (%q)", resp.SpaTemp, resp.LineOne)
	}
}
