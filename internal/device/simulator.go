package device

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"pool_automation/internal/models"
	"pool_automation/internal/webstr"
)

// ----------- Simulation constants -----------
const (
	AmbientF        = 78.0  // air temperature °F
	SpaSetpointF    = 102.0 // heater target in spa mode °F
	HeatFPerSec     = 0.05  // °F per second while the heater runs
	DriftFPerSec    = 0.01  // °F per second drift toward ambient
	simulatedLedLen = 24    // nibbles in a status page (12 characters)
)

var (
	simPoolCycle   = map[models.PoolMode]models.PoolMode{models.PoolModeOff: models.PoolModePool, models.PoolModePool: models.PoolModeSpa, models.PoolModeSpa: models.PoolModeSpillover, models.PoolModeSpillover: models.PoolModePool}
	simFilterCycle = map[models.FilterMode]models.FilterMode{models.FilterModeHigh: models.FilterModeLow, models.FilterModeLow: models.FilterModeOff, models.FilterModeOff: models.FilterModeHigh}
)

// Simulator emulates the panel's status page and key handling. It serves the
// same wire format as the real device, which makes it usable both in tests
// and as a stand-in backend during development.
type Simulator struct {
	mu         sync.Mutex
	mode       models.PoolMode
	filter     models.FilterMode
	lights     bool
	heaterAuto bool
	locked     bool
	poolTempF  float64
	spaTempF   float64
	screen     int
	updatedAt  time.Time
	presses    []string
	now        func() time.Time
}

// NewSimulator returns a panel in pool mode with the filter on high.
func NewSimulator() *Simulator {
	return &Simulator{
		mode:       models.PoolModePool,
		filter:     models.FilterModeHigh,
		heaterAuto: true,
		poolTempF:  82,
		spaTempF:   82,
		now:        time.Now,
	}
}

// SetLocked puts the simulated panel into or out of the locked menu.
func (s *Simulator) SetLocked(locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = locked
}

// Presses returns the key codes received so far.
func (s *Simulator) Presses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.presses...)
}

// Modes returns the simulated pool and filter mode.
func (s *Simulator) Modes() (models.PoolMode, models.FilterMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode, s.filter
}

func (s *Simulator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if key, ok := parseKeyRequest(string(body)); ok {
		s.press(key)
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	_, _ = io.WriteString(w, s.statusPage())
}

func parseKeyRequest(body string) (string, bool) {
	rest, ok := strings.CutPrefix(body, "KeyId=")
	if !ok {
		return "", false
	}
	key, _, _ := strings.Cut(rest, "&")
	return key, key != ""
}

func (s *Simulator) press(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.presses = append(s.presses, key)
	if s.locked {
		return
	}
	switch key {
	case models.ButtonPoolMode:
		s.mode = simPoolCycle[s.mode]
	case models.ButtonFilterMode:
		s.filter = simFilterCycle[s.filter]
	case models.ButtonLights:
		s.lights = !s.lights
	case models.ButtonHeaterAuto:
		s.heaterAuto = !s.heaterAuto
	}
}

// statusPage advances the simulation and renders the next display screen.
func (s *Simulator) statusPage() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.advance(s.now())
	lineOne, lineTwo := s.nextScreen()
	return fmt.Sprintf("<html><body>%sxxx%sxxx%s</body></html>", lineOne, lineTwo, webstr.Encode(s.ledStates()))
}

func (s *Simulator) advance(now time.Time) {
	if s.updatedAt.IsZero() {
		s.updatedAt = now
		return
	}
	elapsed := now.Sub(s.updatedAt).Seconds()
	s.updatedAt = now

	if s.heaterRunning() {
		s.spaTempF = minFloat(s.spaTempF+HeatFPerSec*elapsed, SpaSetpointF)
	} else {
		s.spaTempF = driftToward(s.spaTempF, AmbientF, DriftFPerSec*elapsed)
	}
	s.poolTempF = driftToward(s.poolTempF, AmbientF, DriftFPerSec*elapsed)
}

func (s *Simulator) heaterRunning() bool {
	return s.heaterAuto && s.mode == models.PoolModeSpa && s.filter != models.FilterModeOff
}

// nextScreen rotates through the lines the panel cycles on its display.
func (s *Simulator) nextScreen() (string, string) {
	if s.locked {
		return "Configuration", "Menu-Locked"
	}
	s.screen = (s.screen + 1) % 3
	switch s.screen {
	case 0:
		return fmt.Sprintf("Air Temp %d&#176F", int(AmbientF)), ""
	case 1:
		if s.mode == models.PoolModeSpa {
			return fmt.Sprintf("Spa Temp %d&#176F", int(s.spaTempF)), ""
		}
		return fmt.Sprintf("Pool Temp %d&#176F", int(s.poolTempF)), ""
	default:
		if s.heaterAuto {
			return "Heater1", "Auto Control"
		}
		return "Heater1", "Manual Off"
	}
}

func (s *Simulator) ledStates() []models.LedState {
	st := models.DeviceState{KeyStates: map[models.KeyID]models.LedState{}}
	st.SetMode(s.mode)
	st.SetFilterMode(s.filter)
	st.SetLightsOn(s.lights)
	heater := models.LedOff
	if s.heaterRunning() {
		heater = models.LedOn
	}
	st.SetKeyState(models.Heater1Key, heater)
	st.SetKeyState(models.Valve3Key, models.LedOff)
	st.SetKeyState(models.Aux2Key, models.LedOff)

	out := make([]models.LedState, simulatedLedLen)
	for i := range out {
		out[i] = st.KeyState(models.KeyAt(i), models.LedNoKey)
	}
	return out
}

func driftToward(v, target, step float64) float64 {
	if v > target {
		return maxFloat(v-step, target)
	}
	return minFloat(v+step, target)
}

// helpers
func maxFloat(a, b float64) float64 {
	if a >= b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a <= b {
		return a
	}
	return b
}
