package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.PollsTotal.WithLabelValues("ok").Inc()

	if got := testutil.ToFloat64(a.PollsTotal.WithLabelValues("ok")); got != 1 {
		t.Fatalf("a polls_total = %v; want 1", got)
	}
	if got := testutil.ToFloat64(b.PollsTotal.WithLabelValues("ok")); got != 0 {
		t.Fatalf("b polls_total = %v; want 0", got)
	}
}

func TestHandler_ExposesGauges(t *testing.T) {
	m := New()
	m.WaterTemperature.WithLabelValues("pool").Set(84)
	m.Disabled.Set(BoolGauge(true))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body, _ := io.ReadAll(w.Body)
	for _, want := range []string{
		`aquaconnect_water_temperature_fahrenheit{body="pool"} 84`,
		`aquaconnect_disabled 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
