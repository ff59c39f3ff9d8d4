// Package metrics exposes the gateway's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aquaconnect"

// Metrics holds the collectors and the registry they are registered with.
type Metrics struct {
	registry *prometheus.Registry

	WaterTemperature     *prometheus.GaugeVec
	AirTemperature       prometheus.Gauge
	ConnectionFailure    prometheus.Gauge
	LastRefreshTimestamp prometheus.Gauge
	PollsTotal           *prometheus.CounterVec
	CommandsTotal        *prometheus.CounterVec
	KeyPressesTotal      *prometheus.CounterVec
	Disabled             prometheus.Gauge
	KeyState             *prometheus.GaugeVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		WaterTemperature: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "water_temperature_fahrenheit",
				Help:      "Last water temperature read from the panel display",
			},
			[]string{"body"},
		),
		AirTemperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "air_temperature_fahrenheit",
			Help:      "Last air temperature read from the panel display",
		}),
		ConnectionFailure: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connection_failure",
			Help:      "1 if the last poll failed, 0 if it succeeded",
		}),
		LastRefreshTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix timestamp of the last successful poll",
		}),
		PollsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "polls_total",
				Help:      "Status polls by result",
			},
			[]string{"result"},
		),
		CommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Control commands by attribute and result",
			},
			[]string{"attribute", "result"},
		),
		KeyPressesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "key_presses_total",
				Help:      "Simulated key presses sent to the panel",
			},
			[]string{"key"},
		),
		Disabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "disabled",
			Help:      "1 while the panel reports a locked menu or service mode",
		}),
		KeyState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "key_state",
				Help:      "LED state of named keys (0=no key, 1=off, 2=on, 3=blink)",
			},
			[]string{"key", "name"},
		),
	}

	m.registry.MustRegister(
		m.WaterTemperature,
		m.AirTemperature,
		m.ConnectionFailure,
		m.LastRefreshTimestamp,
		m.PollsTotal,
		m.CommandsTotal,
		m.KeyPressesTotal,
		m.Disabled,
		m.KeyState,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// BoolGauge converts b to 1 or 0.
func BoolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
