package web

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sweeney/plant-monitor/internal/health"
	"github.com/sweeney/plant-monitor/internal/status"
)

// Metrics exposes the snapshot as Prometheus collectors on a private
// registry. The loop calls Observe once per tick.
type Metrics struct {
	Registry *prometheus.Registry

	moisture    prometheus.Gauge
	light       prometheus.Gauge
	temperature prometheus.Gauge
	humidity    prometheus.Gauge
	atRisk      prometheus.Gauge
	pumpOn      prometheus.Gauge
	ticks       prometheus.Counter
	readErrors  *prometheus.CounterVec

	lastCounts status.Counts
}

// NewMetrics creates the collectors and registers them.
func NewMetrics() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}

	gauge := func(name, help string) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "plant", Name: name, Help: help,
		})
		m.Registry.MustRegister(g)
		return g
	}

	m.moisture = gauge("moisture_percent", "Soil moisture percentage.")
	m.light = gauge("light_percent", "Ambient light percentage of full scale.")
	m.temperature = gauge("temperature_celsius", "Air temperature in degrees Celsius.")
	m.humidity = gauge("humidity_percent", "Relative humidity percentage.")
	m.atRisk = gauge("health_at_risk", "1 when the plant is classified At Risk, 0 when Good.")
	m.pumpOn = gauge("pump_on", "1 while the water pump relay is energized.")

	m.ticks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "plant", Name: "ticks_total", Help: "Completed sampling ticks.",
	})
	m.Registry.MustRegister(m.ticks)

	m.readErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "plant", Name: "sensor_read_errors_total", Help: "Failed sensor reads.",
	}, []string{"sensor"})
	m.Registry.MustRegister(m.readErrors)

	return m
}

// Observe records one tick's snapshot.
func (m *Metrics) Observe(snap status.Snapshot) {
	m.moisture.Set(snap.Moisture)
	m.light.Set(snap.Light)
	m.temperature.Set(snap.Temperature)
	m.humidity.Set(snap.Humidity)

	if snap.Health.Status == health.StatusAtRisk {
		m.atRisk.Set(1)
	} else {
		m.atRisk.Set(0)
	}
	if snap.PumpOn {
		m.pumpOn.Set(1)
	} else {
		m.pumpOn.Set(0)
	}

	// Counters carry totals in the snapshot; add only the delta.
	m.ticks.Add(float64(snap.Counts.Ticks - m.lastCounts.Ticks))
	m.readErrors.WithLabelValues("moisture").Add(float64(snap.Counts.MoistureErrors - m.lastCounts.MoistureErrors))
	m.readErrors.WithLabelValues("light").Add(float64(snap.Counts.LightErrors - m.lastCounts.LightErrors))
	m.readErrors.WithLabelValues("climate").Add(float64(snap.Counts.ClimateErrors - m.lastCounts.ClimateErrors))
	m.lastCounts = snap.Counts
}
