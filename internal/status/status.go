// Package status provides a thread-safe snapshot tracker for the
// plant-monitor daemon. The loop is the single writer; HTTP handlers, the
// display renderer and MQTT heartbeats read point-in-time copies.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/plant-monitor/internal/health"
)

// Counts tracks loop activity since startup.
type Counts struct {
	Ticks          int
	MoistureErrors int
	LightErrors    int
	ClimateErrors  int
	PumpStarts     int
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	PumpPin     int
	Simulated   bool
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	PlantName     string
	Moisture      float64 // %
	Light         float64 // %
	Temperature   float64 // °C
	Humidity      float64 // %
	Health        health.Result
	PumpOn        bool
	Counts        Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with boot defaults: the given plant name
// and a Good health status.
func NewTracker(plantName string, startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			PlantName: plantName,
			Health:    health.Result{Status: health.StatusGood},
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update replaces the readings, health result and pump state.
// Called from the loop on every tick.
func (t *Tracker) Update(moisture, light, temperature, humidity float64, res health.Result, pumpOn bool, counts Counts) {
	t.mu.Lock()
	t.snap.Moisture = moisture
	t.snap.Light = light
	t.snap.Temperature = temperature
	t.snap.Humidity = humidity
	t.snap.Health = res
	t.snap.PumpOn = pumpOn
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
