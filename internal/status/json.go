package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for MQTT status events.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Plant         string       `json:"plant"`
	Readings      ReadingsJSON `json:"readings"`
	Health        HealthJSON   `json:"health"`
	Pump          string       `json:"pump"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"counters"`
	Config        ConfigJSON   `json:"config"`
}

// ReadingsJSON is the JSON representation of the four readings.
type ReadingsJSON struct {
	Moisture    float64 `json:"moisture"`
	Light       float64 `json:"light"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// HealthJSON is the JSON representation of the health classification.
type HealthJSON struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of loop counters.
type CountsJSON struct {
	Ticks          int `json:"ticks"`
	MoistureErrors int `json:"moisture_errors"`
	LightErrors    int `json:"light_errors"`
	ClimateErrors  int `json:"climate_errors"`
	PumpStarts     int `json:"pump_starts"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs      int64  `json:"tick_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
	PumpPin     int    `json:"pump_pin"`
	Simulated   bool   `json:"simulated"`
}

func buildInner(snap Snapshot) StatusInner {
	pump := "OFF"
	if snap.PumpOn {
		pump = "ON"
	}

	return StatusInner{
		Plant: snap.PlantName,
		Readings: ReadingsJSON{
			Moisture:    snap.Moisture,
			Light:       snap.Light,
			Temperature: snap.Temperature,
			Humidity:    snap.Humidity,
		},
		Health: HealthJSON{
			Status: string(snap.Health.Status),
			Reason: snap.Health.Reason,
		},
		Pump:          pump,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Ticks:          snap.Counts.Ticks,
			MoistureErrors: snap.Counts.MoistureErrors,
			LightErrors:    snap.Counts.LightErrors,
			ClimateErrors:  snap.Counts.ClimateErrors,
			PumpStarts:     snap.Counts.PumpStarts,
		},
		Config: ConfigJSON{
			TickMs:      snap.Config.TickMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			PumpPin:     snap.Config.PumpPin,
			Simulated:   snap.Config.Simulated,
		},
	}
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
