package web

import (
	"encoding/json"

	"github.com/sweeney/plant-monitor/internal/status"
)

// ReadingsJSON is the wire format of GET /readings.
type ReadingsJSON struct {
	Moisture    float64 `json:"moisture"`
	Light       float64 `json:"light"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// HealthJSON is the wire format of GET /health.
type HealthJSON struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func formatReadings(snap status.Snapshot) []byte {
	data, _ := json.Marshal(ReadingsJSON{
		Moisture:    snap.Moisture,
		Light:       snap.Light,
		Temperature: snap.Temperature,
		Humidity:    snap.Humidity,
	})
	return data
}

func formatHealth(snap status.Snapshot) []byte {
	data, _ := json.Marshal(HealthJSON{
		Status: string(snap.Health.Status),
		Reason: snap.Health.Reason,
	})
	return data
}
