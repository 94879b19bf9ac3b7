// Package telemetry publishes plant events over MQTT with abstraction for
// testing.
package telemetry

import (
	"encoding/json"
	"time"

	"github.com/sweeney/plant-monitor/internal/health"
)

// TopicHealth is the MQTT topic for plant health transitions.
const TopicHealth = "garden/plant/monitor/health"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "garden/plant/monitor/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// PublishHealth sends a health transition to the broker.
	// Returns error if publishing fails (should not crash the process).
	PublishHealth(event HealthEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// HealthEvent represents a plant health transition to be published.
type HealthEvent struct {
	Timestamp time.Time
	Plant     string
	Result    health.Result
	Readings  health.Readings
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload for a health transition.
type Payload struct {
	Plant PlantPayload `json:"plant"`
}

// PlantPayload contains the health transition details.
type PlantPayload struct {
	Timestamp string          `json:"timestamp"`
	Name      string          `json:"name"`
	Status    string          `json:"status"`
	Reason    string          `json:"reason,omitempty"`
	Readings  ReadingsPayload `json:"readings"`
}

// ReadingsPayload carries the readings that produced the transition.
type ReadingsPayload struct {
	Moisture    float64 `json:"moisture"`
	Light       float64 `json:"light"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// FormatHealthPayload creates the JSON payload for a health transition.
func FormatHealthPayload(event HealthEvent) ([]byte, error) {
	payload := Payload{
		Plant: PlantPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Name:      event.Plant,
			Status:    string(event.Result.Status),
			Reason:    event.Result.Reason,
			Readings: ReadingsPayload{
				Moisture:    event.Readings.Moisture,
				Light:       event.Readings.Light,
				Temperature: event.Readings.Temperature,
				Humidity:    event.Readings.Humidity,
			},
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
