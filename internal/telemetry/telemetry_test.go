package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/plant-monitor/internal/health"
)

func TestFormatHealthPayload(t *testing.T) {
	event := HealthEvent{
		Timestamp: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Plant:     "Monstera",
		Result:    health.Result{Status: health.StatusAtRisk, Reason: "Moisture too low"},
		Readings:  health.Readings{Temperature: 21, Humidity: 48, Light: 70, Moisture: 42},
	}

	data, err := FormatHealthPayload(event)
	if err != nil {
		t.Fatalf("FormatHealthPayload: %v", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if p.Plant.Timestamp != "2026-03-01T10:30:00Z" {
		t.Errorf("timestamp: got %q", p.Plant.Timestamp)
	}
	if p.Plant.Name != "Monstera" {
		t.Errorf("name: got %q, want Monstera", p.Plant.Name)
	}
	if p.Plant.Status != "At Risk" {
		t.Errorf("status: got %q, want %q", p.Plant.Status, "At Risk")
	}
	if p.Plant.Reason != "Moisture too low" {
		t.Errorf("reason: got %q", p.Plant.Reason)
	}
	if p.Plant.Readings.Moisture != 42 {
		t.Errorf("moisture: got %v, want 42", p.Plant.Readings.Moisture)
	}
}

func TestFormatHealthPayloadOmitsEmptyReason(t *testing.T) {
	event := HealthEvent{
		Timestamp: time.Now(),
		Plant:     "Monstera",
		Result:    health.Result{Status: health.StatusGood},
	}

	data, err := FormatHealthPayload(event)
	if err != nil {
		t.Fatalf("FormatHealthPayload: %v", err)
	}

	var raw map[string]map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := raw["plant"]["reason"]; present {
		t.Error("empty reason should be omitted from the payload")
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	var p SystemPayload
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.System.Event != "SHUTDOWN" {
		t.Errorf("event: got %q, want SHUTDOWN", p.System.Event)
	}
	if p.System.Reason != "SIGTERM" {
		t.Errorf("reason: got %q, want SIGTERM", p.System.Reason)
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"event":"STARTUP"}}`)
	event := SystemEvent{Event: "STARTUP", RawPayload: raw}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("raw payload not passed through: got %s", data)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	event := HealthEvent{
		Timestamp: time.Now(),
		Plant:     "Basil",
		Result:    health.Result{Status: health.StatusGood},
	}
	if err := f.PublishHealth(event); err != nil {
		t.Fatalf("PublishHealth: %v", err)
	}
	if err := f.PublishSystem(SystemEvent{Event: "HEARTBEAT", Timestamp: time.Now()}); err != nil {
		t.Fatalf("PublishSystem: %v", err)
	}

	if len(f.HealthEvents) != 1 {
		t.Errorf("health events: got %d, want 1", len(f.HealthEvents))
	}
	if len(f.HealthPayloads) != 1 {
		t.Errorf("health payloads: got %d, want 1", len(f.HealthPayloads))
	}
	if len(f.SystemEvents) != 1 {
		t.Errorf("system events: got %d, want 1", len(f.SystemEvents))
	}

	f.Reset()
	if len(f.HealthEvents) != 0 || len(f.SystemEvents) != 0 {
		t.Error("Reset should clear recorded events")
	}
}
