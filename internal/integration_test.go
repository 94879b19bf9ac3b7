package internal

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/plant-monitor/internal/convert"
	"github.com/sweeney/plant-monitor/internal/health"
	"github.com/sweeney/plant-monitor/internal/pump"
	"github.com/sweeney/plant-monitor/internal/sensors"
	"github.com/sweeney/plant-monitor/internal/status"
	"github.com/sweeney/plant-monitor/internal/telemetry"
)

// tickOnce runs one sampling cycle by hand: read, convert, classify, actuate,
// publish on transition. It mirrors the daemon loop without the channel
// plumbing so each stage can be asserted in isolation.
func tickOnce(t *testing.T, suite sensors.Suite, relay pump.Relay, publisher telemetry.Publisher, tracker *status.Tracker, prev *health.Status, counts *status.Counts, now time.Time) health.Result {
	t.Helper()

	raw, err := suite.Moisture.ReadRaw()
	if err != nil {
		t.Fatalf("moisture read: %v", err)
	}
	lux, err := suite.Light.ReadLux()
	if err != nil {
		t.Fatalf("light read: %v", err)
	}
	temperature, humidity, err := suite.Climate.ReadClimate()
	if err != nil {
		t.Fatalf("climate read: %v", err)
	}

	readings := health.Readings{
		Temperature: temperature,
		Humidity:    humidity,
		Light:       convert.LightPercent(lux),
		Moisture:    convert.MoisturePercent(raw),
	}
	res := health.Classify(readings)

	pumpOn := pump.Decide(readings.Moisture)
	if err := relay.Set(pumpOn); err != nil {
		t.Fatalf("relay set: %v", err)
	}

	counts.Ticks++
	tracker.Update(readings.Moisture, readings.Light, readings.Temperature, readings.Humidity, res, pumpOn, *counts)

	if res.Status != *prev {
		event := telemetry.HealthEvent{
			Timestamp: now,
			Plant:     tracker.Snapshot().PlantName,
			Result:    res,
			Readings:  readings,
		}
		if err := publisher.PublishHealth(event); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	*prev = res.Status

	return res
}

// TestIntegrationFullFlow walks the complete path from scripted sensor
// readings through conversion, classification and actuation to MQTT.
// Scenario: healthy plant -> soil dries out -> watered back to healthy.
func TestIntegrationFullFlow(t *testing.T) {
	samples := []sensors.Sample{
		// Healthy: ≈58% moisture, 70% light, 21°C, 50% RH
		{Raw: 600, Lux: 700, Temperature: 21, Humidity: 50},
		{Raw: 605, Lux: 700, Temperature: 21, Humidity: 50},
		// Soil dries below the pump threshold: ≈15% moisture
		{Raw: 800, Lux: 700, Temperature: 21, Humidity: 50},
		{Raw: 810, Lux: 700, Temperature: 21, Humidity: 50},
		// Watered: back above threshold
		{Raw: 580, Lux: 700, Temperature: 21, Humidity: 50},
	}

	_, suite := sensors.NewFakeSuite(samples)
	relay := pump.NewFakeRelay()
	publisher := telemetry.NewFakePublisher()
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := status.NewTracker("Monstera", startTime, status.Config{TickMs: 1000})

	prev := health.StatusGood
	var counts status.Counts
	for i := range samples {
		now := startTime.Add(time.Duration(i) * time.Second)
		tickOnce(t, suite, relay, publisher, tracker, &prev, &counts, now)
	}

	// Two transitions: Good -> At Risk at the dry sample, back to Good
	// after watering.
	if len(publisher.HealthEvents) != 2 {
		t.Fatalf("expected 2 health events, got %d", len(publisher.HealthEvents))
	}
	if publisher.HealthEvents[0].Result.Status != health.StatusAtRisk {
		t.Errorf("event 0: expected At Risk, got %s", publisher.HealthEvents[0].Result.Status)
	}
	if publisher.HealthEvents[0].Result.Reason != "Moisture too low" {
		t.Errorf("event 0 reason: got %q", publisher.HealthEvents[0].Result.Reason)
	}
	if publisher.HealthEvents[1].Result.Status != health.StatusGood {
		t.Errorf("event 1: expected Good, got %s", publisher.HealthEvents[1].Result.Status)
	}

	// Relay follows the moisture threshold tick by tick.
	wantRelay := []bool{false, false, true, true, false}
	if len(relay.History) != len(wantRelay) {
		t.Fatalf("expected %d relay commands, got %d", len(wantRelay), len(relay.History))
	}
	for i, want := range wantRelay {
		if relay.History[i] != want {
			t.Errorf("relay command %d: got %v, want %v", i, relay.History[i], want)
		}
	}

	// The tracker holds the final snapshot for the HTTP handlers.
	snap := tracker.Snapshot()
	if snap.Health.Status != health.StatusGood {
		t.Errorf("final status: got %s, want Good", snap.Health.Status)
	}
	if snap.PumpOn {
		t.Error("pump should be off after watering")
	}
	if snap.Counts.Ticks != len(samples) {
		t.Errorf("ticks: got %d, want %d", snap.Counts.Ticks, len(samples))
	}

	// Verify published JSON payloads parse and carry the essentials.
	for i, payload := range publisher.HealthPayloads {
		var parsed telemetry.Payload
		if err := json.Unmarshal(payload, &parsed); err != nil {
			t.Errorf("payload %d: invalid JSON: %v", i, err)
			continue
		}
		if parsed.Plant.Timestamp == "" {
			t.Errorf("payload %d: missing timestamp", i)
		}
		if parsed.Plant.Name != "Monstera" {
			t.Errorf("payload %d: plant name %q", i, parsed.Plant.Name)
		}
		if parsed.Plant.Status == "" {
			t.Errorf("payload %d: missing status", i)
		}
	}
}

// TestIntegrationNoEventsWhileHealthy verifies a steady healthy plant never
// publishes a health transition.
func TestIntegrationNoEventsWhileHealthy(t *testing.T) {
	samples := []sensors.Sample{
		{Raw: 600, Lux: 700, Temperature: 21, Humidity: 50},
		{Raw: 610, Lux: 720, Temperature: 22, Humidity: 52},
		{Raw: 590, Lux: 680, Temperature: 20, Humidity: 48},
	}

	_, suite := sensors.NewFakeSuite(samples)
	relay := pump.NewFakeRelay()
	publisher := telemetry.NewFakePublisher()
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := status.NewTracker("Monstera", startTime, status.Config{TickMs: 1000})

	prev := health.StatusGood
	var counts status.Counts
	for i := range samples {
		tickOnce(t, suite, relay, publisher, tracker, &prev, &counts, startTime.Add(time.Duration(i)*time.Second))
	}

	if len(publisher.HealthEvents) != 0 {
		t.Errorf("expected no health events, got %d", len(publisher.HealthEvents))
	}
	if relay.Transitions() != 0 {
		t.Errorf("expected no relay transitions, got %d", relay.Transitions())
	}
}

// TestIntegrationMultipleViolations verifies a reading that breaks several
// thresholds at once reports all of them in rule order.
func TestIntegrationMultipleViolations(t *testing.T) {
	// Cold, dark and bone dry: temperature, light and moisture all violated.
	samples := []sensors.Sample{
		{Raw: 850, Lux: 200, Temperature: 10, Humidity: 50},
	}

	_, suite := sensors.NewFakeSuite(samples)
	relay := pump.NewFakeRelay()
	publisher := telemetry.NewFakePublisher()
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := status.NewTracker("Monstera", startTime, status.Config{TickMs: 1000})

	prev := health.StatusGood
	var counts status.Counts
	res := tickOnce(t, suite, relay, publisher, tracker, &prev, &counts, startTime)

	want := "Temperature too low; Light too low; Moisture too low"
	if res.Reason != want {
		t.Errorf("reason:\ngot:  %s\nwant: %s", res.Reason, want)
	}

	if len(publisher.HealthEvents) != 1 {
		t.Fatalf("expected 1 health event, got %d", len(publisher.HealthEvents))
	}
	if !relay.On {
		t.Error("pump should be on for bone dry soil")
	}
}

// TestIntegrationSystemLifecycle verifies startup and shutdown events carry
// the full status snapshot payload.
func TestIntegrationSystemLifecycle(t *testing.T) {
	publisher := telemetry.NewFakePublisher()
	startTime := time.Date(2026, 2, 3, 19, 5, 51, 0, time.UTC)
	tracker := status.NewTracker("Monstera", startTime, status.Config{
		TickMs:      1000,
		HeartbeatMs: 900000,
		Broker:      "tcp://192.168.1.200:1883",
		HTTPAddr:    ":8080",
		PumpPin:     18,
	})

	snap := tracker.Snapshot()
	startup := telemetry.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startup); err != nil {
		t.Fatalf("startup publish: %v", err)
	}

	shutdown := telemetry.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "SHUTDOWN",
		Reason:     "SIGTERM",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", "SIGTERM"),
	}
	if err := publisher.PublishSystem(shutdown); err != nil {
		t.Fatalf("shutdown publish: %v", err)
	}

	if len(publisher.SystemEvents) != 2 {
		t.Fatalf("expected 2 system events, got %d", len(publisher.SystemEvents))
	}
	if publisher.SystemEvents[0].Event != "STARTUP" {
		t.Errorf("first system event: got %s, want STARTUP", publisher.SystemEvents[0].Event)
	}
	if publisher.SystemEvents[1].Event != "SHUTDOWN" {
		t.Errorf("second system event: got %s, want SHUTDOWN", publisher.SystemEvents[1].Event)
	}

	// The startup payload carries the full config for remote inspection.
	var parsed status.StatusJSON
	if err := json.Unmarshal(publisher.SystemPayloads[0], &parsed); err != nil {
		t.Fatalf("invalid startup JSON: %v", err)
	}
	if parsed.Status.Event != "STARTUP" {
		t.Errorf("payload event: got %s", parsed.Status.Event)
	}
	if parsed.Status.Config.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("payload broker: got %s", parsed.Status.Config.Broker)
	}
	if parsed.Status.Config.TickMs != 1000 {
		t.Errorf("payload tick_ms: got %d", parsed.Status.Config.TickMs)
	}

	// The shutdown payload carries the signal name.
	if err := json.Unmarshal(publisher.SystemPayloads[1], &parsed); err != nil {
		t.Fatalf("invalid shutdown JSON: %v", err)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("payload reason: got %s", parsed.Status.Reason)
	}
}

// TestIntegrationSensorFaultTolerance verifies a failing sensor doesn't stop
// the cycle: the last good value carries and the error is counted.
func TestIntegrationSensorFaultTolerance(t *testing.T) {
	fake, suite := sensors.NewFakeSuite([]sensors.Sample{
		{Raw: 600, Lux: 700, Temperature: 21, Humidity: 50},
	})
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := status.NewTracker("Monstera", startTime, status.Config{TickMs: 1000})

	var counts status.Counts
	var last health.Readings

	// First tick reads clean.
	raw, err := suite.Moisture.ReadRaw()
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	last.Moisture = convert.MoisturePercent(raw)

	// Second tick fails: keep the carried value, bump the counter.
	fake.MoistureError = errors.New("injected sensor fault")
	if _, err := suite.Moisture.ReadRaw(); err == nil {
		t.Fatal("expected injected read error")
	}
	counts.MoistureErrors++

	res := health.Classify(health.Readings{
		Temperature: 21, Humidity: 50, Light: 70,
		Moisture: last.Moisture,
	})
	if res.Status != health.StatusGood {
		t.Errorf("carried value should still classify Good, got %s", res.Status)
	}

	tracker.Update(last.Moisture, 70, 21, 50, res, false, counts)
	snap := tracker.Snapshot()
	if snap.Counts.MoistureErrors != 1 {
		t.Errorf("moisture errors: got %d, want 1", snap.Counts.MoistureErrors)
	}
	if snap.Moisture < 57 || snap.Moisture > 59 {
		t.Errorf("snapshot moisture: got %.1f, want ≈58", snap.Moisture)
	}
}
