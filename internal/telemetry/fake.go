package telemetry

// Discard drops every event. Used when telemetry is disabled.
type Discard struct{}

// PublishHealth does nothing.
func (Discard) PublishHealth(HealthEvent) error { return nil }

// PublishSystem does nothing.
func (Discard) PublishSystem(SystemEvent) error { return nil }

// Close does nothing.
func (Discard) Close() error { return nil }

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	// HealthEvents contains all health transitions that were published.
	HealthEvents []HealthEvent

	// HealthPayloads contains the JSON payloads that were published.
	HealthPayloads [][]byte

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishHealthError, if set, will be returned by PublishHealth.
	PublishHealthError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishHealth records the health transition.
func (f *FakePublisher) PublishHealth(event HealthEvent) error {
	if f.PublishHealthError != nil {
		return f.PublishHealthError
	}

	f.HealthEvents = append(f.HealthEvents, event)

	payload, err := FormatHealthPayload(event)
	if err != nil {
		return err
	}
	f.HealthPayloads = append(f.HealthPayloads, payload)

	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded events.
func (f *FakePublisher) Reset() {
	f.HealthEvents = nil
	f.HealthPayloads = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Closed = false
	f.PublishHealthError = nil
	f.PublishSystemError = nil
	f.Connected = false
}
