// Package pump decides when the water pump runs and drives its relay.
// The real implementation uses Linux GPIO character device; the fake
// implementation allows testing without hardware.
package pump

// OnThreshold is the moisture percentage below which the pump runs.
// Exactly 50 keeps the pump off (the boundary is inclusive on the OFF
// side). There is no debounce, so a reading oscillating around the
// threshold causes relay chatter; a known limitation.
const OnThreshold = 50.0

// DefaultPin is the BCM pin number driving the relay.
const DefaultPin = 18

// Decide returns whether the pump should run for the given moisture
// percentage.
func Decide(moisturePct float64) bool {
	return moisturePct < OnThreshold
}

// Relay drives the pump relay. The relay module is active-low: the driver
// hides the inversion, callers only speak logical on/off.
type Relay interface {
	// Set energizes (true) or releases (false) the pump relay.
	Set(on bool) error

	// Close releases the relay to its inactive state and frees resources.
	Close() error
}

// NoopRelay discards commands. Used when running with simulated sensors.
type NoopRelay struct{}

// Set does nothing.
func (NoopRelay) Set(on bool) error { return nil }

// Close does nothing.
func (NoopRelay) Close() error { return nil }
