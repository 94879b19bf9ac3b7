//go:build !linux

package sensors

import "errors"

// OpenReal is not available on non-Linux platforms.
func OpenReal(busName string, moistureChannel int) (Suite, error) {
	return Suite{}, errors.New("sensors: not supported on this platform (requires Linux)")
}
