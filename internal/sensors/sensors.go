// Package sensors provides acquisition of the four environmental inputs
// with hardware abstraction. The real implementations talk I2C via periph.io;
// the fake implementations allow testing without hardware, and the simulator
// produces plausible drifting values for development machines.
package sensors

// MoistureSensor reads the raw analog soil moisture value.
// Higher raw values mean drier soil. The calibrated range is roughly
// [405,870]; values outside it are returned as-is.
type MoistureSensor interface {
	// ReadRaw returns the raw ADC value.
	ReadRaw() (float64, error)

	// Close releases sensor resources.
	Close() error
}

// LightSensor reads ambient light intensity in lux.
type LightSensor interface {
	ReadLux() (float64, error)
	Close() error
}

// ClimateSensor reads air temperature (°C) and relative humidity (%).
type ClimateSensor interface {
	ReadClimate() (temperature, humidity float64, err error)
	Close() error
}

// Suite bundles the three physical sensors the daemon polls each tick.
type Suite struct {
	Moisture MoistureSensor
	Light    LightSensor
	Climate  ClimateSensor
}

// Close closes all sensors, returning the first error encountered.
func (s Suite) Close() error {
	var first error
	for _, c := range []interface{ Close() error }{s.Moisture, s.Light, s.Climate} {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Default I2C addresses.
const (
	AddrADC    = 0x04 // Grove base hat ADC (moisture on one of its channels)
	AddrBH1750 = 0x23 // BH1750 ambient light sensor
	AddrSHT3x  = 0x44 // SHT3x temperature/humidity sensor
)

// DefaultMoistureChannel is the ADC channel the moisture probe is wired to.
const DefaultMoistureChannel = 0
