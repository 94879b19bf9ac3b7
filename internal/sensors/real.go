//go:build linux

package sensors

import (
	"encoding/binary"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// OpenReal opens the I2C bus and returns a Suite backed by real hardware:
// a Grove base hat ADC for the moisture probe, a BH1750 for ambient light
// and an SHT3x for temperature/humidity. busName may be empty to use the
// first available bus. The ADC owns the shared bus handle; closing the
// Suite closes the bus exactly once.
func OpenReal(busName string, moistureChannel int) (Suite, error) {
	if _, err := host.Init(); err != nil {
		return Suite{}, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return Suite{}, fmt.Errorf("open i2c bus: %w", err)
	}

	light := &BH1750{dev: i2c.Dev{Bus: bus, Addr: AddrBH1750}}
	if err := light.start(); err != nil {
		bus.Close()
		return Suite{}, fmt.Errorf("start light sensor: %w", err)
	}

	return Suite{
		Moisture: &HatADC{
			bus:     bus,
			dev:     i2c.Dev{Bus: bus, Addr: AddrADC},
			channel: moistureChannel,
		},
		Light:   light,
		Climate: &SHT3x{dev: i2c.Dev{Bus: bus, Addr: AddrSHT3x}},
	}, nil
}

// HatADC reads a raw analog value from one channel of the Grove base hat ADC.
type HatADC struct {
	bus     i2c.BusCloser
	dev     i2c.Dev
	channel int
}

// ReadRaw returns the raw 12-bit ADC value for the configured channel.
func (a *HatADC) ReadRaw() (float64, error) {
	write := []byte{byte(0x10 + a.channel)}
	read := make([]byte, 2)
	if err := a.dev.Tx(write, read); err != nil {
		return 0, fmt.Errorf("read adc channel %d: %w", a.channel, err)
	}
	return float64(binary.LittleEndian.Uint16(read)), nil
}

// Close closes the shared I2C bus.
func (a *HatADC) Close() error {
	return a.bus.Close()
}

// BH1750 reads ambient light from a BH1750 sensor in continuous
// high-resolution mode.
type BH1750 struct {
	dev i2c.Dev
}

// start puts the sensor into continuous high-resolution mode (1 lx steps,
// 120ms measurement time).
func (b *BH1750) start() error {
	return b.dev.Tx([]byte{0x10}, nil)
}

// ReadLux returns the latest light measurement in lux.
func (b *BH1750) ReadLux() (float64, error) {
	read := make([]byte, 2)
	if err := b.dev.Tx(nil, read); err != nil {
		return 0, fmt.Errorf("read light: %w", err)
	}
	// Datasheet: counts / 1.2 = lux at the default measurement time.
	return float64(binary.BigEndian.Uint16(read)) / 1.2, nil
}

// Close is a no-op; the bus is owned by the ADC.
func (b *BH1750) Close() error { return nil }

// SHT3x reads temperature and humidity from an SHT3x sensor using
// single-shot, high-repeatability measurements.
type SHT3x struct {
	dev i2c.Dev
}

// ReadClimate triggers a measurement and returns temperature (°C) and
// relative humidity (%).
func (s *SHT3x) ReadClimate() (float64, float64, error) {
	if err := s.dev.Tx([]byte{0x24, 0x00}, nil); err != nil {
		return 0, 0, fmt.Errorf("trigger climate measurement: %w", err)
	}
	// High repeatability measurements take up to 15ms.
	time.Sleep(16 * time.Millisecond)

	read := make([]byte, 6)
	if err := s.dev.Tx(nil, read); err != nil {
		return 0, 0, fmt.Errorf("read climate: %w", err)
	}

	rawT := binary.BigEndian.Uint16(read[0:2])
	rawH := binary.BigEndian.Uint16(read[3:5])
	temperature := -45 + 175*float64(rawT)/65535
	humidity := 100 * float64(rawH) / 65535
	return temperature, humidity, nil
}

// Close is a no-op; the bus is owned by the ADC.
func (s *SHT3x) Close() error { return nil }
