// Package convert maps raw sensor units to normalized percentages.
// This package has NO external dependencies.
package convert

// Moisture probe calibration: raw ADC value in water (100%) and in dry
// air (0%). Higher raw values mean drier soil.
const (
	MoistureRawWet = 405.0
	MoistureRawDry = 870.0
)

// LuxFullScale is the lux reading treated as 100% light.
const LuxFullScale = 1000.0

// MoisturePercent maps a raw ADC value to a moisture percentage using the
// inverted linear calibration: 100 at MoistureRawWet, 0 at MoistureRawDry.
// Readings outside the calibrated range are not clamped, so the result may
// fall outside [0,100]; out-of-range output flags a probe that needs
// recalibrating rather than being silently hidden.
func MoisturePercent(raw float64) float64 {
	return (MoistureRawDry - raw) * 100 / (MoistureRawDry - MoistureRawWet)
}

// LightPercent maps a lux reading to a percentage of full scale, clamped
// to a maximum of 100. No lower clamp is applied.
func LightPercent(lux float64) float64 {
	pct := lux / LuxFullScale * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
