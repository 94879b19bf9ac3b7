package sensors

import "errors"

// Sample represents one scripted reading of all four values.
type Sample struct {
	Raw         float64 // raw moisture ADC value
	Lux         float64
	Temperature float64
	Humidity    float64
}

// FakeSuite is a test double that returns scripted sensor values.
// Each sensor consumes the shared sample script at its own cursor, one
// sample per read; when samples are exhausted the last one repeats.
// An injected error does not consume a sample.
type FakeSuite struct {
	// Samples contains scripted values.
	Samples []Sample

	// per-sensor cursors
	moistureIdx int
	lightIdx    int
	climateIdx  int

	// Closed tracks if Close was called
	Closed bool

	// Per-sensor errors; if set, the corresponding read fails.
	MoistureError error
	LightError    error
	ClimateError  error
}

// NewFakeSuite creates a FakeSuite with the given samples and returns a
// Suite wired to it.
func NewFakeSuite(samples []Sample) (*FakeSuite, Suite) {
	f := &FakeSuite{Samples: samples}
	return f, Suite{
		Moisture: fakeMoisture{f},
		Light:    fakeLight{f},
		Climate:  fakeClimate{f},
	}
}

// next returns the sample at the cursor and advances it.
// The last sample repeats once exhausted, matching a sensor that keeps
// returning its latest value.
func (f *FakeSuite) next(idx *int) (Sample, error) {
	if len(f.Samples) == 0 {
		return Sample{}, errors.New("no samples configured")
	}
	s := f.Samples[*idx]
	if *idx < len(f.Samples)-1 {
		*idx++
	}
	return s, nil
}

// Reset rewinds every cursor and clears injected errors.
func (f *FakeSuite) Reset() {
	f.moistureIdx = 0
	f.lightIdx = 0
	f.climateIdx = 0
	f.Closed = false
	f.MoistureError = nil
	f.LightError = nil
	f.ClimateError = nil
}

type fakeMoisture struct{ f *FakeSuite }

func (m fakeMoisture) ReadRaw() (float64, error) {
	if m.f.MoistureError != nil {
		return 0, m.f.MoistureError
	}
	s, err := m.f.next(&m.f.moistureIdx)
	return s.Raw, err
}

func (m fakeMoisture) Close() error {
	m.f.Closed = true
	return nil
}

type fakeLight struct{ f *FakeSuite }

func (l fakeLight) ReadLux() (float64, error) {
	if l.f.LightError != nil {
		return 0, l.f.LightError
	}
	s, err := l.f.next(&l.f.lightIdx)
	return s.Lux, err
}

func (l fakeLight) Close() error {
	l.f.Closed = true
	return nil
}

type fakeClimate struct{ f *FakeSuite }

func (c fakeClimate) ReadClimate() (float64, float64, error) {
	if c.f.ClimateError != nil {
		return 0, 0, c.f.ClimateError
	}
	s, err := c.f.next(&c.f.climateIdx)
	return s.Temperature, s.Humidity, err
}

func (c fakeClimate) Close() error {
	c.f.Closed = true
	return nil
}
