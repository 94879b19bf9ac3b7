package sensors

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Sim tunables. Moisture dries slowly on its own and recovers while the
// pump runs; light follows a day-shaped curve compressed into simMinutes.
const (
	simDryPerMin = 6.0  // raw ADC counts gained (drier) per minute, pump off
	simWetPerMin = 40.0 // raw ADC counts lost (wetter) per minute, pump on
	simSeedRaw   = 600.0
	simMinutes   = 10.0 // length of one simulated "day"
)

// SimSuite generates plausible drifting sensor values so the daemon can run
// on a development machine. PumpOn may be set by the caller to feed the
// irrigation effect back into the moisture model.
type SimSuite struct {
	mu     sync.Mutex
	rng    *rand.Rand
	last   time.Time
	raw    float64 // moisture ADC state
	pumpOn bool
	now    func() time.Time
}

// NewSimSuite creates a simulator seeded from the given source and returns
// a Suite wired to it.
func NewSimSuite(seed int64) (*SimSuite, Suite) {
	s := &SimSuite{
		rng: rand.New(rand.NewSource(seed)),
		raw: simSeedRaw,
		now: time.Now,
	}
	return s, Suite{
		Moisture: simMoisture{s},
		Light:    simLight{s},
		Climate:  simClimate{s},
	}
}

// SetPumpOn feeds the actuator state back into the moisture model.
func (s *SimSuite) SetPumpOn(on bool) {
	s.mu.Lock()
	s.pumpOn = on
	s.mu.Unlock()
}

// step advances the moisture state by the elapsed wall time.
func (s *SimSuite) step() {
	now := s.now()
	if s.last.IsZero() {
		s.last = now
		return
	}
	dtMin := now.Sub(s.last).Minutes()
	if dtMin < 0 {
		dtMin = 0
	}
	if s.pumpOn {
		s.raw -= simWetPerMin * dtMin
	} else {
		s.raw += simDryPerMin * dtMin
	}
	// keep within the probe's physical range with a little jitter
	s.raw += s.rng.Float64()*2 - 1
	if s.raw < 405 {
		s.raw = 405
	}
	if s.raw > 870 {
		s.raw = 870
	}
	s.last = now
}

// dayPhase returns [0,1) position within the compressed simulated day.
func (s *SimSuite) dayPhase() float64 {
	secs := float64(s.now().UnixNano()) / float64(time.Second)
	day := simMinutes * 60
	return math.Mod(secs, day) / day
}

type simMoisture struct{ s *SimSuite }

func (m simMoisture) ReadRaw() (float64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.step()
	return m.s.raw, nil
}

func (m simMoisture) Close() error { return nil }

type simLight struct{ s *SimSuite }

func (l simLight) ReadLux() (float64, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	// half-sine over the simulated day, peaking near 950 lux at "noon"
	lux := 950 * math.Sin(l.s.dayPhase()*math.Pi)
	if lux < 0 {
		lux = 0
	}
	lux += l.s.rng.Float64() * 30
	return lux, nil
}

func (l simLight) Close() error { return nil }

type simClimate struct{ s *SimSuite }

func (c simClimate) ReadClimate() (float64, float64, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	temperature := 21 + c.s.rng.Float64()*2 - 1
	humidity := 52 + c.s.rng.Float64()*6 - 3
	return temperature, humidity, nil
}

func (c simClimate) Close() error { return nil }
