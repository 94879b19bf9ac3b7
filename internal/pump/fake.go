package pump

// FakeRelay records relay commands for test assertions.
type FakeRelay struct {
	// On is the most recent commanded state.
	On bool

	// History contains every commanded state in order.
	History []bool

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeRelay creates a FakeRelay for testing.
func NewFakeRelay() *FakeRelay {
	return &FakeRelay{}
}

// Set records the commanded state.
func (f *FakeRelay) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.On = on
	f.History = append(f.History, on)
	return nil
}

// Close releases the relay and marks the fake as closed.
func (f *FakeRelay) Close() error {
	f.On = false
	f.Closed = true
	return nil
}

// Transitions counts commanded state changes, ignoring repeats.
func (f *FakeRelay) Transitions() int {
	n := 0
	for i := 1; i < len(f.History); i++ {
		if f.History[i] != f.History[i-1] {
			n++
		}
	}
	return n
}
