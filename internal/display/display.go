// Package display renders the latest readings for a local observer.
// The console renderer draws a small styled panel each tick; hardware
// displays would implement the same interface.
package display

import "github.com/sweeney/plant-monitor/internal/status"

// Renderer consumes the four readings (and derived health) once per tick.
type Renderer interface {
	Render(snap status.Snapshot)
}

// Noop discards every frame. Used when no display is attached.
type Noop struct{}

// Render does nothing.
func (Noop) Render(status.Snapshot) {}

// Fake records rendered snapshots for test assertions.
type Fake struct {
	Frames []status.Snapshot
}

// Render records the snapshot.
func (f *Fake) Render(snap status.Snapshot) {
	f.Frames = append(f.Frames, snap)
}
