// Package clock supplies frame deltas to the motion engine. Hosts either
// step a constant delta (fixed cadence) or measure wall time between frames
// (variable cadence); the cadence selects the spring integration scheme.
package clock

import (
	"fmt"
	"time"
)

// Cadence describes how a host produces frame deltas.
type Cadence int

const (
	Fixed Cadence = iota
	Variable
)

func (c Cadence) String() string {
	switch c {
	case Fixed:
		return "fixed"
	case Variable:
		return "variable"
	default:
		return fmt.Sprintf("Cadence(%d)", int(c))
	}
}

// Source yields one delta per frame.
type Source interface {
	Delta() time.Duration
	Cadence() Cadence
}

// Clock reads the current time. Tests inject a fake to drive frames
// deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real is the system clock.
var Real Clock = realClock{}

// Steady returns the same delta every frame.
type Steady struct {
	Step time.Duration
}

// NewSteady returns a fixed source running at hz frames per second.
func NewSteady(hz int) *Steady {
	if hz <= 0 {
		hz = 60
	}
	return &Steady{Step: time.Second / time.Duration(hz)}
}

func (s *Steady) Delta() time.Duration { return s.Step }

func (s *Steady) Cadence() Cadence { return Fixed }

// Frame measures the time between successive Delta calls. The first call
// returns zero; backwards jumps yield zero and long stalls are clamped to
// MaxDelta so a resumed host does not teleport its animations.
type Frame struct {
	MaxDelta time.Duration

	clock   Clock
	last    time.Time
	started bool
}

func NewFrame(c Clock, maxDelta time.Duration) *Frame {
	if c == nil {
		c = Real
	}
	return &Frame{clock: c, MaxDelta: maxDelta}
}

func (f *Frame) Delta() time.Duration {
	now := f.clock.Now()
	if !f.started {
		f.started = true
		f.last = now
		return 0
	}
	d := now.Sub(f.last)
	f.last = now
	if d < 0 {
		return 0
	}
	if f.MaxDelta > 0 && d > f.MaxDelta {
		return f.MaxDelta
	}
	return d
}

func (f *Frame) Cadence() Cadence { return Variable }
