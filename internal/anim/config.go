package anim

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/dynmotion/internal/easing"
)

const (
	DefaultStiffness = 100.0
	DefaultDamping   = 10.0
	DefaultMass      = 1.0
	DefaultDuration  = 300 * time.Millisecond
)

// Mode selects the integrator of a Config.
type Mode int

const (
	ModeSpring Mode = iota
	ModeTween
)

func (m Mode) String() string {
	switch m {
	case ModeSpring:
		return "spring"
	case ModeTween:
		return "tween"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Spring describes a damped harmonic oscillator. Velocity is the initial
// speed along the start-to-target direction, in value units per second.
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64
	Velocity  float64
}

func DefaultSpring() Spring {
	return Spring{
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
		Mass:      DefaultMass,
	}
}

// NewSpring validates and returns a spring at rest.
func NewSpring(stiffness, damping, mass float64) (Spring, error) {
	s := Spring{Stiffness: stiffness, Damping: damping, Mass: mass}
	if err := s.Validate(); err != nil {
		return Spring{}, err
	}
	return s, nil
}

// CriticallyDamped returns a spring with damping 2*sqrt(k*m).
func CriticallyDamped(stiffness, mass float64) (Spring, error) {
	return NewSpring(stiffness, CriticalDamping(stiffness, mass), mass)
}

func CriticalDamping(stiffness, mass float64) float64 {
	return 2 * math.Sqrt(stiffness*mass)
}

// Validate requires every parameter finite, with stiffness, damping and
// mass positive. An undamped spring never settles.
func (s Spring) Validate() error {
	const op = "anim.Spring"
	switch {
	case !finite(s.Stiffness) || s.Stiffness <= 0:
		return Invalid(op, "stiffness", s.Stiffness, ErrInvalidSpring)
	case !finite(s.Damping) || s.Damping <= 0:
		return Invalid(op, "damping", s.Damping, ErrInvalidSpring)
	case !finite(s.Mass) || s.Mass <= 0:
		return Invalid(op, "mass", s.Mass, ErrInvalidSpring)
	case !finite(s.Velocity):
		return Invalid(op, "velocity", s.Velocity, ErrInvalidSpring)
	}
	return nil
}

func (s Spring) WithVelocity(v float64) Spring {
	s.Velocity = v
	return s
}

// AngularFrequency is sqrt(k/m) in rad/s.
func (s Spring) AngularFrequency() float64 {
	return math.Sqrt(s.Stiffness / s.Mass)
}

// DampingRatio is c / (2*sqrt(k*m)); 1 is critical damping.
func (s Spring) DampingRatio() float64 {
	return s.Damping / CriticalDamping(s.Stiffness, s.Mass)
}

// Tween describes a timed interpolation. A nil Easing is linear.
type Tween struct {
	Duration time.Duration
	Easing   easing.Func
}

func DefaultTween() Tween {
	return Tween{Duration: DefaultDuration}
}

func NewTween(d time.Duration, e easing.Func) (Tween, error) {
	t := Tween{Duration: d, Easing: e}
	if err := t.Validate(); err != nil {
		return Tween{}, err
	}
	return t, nil
}

func (t Tween) Validate() error {
	if t.Duration < 0 {
		return Invalid("anim.Tween", "duration", t.Duration, ErrInvalidDuration)
	}
	return nil
}

// Timing holds the scheduling shared by simple animations, keyframe
// tracks and sequences.
type Timing struct {
	Delay      time.Duration
	Loop       LoopMode
	OnComplete *Callback
	Notify     CompletionPolicy
}

func (t Timing) Validate() error {
	if t.Delay < 0 {
		return Invalid("anim.Timing", "delay", t.Delay, ErrInvalidDelay)
	}
	return t.Loop.Validate()
}

// Config is the profile of one simple animation: exactly one of Spring or
// Tween is used, selected by Mode.
type Config struct {
	Mode   Mode
	Spring Spring
	Tween  Tween
	Timing

	// Epsilon overrides the value type's convergence threshold when > 0.
	Epsilon float64
}

func DefaultConfig() Config {
	return SpringConfig(DefaultSpring())
}

func SpringConfig(s Spring) Config {
	return Config{Mode: ModeSpring, Spring: s}
}

func TweenConfig(t Tween) Config {
	return Config{Mode: ModeTween, Tween: t}
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeSpring:
		if err := c.Spring.Validate(); err != nil {
			return err
		}
	case ModeTween:
		if err := c.Tween.Validate(); err != nil {
			return err
		}
	default:
		return Invalid("anim.Config", "mode", c.Mode, fmt.Errorf("anim: unknown mode"))
	}
	if c.Epsilon != 0 && (!finite(c.Epsilon) || c.Epsilon < 0) {
		return Invalid("anim.Config", "epsilon", c.Epsilon, ErrInvalidEpsilon)
	}
	return c.Timing.Validate()
}

// EpsilonOr returns the override when set, else def.
func (c Config) EpsilonOr(def float64) float64 {
	if c.Epsilon > 0 {
		return c.Epsilon
	}
	return def
}

func (c Config) WithDelay(d time.Duration) Config {
	c.Delay = d
	return c
}

func (c Config) WithLoop(l LoopMode) Config {
	c.Loop = l
	return c
}

func (c Config) WithEpsilon(eps float64) Config {
	c.Epsilon = eps
	return c
}

func (c Config) WithCallback(cb *Callback, p CompletionPolicy) Config {
	c.OnComplete = cb
	c.Notify = p
	return c
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
