package integrators

import (
	"time"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/value"
)

// Segment runs one spring or tween from a start value to a target. It holds
// only integrator-local state; delay and looping belong to the caller.
type Segment[T value.Animatable[T]] struct {
	cfg    anim.Config
	scheme Scheme
	from   T
	to     T
	state  SpringState[T]
	eps    float64

	elapsed time.Duration
	rkStep  float64
	osc     oscillator
	done    bool
}

// NewSegment prepares a run from start to target. carry is velocity
// inherited from a previous run; the config's launch speed is added along
// the start-to-target direction. cfg must already be validated.
func NewSegment[T value.Animatable[T]](start, target, carry T, cfg anim.Config, scheme Scheme) Segment[T] {
	s := Segment[T]{
		cfg:    cfg,
		scheme: scheme,
		from:   start,
		to:     target,
		state:  SpringState[T]{Pos: start, Vel: carry},
		eps:    cfg.EpsilonOr(target.Epsilon()),
	}
	if cfg.Mode == anim.ModeSpring {
		s.state.Vel = s.state.Vel.Add(InitialVelocity(start, target, cfg.Spring.Velocity))
	}
	return s
}

// Step advances the segment by dt and reports whether it completed. On
// completion the value equals the target exactly and velocity is zero.
// sc may be nil for schemes other than RK4.
func (s *Segment[T]) Step(dt time.Duration, sc *Scratch[T]) (T, bool) {
	if s.done {
		return s.to, true
	}
	if s.cfg.Mode == anim.ModeTween {
		return s.stepTween(dt)
	}
	return s.stepSpring(dt, sc)
}

func (s *Segment[T]) stepTween(dt time.Duration) (T, bool) {
	prev := s.state.Pos
	s.elapsed += dt
	v, done := TweenValue(s.from, s.to, s.cfg.Tween, s.elapsed)
	s.state.Pos = v
	if done {
		s.finish()
		return s.to, true
	}
	if dt > 0 {
		s.state.Vel = v.Sub(prev).Scale(1 / dt.Seconds())
	}
	return v, false
}

func (s *Segment[T]) stepSpring(dt time.Duration, sc *Scratch[T]) (T, bool) {
	if Converged(s.state, s.to, s.eps) {
		s.finish()
		return s.to, true
	}
	h := dt.Seconds()
	sp := s.cfg.Spring
	switch s.scheme {
	case RK4:
		if sc == nil {
			sc = new(Scratch[T])
		}
		s.rkStep = AdvanceRK4(&s.state, s.to, sp, h, s.rkStep, DefaultAdaptive(s.eps), sc)
	case Analytic:
		s.state = analyticStep(s.state, s.to, sp, h, &s.osc)
	default:
		AdvanceEuler(&s.state, s.to, sp, h)
	}
	s.elapsed += dt
	if Converged(s.state, s.to, s.eps) {
		s.finish()
		return s.to, true
	}
	return s.state.Pos, false
}

func (s *Segment[T]) finish() {
	var zero T
	s.state = SpringState[T]{Pos: s.to, Vel: zero}
	s.done = true
}

// Retarget changes the destination mid-flight. Position and velocity are
// kept so the motion stays continuous; a tween restarts from the current
// value with its full duration.
func (s *Segment[T]) Retarget(target T) {
	s.to = target
	s.from = s.state.Pos
	s.elapsed = 0
	s.done = false
	s.eps = s.cfg.EpsilonOr(target.Epsilon())
}

func (s *Segment[T]) Value() T { return s.state.Pos }

func (s *Segment[T]) Velocity() T { return s.state.Vel }

func (s *Segment[T]) Done() bool { return s.done }
