package motion

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/integrators"
	"github.com/san-kum/dynmotion/internal/keyframe"
	"github.com/san-kum/dynmotion/internal/pool"
	"github.com/san-kum/dynmotion/internal/sequence"
	"github.com/san-kum/dynmotion/internal/value"
)

type program int

const (
	programNone program = iota
	programSimple
	programKeyframes
	programSequence
)

// Motion animates one value of type T.
type Motion[T value.Animatable[T]] struct {
	initial T
	value   T
	state   anim.State

	program program
	timing  anim.Timing
	loops   anim.LoopCounter

	// simple animations; cfg is held from Start until completion and
	// seeds every loop iteration
	cfg    *pool.Handle[anim.Config]
	seg    integrators.Segment[T]
	origin T
	target T

	// keyframe tracks
	track   *keyframe.Track[T]
	elapsed time.Duration
	kfVel   T

	player *sequence.Player[T]

	scheme integrators.Scheme
	pools  *Pools[T]
	log    logr.Logger
	subs   subscribers[T]
}

// New returns an idle motion holding initial.
func New[T value.Animatable[T]](initial T, opts ...Option) *Motion[T] {
	s := settings{log: logr.Discard()}
	for _, o := range opts {
		o(&s)
	}
	m := &Motion[T]{
		initial: initial,
		value:   initial,
		scheme:  s.resolveScheme(),
		log:     s.log,
	}
	if p, ok := s.pools.(*Pools[T]); ok && p != nil {
		m.pools = p
	} else {
		if s.pools != nil {
			m.log.Info("pools value type mismatch, using private pools")
		}
		m.pools = NewPools[T](pool.Options{Logger: s.log})
	}
	return m
}

// Start animates from the current value to target. Starting while a
// simple animation is running keeps the current velocity, so retargeting
// is continuous. On error the motion is left untouched.
func (m *Motion[T]) Start(target T, cfg anim.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !value.IsFinite(target) {
		return anim.Invalid("motion.Start", "target", target, anim.ErrInvalidValue)
	}
	var carry T
	if m.state.Phase == anim.Running && cfg.Mode == anim.ModeSpring {
		carry = m.Velocity()
	}

	m.release()
	h := m.pools.Configs.Checkout()
	*h.Value() = cfg
	m.cfg = h

	m.program = programSimple
	m.origin, m.target = m.value, target
	m.seg = integrators.NewSegment(m.value, target, carry, cfg, m.scheme)
	m.begin(cfg.Timing)
	return nil
}

// Retarget moves the destination of a running simple animation without
// resetting its velocity. When nothing is running it behaves like Start
// with the default config.
func (m *Motion[T]) Retarget(target T) error {
	if m.program != programSimple || !m.state.Active() {
		return m.Start(target, anim.DefaultConfig())
	}
	if !value.IsFinite(target) {
		return anim.Invalid("motion.Retarget", "target", target, anim.ErrInvalidValue)
	}
	m.target = target
	m.seg.Retarget(target)
	return nil
}

// StartKeyframes plays a keyframe track.
func (m *Motion[T]) StartKeyframes(track *keyframe.Track[T]) error {
	if track == nil {
		return anim.Invalid("motion.StartKeyframes", "", nil, anim.ErrEmptyTrack)
	}
	if err := track.Validate(); err != nil {
		return err
	}
	m.release()
	var zero T
	m.program = programKeyframes
	m.track = track
	m.elapsed = 0
	m.kfVel = zero
	m.begin(track.Timing)
	return nil
}

// StartSequence plays a sequence from the current value.
func (m *Motion[T]) StartSequence(seq *sequence.Sequence[T]) error {
	if seq == nil {
		return anim.Invalid("motion.StartSequence", "", nil, anim.ErrEmptySequence)
	}
	if err := seq.Validate(); err != nil {
		return err
	}
	m.release()
	m.program = programSequence
	m.player = sequence.NewPlayer(seq, m.value, m.scheme)
	m.begin(seq.Timing)
	return nil
}

func (m *Motion[T]) begin(t anim.Timing) {
	m.timing = t
	m.loops = anim.NewLoopCounter(t.Loop)
	m.state = anim.State{Phase: anim.Running}
	if t.Delay > 0 {
		m.state = anim.State{Phase: anim.Delayed, Remaining: t.Delay}
	}
	m.emit(Started)
}

// Advance moves the motion forward by dt and returns the new value and
// state. Negative deltas count as zero.
func (m *Motion[T]) Advance(dt time.Duration) (T, anim.State) {
	if dt < 0 {
		dt = 0
	}
	switch m.state.Phase {
	case anim.Idle, anim.Completed:
		return m.value, m.state
	case anim.Delayed:
		left, carry := anim.ConsumeDelay(m.state.Remaining, dt)
		if left > 0 {
			m.state.Remaining = left
			return m.value, m.state
		}
		m.state.Phase = anim.Running
		m.state.Remaining = 0
		dt = carry
	case anim.LoopPending:
		m.restart()
		m.state.Phase = anim.Running
	}

	v, done := m.step(dt)
	m.value = v
	if !done {
		return v, m.state
	}

	again := m.loops.Finish()
	m.state.Iteration = m.loops.Iteration()
	if again {
		m.state.Phase = anim.LoopPending
		m.emit(LoopEnded)
	} else {
		m.state.Phase = anim.Completed
		m.release()
		m.emit(Finished)
	}
	st := m.state
	if !again || m.timing.Notify == anim.NotifyEachLoop {
		m.timing.OnComplete.Fire()
	}
	return v, st
}

func (m *Motion[T]) step(dt time.Duration) (T, bool) {
	switch m.program {
	case programSimple:
		if m.needsScratch() {
			var v T
			var done bool
			m.pools.Scratch.With(func(sc *integrators.Scratch[T]) {
				v, done = m.seg.Step(dt, sc)
			})
			return v, done
		}
		return m.seg.Step(dt, nil)

	case programKeyframes:
		m.elapsed += dt
		p := integrators.TweenProgress(m.elapsed, m.track.Duration)
		at := p
		if m.loops.Reversed() {
			at = 1 - p
		}
		v, err := m.track.Evaluate(at)
		if err != nil {
			m.log.Error(err, "keyframe track emptied while running")
			return m.value, true
		}
		if dt > 0 {
			m.kfVel = v.Sub(m.value).Scale(1 / dt.Seconds())
		}
		return v, p >= 1

	case programSequence:
		if m.needsScratch() {
			var v T
			var done bool
			m.pools.Scratch.With(func(sc *integrators.Scratch[T]) {
				v, done = m.player.Advance(dt, sc)
			})
			return v, done
		}
		return m.player.Advance(dt, nil)
	}
	return m.value, true
}

func (m *Motion[T]) needsScratch() bool {
	return m.scheme == integrators.RK4
}

// restart begins the next loop iteration.
func (m *Motion[T]) restart() {
	var zero T
	switch m.program {
	case programSimple:
		from, to := m.origin, m.target
		if m.loops.Reversed() {
			from, to = to, from
		}
		m.seg = integrators.NewSegment(from, to, zero, *m.cfg.Value(), m.scheme)
		m.value = from
	case programKeyframes:
		m.elapsed = 0
		m.kfVel = zero
		if m.loops.Reversed() {
			m.value = m.track.Last()
		} else {
			m.value = m.track.First()
		}
	case programSequence:
		m.player.Restart(m.value)
	}
}

// Stop freezes the current value and returns to Idle.
func (m *Motion[T]) Stop() {
	wasActive := m.state.Active()
	m.release()
	m.program = programNone
	m.state = anim.State{Phase: anim.Idle}
	if wasActive {
		m.emit(Stopped)
	}
}

// Reset stops and restores the initial value.
func (m *Motion[T]) Reset() {
	m.Stop()
	m.value = m.initial
}

// Close stops the motion, returns pooled entries and closes subscriber
// channels. The motion must not be used afterwards.
func (m *Motion[T]) Close() {
	m.Stop()
	m.closeSubscribers()
}

func (m *Motion[T]) release() {
	if m.cfg != nil {
		m.cfg.Release()
		m.cfg = nil
	}
}

func (m *Motion[T]) Value() T { return m.value }

func (m *Motion[T]) State() anim.State { return m.state }

func (m *Motion[T]) Scheme() integrators.Scheme { return m.scheme }

// Target is the destination of the running simple animation.
func (m *Motion[T]) Target() T { return m.target }

// Velocity is the rate of change of the value in units per second. It is
// zero unless the motion is running.
func (m *Motion[T]) Velocity() T {
	var zero T
	if m.state.Phase != anim.Running {
		return zero
	}
	switch m.program {
	case programSimple:
		return m.seg.Velocity()
	case programKeyframes:
		return m.kfVel
	case programSequence:
		return m.player.Velocity()
	}
	return zero
}

// Step reports the running sequence step, or -1.
func (m *Motion[T]) Step() int {
	if m.program != programSequence {
		return -1
	}
	return m.player.Index()
}
