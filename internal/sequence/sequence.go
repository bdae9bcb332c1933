// Package sequence chains simple animations. Each step animates from the
// value where the previous step ended to its own target, with its own
// spring or tween profile, delay, loop mode and completion callback.
package sequence

import (
	"time"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/integrators"
	"github.com/san-kum/dynmotion/internal/value"
)

// Step is one leg of a sequence.
type Step[T value.Animatable[T]] struct {
	Target T
	Config anim.Config
}

// Sequence is an ordered list of steps. The embedded Timing applies to the
// sequence as a whole.
type Sequence[T value.Animatable[T]] struct {
	Steps []Step[T]
	anim.Timing
}

func New[T value.Animatable[T]](steps ...Step[T]) *Sequence[T] {
	return &Sequence[T]{Steps: steps}
}

// Then appends a step and returns the sequence for chaining.
func (s *Sequence[T]) Then(target T, cfg anim.Config) *Sequence[T] {
	s.Steps = append(s.Steps, Step[T]{Target: target, Config: cfg})
	return s
}

// Validate checks every step. Sequence-level loops must not alternate: a
// sequence always replays forward from where it stopped.
func (s *Sequence[T]) Validate() error {
	if len(s.Steps) == 0 {
		return anim.Invalid("sequence.Validate", "", nil, anim.ErrEmptySequence)
	}
	for i, st := range s.Steps {
		if err := st.Config.Validate(); err != nil {
			return anim.Invalid("sequence.Validate", "step", i, err)
		}
		if !value.IsFinite(st.Target) {
			return anim.Invalid("sequence.Validate", "target", i, anim.ErrInvalidValue)
		}
	}
	if s.Loop.Alternates() {
		return anim.Invalid("sequence.Validate", "loop", s.Loop, anim.ErrInvalidLoop)
	}
	return s.Timing.Validate()
}

// Player walks a sequence one tick at a time. It owns only step-local
// state; sequence-level delay and looping are driven by the caller through
// Restart.
type Player[T value.Animatable[T]] struct {
	seq    *Sequence[T]
	scheme integrators.Scheme

	index  int
	origin T
	seg    integrators.Segment[T]
	delay  time.Duration
	loops  anim.LoopCounter
	value  T
	done   bool
}

// NewPlayer positions a player at the first step, starting from start. seq
// must already be validated.
func NewPlayer[T value.Animatable[T]](seq *Sequence[T], start T, scheme integrators.Scheme) *Player[T] {
	p := &Player[T]{seq: seq, scheme: scheme}
	p.Restart(start)
	return p
}

// Restart rewinds to the first step with fresh step state, starting from
// the given value.
func (p *Player[T]) Restart(from T) {
	p.index = 0
	p.done = false
	p.begin(from)
}

func (p *Player[T]) begin(from T) {
	var zero T
	st := p.seq.Steps[p.index]
	p.origin = from
	p.value = from
	p.delay = st.Config.Delay
	p.loops = anim.NewLoopCounter(st.Config.Loop)
	p.seg = integrators.NewSegment(from, st.Target, zero, st.Config, p.scheme)
}

// Advance moves the current step forward by dt. It reports true once the
// last step has finished.
func (p *Player[T]) Advance(dt time.Duration, sc *integrators.Scratch[T]) (T, bool) {
	if p.done {
		return p.value, true
	}
	if p.delay > 0 {
		p.delay, dt = anim.ConsumeDelay(p.delay, dt)
		if p.delay > 0 {
			return p.value, false
		}
	}

	v, finished := p.seg.Step(dt, sc)
	p.value = v
	if !finished {
		return v, false
	}

	st := p.seq.Steps[p.index]
	again := p.loops.Finish()
	if !again || st.Config.Notify == anim.NotifyEachLoop {
		st.Config.OnComplete.Fire()
	}
	if again {
		from, to := p.origin, st.Target
		if p.loops.Reversed() {
			from, to = to, from
		}
		var zero T
		p.seg = integrators.NewSegment(from, to, zero, st.Config, p.scheme)
		return v, false
	}

	p.index++
	if p.index >= len(p.seq.Steps) {
		p.done = true
		return v, true
	}
	p.begin(v)
	return v, false
}

// Index is the zero-based position of the running step.
func (p *Player[T]) Index() int { return p.index }

func (p *Player[T]) Value() T { return p.value }

func (p *Player[T]) Velocity() T { return p.seg.Velocity() }

func (p *Player[T]) Done() bool { return p.done }

// Delayed reports the remaining delay of the current step.
func (p *Player[T]) Delayed() time.Duration { return p.delay }
