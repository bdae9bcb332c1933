package integrators

import (
	"math"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/value"
)

// MaxEulerStep is the largest stable substep for sp: the fixed step,
// further bounded by the oscillation and damping time scales.
func MaxEulerStep(sp anim.Spring) float64 {
	h := FixedStep
	if w := sp.AngularFrequency(); w > 0 {
		h = math.Min(h, 0.5/w)
	}
	if sp.Damping > 0 {
		h = math.Min(h, 0.5*sp.Mass/sp.Damping)
	}
	return h
}

// EulerStep performs one semi-implicit Euler step: velocity is updated from
// the spring force first, then position from the new velocity.
func EulerStep[T value.Animatable[T]](s SpringState[T], target T, sp anim.Spring, h float64) SpringState[T] {
	s.Vel = s.Vel.Add(accel(s.Pos, s.Vel, target, sp).Scale(h))
	s.Pos = s.Pos.Add(s.Vel.Scale(h))
	return s
}

// AdvanceEuler integrates dt seconds in equal substeps no larger than
// MaxEulerStep. It returns the number of substeps taken.
func AdvanceEuler[T value.Animatable[T]](s *SpringState[T], target T, sp anim.Spring, dt float64) int {
	if dt <= 0 {
		return 0
	}
	steps := int(math.Ceil(dt/MaxEulerStep(sp) - 1e-9))
	if steps < 1 {
		steps = 1
	}
	h := dt / float64(steps)
	for i := 0; i < steps; i++ {
		*s = EulerStep(*s, target, sp, h)
	}
	return steps
}
