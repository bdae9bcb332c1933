package integrators

import (
	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/value"
)

// oscillator caches the closed-form transition coefficients of a spring for
// one step size. The damped oscillator is linear in displacement and
// velocity, so the scalar harmonica solution extends to any value type.
type oscillator struct {
	dt     float64
	spring anim.Spring
	pp, pv float64
	vp, vv float64
	ok     bool
}

func (o *oscillator) prepare(sp anim.Spring, dt float64) {
	if o.ok && o.dt == dt && o.spring == sp {
		return
	}
	h := harmonica.NewSpring(dt, sp.AngularFrequency(), sp.DampingRatio())
	o.pp, o.vp = h.Update(1, 0, 0)
	o.pv, o.vv = h.Update(0, 1, 0)
	o.dt, o.spring, o.ok = dt, sp, true
}

// analyticStep advances the spring by exactly dt seconds.
func analyticStep[T value.Animatable[T]](s SpringState[T], target T, sp anim.Spring, dt float64, o *oscillator) SpringState[T] {
	if dt <= 0 {
		return s
	}
	o.prepare(sp, dt)
	disp := s.Pos.Sub(target)
	return SpringState[T]{
		Pos: target.Add(disp.Scale(o.pp)).Add(s.Vel.Scale(o.pv)),
		Vel: disp.Scale(o.vp).Add(s.Vel.Scale(o.vv)),
	}
}
