package integrators

import (
	"math"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/value"
)

// Scratch holds the RK4 stage derivatives and step-doubling trial states.
// It is borrowed from a pool for the duration of one advance.
type Scratch[T value.Animatable[T]] struct {
	kx, kv     [4]T
	full, half SpringState[T]

	Steps    int
	Rejected int
}

// Reset clears the scratch for reuse.
func (s *Scratch[T]) Reset() {
	*s = Scratch[T]{}
}

// Adaptive controls RK4 step doubling.
type Adaptive struct {
	Tolerance float64
	MinDt     float64
	MaxDt     float64
}

// DefaultAdaptive scales the local error tolerance to the convergence
// threshold of the value type.
func DefaultAdaptive(eps float64) Adaptive {
	return Adaptive{
		Tolerance: eps * 1e-2,
		MinDt:     1e-5,
		MaxDt:     1.0 / 60.0,
	}
}

// RK4Step performs one classic Runge-Kutta step of size h.
func RK4Step[T value.Animatable[T]](s SpringState[T], target T, sp anim.Spring, h float64, sc *Scratch[T]) SpringState[T] {
	sc.kx[0] = s.Vel
	sc.kv[0] = accel(s.Pos, s.Vel, target, sp)

	x := s.Pos.Add(sc.kx[0].Scale(h / 2))
	v := s.Vel.Add(sc.kv[0].Scale(h / 2))
	sc.kx[1] = v
	sc.kv[1] = accel(x, v, target, sp)

	x = s.Pos.Add(sc.kx[1].Scale(h / 2))
	v = s.Vel.Add(sc.kv[1].Scale(h / 2))
	sc.kx[2] = v
	sc.kv[2] = accel(x, v, target, sp)

	x = s.Pos.Add(sc.kx[2].Scale(h))
	v = s.Vel.Add(sc.kv[2].Scale(h))
	sc.kx[3] = v
	sc.kv[3] = accel(x, v, target, sp)

	h6 := h / 6
	dx := sc.kx[0].Add(sc.kx[1].Scale(2)).Add(sc.kx[2].Scale(2)).Add(sc.kx[3])
	dv := sc.kv[0].Add(sc.kv[1].Scale(2)).Add(sc.kv[2].Scale(2)).Add(sc.kv[3])
	return SpringState[T]{
		Pos: s.Pos.Add(dx.Scale(h6)),
		Vel: s.Vel.Add(dv.Scale(h6)),
	}
}

// MaxRK4Step bounds the RK4 step for sp to the method's stability region:
// 2.5/ω for the oscillation and m/c for the damping time scale.
func MaxRK4Step(sp anim.Spring, maxDt float64) float64 {
	h := maxDt
	if w := sp.AngularFrequency(); w > 0 {
		h = math.Min(h, 2.5/w)
	}
	if sp.Damping > 0 {
		h = math.Min(h, sp.Mass/sp.Damping)
	}
	return h
}

// AdvanceRK4 integrates dt seconds with step doubling: each trial step of
// size h is compared with two steps of h/2, rejected and halved while the
// difference exceeds the tolerance, and grown after very accurate steps.
// Steps never exceed MaxRK4Step. A trial that is still non-finite at the
// minimum step hands the rest of dt to the closed-form solution.
// h carries the suggested step between calls; it returns the next suggestion.
func AdvanceRK4[T value.Animatable[T]](s *SpringState[T], target T, sp anim.Spring, dt, h float64, cfg Adaptive, sc *Scratch[T]) float64 {
	if dt <= 0 {
		return h
	}
	limit := MaxRK4Step(sp, cfg.MaxDt)
	minDt := math.Min(cfg.MinDt, limit)
	if h <= 0 || h > limit {
		h = limit
	}
	remaining := dt
	for remaining > 1e-12 {
		step := math.Min(h, remaining)

		sc.full = RK4Step(*s, target, sp, step, sc)
		sc.half = RK4Step(*s, target, sp, step/2, sc)
		sc.half = RK4Step(sc.half, target, sp, step/2, sc)

		errPos := sc.full.Pos.Sub(sc.half.Pos).Magnitude()
		errVel := sc.full.Vel.Sub(sc.half.Vel).Magnitude()
		e := math.Max(errPos, errVel)
		bad := math.IsNaN(e) || math.IsInf(e, 0) || !value.IsFinite(sc.half.Pos) || !value.IsFinite(sc.half.Vel)

		if (bad || e > cfg.Tolerance) && step > minDt {
			h = math.Max(step/2, minDt)
			sc.Rejected++
			continue
		}
		if bad {
			var osc oscillator
			*s = analyticStep(*s, target, sp, remaining, &osc)
			sc.Steps++
			return h
		}

		*s = sc.half
		remaining -= step
		sc.Steps++

		if e < cfg.Tolerance/10 && step == h {
			h = math.Min(h*2, limit)
		}
	}
	return h
}
