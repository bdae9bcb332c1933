// Package integrators advances spring and tween motion for any
// value.Animatable type.
//
// Springs integrate m*x'' = -k*(x - target) - c*x' with one of three
// schemes:
//
//   - [SemiImplicitEuler]: fixed 1/120 s substeps, for fixed-cadence hosts
//   - [RK4]: classic Runge-Kutta with adaptive step doubling, for
//     variable-cadence hosts
//   - [Analytic]: closed-form damped oscillator, exact for any step
//
// Tweens evaluate an easing curve over normalized elapsed time.
package integrators

import (
	"fmt"
	"strings"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/value"
)

// FixedStep is the substep used by SemiImplicitEuler, in seconds.
const FixedStep = 1.0 / 120.0

// Scheme selects the spring integration method.
type Scheme int

const (
	SemiImplicitEuler Scheme = iota
	RK4
	Analytic
)

func (s Scheme) String() string {
	switch s {
	case SemiImplicitEuler:
		return "euler"
	case RK4:
		return "rk4"
	case Analytic:
		return "analytic"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(name) {
	case "euler", "semi-implicit", "symplectic":
		return SemiImplicitEuler, nil
	case "rk4", "runge-kutta":
		return RK4, nil
	case "analytic", "harmonica":
		return Analytic, nil
	}
	return 0, fmt.Errorf("integrators: unknown scheme %q", name)
}

// Schemes lists every scheme in declaration order.
func Schemes() []Scheme {
	return []Scheme{SemiImplicitEuler, RK4, Analytic}
}

// SpringState is the phase-space point of a spring.
type SpringState[T value.Animatable[T]] struct {
	Pos T
	Vel T
}

// accel returns the spring acceleration at (pos, vel).
func accel[T value.Animatable[T]](pos, vel, target T, sp anim.Spring) T {
	return pos.Sub(target).Scale(-sp.Stiffness / sp.Mass).Add(vel.Scale(-sp.Damping / sp.Mass))
}

// Converged reports whether both the distance to target and the speed are
// below eps.
func Converged[T value.Animatable[T]](s SpringState[T], target T, eps float64) bool {
	return target.Sub(s.Pos).Magnitude() < eps && s.Vel.Magnitude() < eps
}

// InitialVelocity turns a scalar launch speed into a velocity pointing from
// start to target. A zero-length path yields zero velocity.
func InitialVelocity[T value.Animatable[T]](start, target T, speed float64) T {
	var zero T
	if speed == 0 {
		return zero
	}
	dir := target.Sub(start)
	mag := dir.Magnitude()
	if mag == 0 {
		return zero
	}
	return dir.Scale(speed / mag)
}
