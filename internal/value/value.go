package value

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Animatable is the capability set required by the integrators. The zero
// value of T must be the neutral element for Add.
type Animatable[T any] interface {
	Add(other T) T
	Sub(other T) T
	Scale(factor float64) T
	// Lerp interpolates towards target. t is not clamped, so springs and
	// back/elastic easings can overshoot.
	Lerp(target T, t float64) T
	// Magnitude is non-negative and zero only for the neutral value.
	Magnitude() float64
	// Epsilon is the convergence threshold of the type.
	Epsilon() float64
}

const (
	FloatEpsilon     = 0.01
	ColorEpsilon     = 1.0
	TransformEpsilon = 0.05
)

// Lerp is the scalar affine interpolation a + (b-a)*t.
func Lerp[F constraints.Float](a, b F, t float64) F {
	return a + (b-a)*F(t)
}

// Clamp limits v to [lo, hi].
func Clamp[F constraints.Float](v, lo, hi F) F {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Distance is the magnitude of the difference between a and b.
func Distance[T Animatable[T]](a, b T) float64 {
	return b.Sub(a).Magnitude()
}

// IsFinite reports whether v contains no NaN or Inf component.
func IsFinite[T Animatable[T]](v T) bool {
	m := v.Magnitude()
	return !math.IsNaN(m) && !math.IsInf(m, 0)
}

// Float is a scalar animatable value.
type Float float64

func (f Float) Add(other Float) Float              { return f + other }
func (f Float) Sub(other Float) Float              { return f - other }
func (f Float) Scale(factor float64) Float         { return Float(float64(f) * factor) }
func (f Float) Lerp(target Float, t float64) Float { return Lerp(f, target, t) }
func (f Float) Magnitude() float64                 { return math.Abs(float64(f)) }
func (f Float) Epsilon() float64                   { return FloatEpsilon }
