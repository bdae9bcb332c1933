// Package value defines the animatable value abstraction and the built-in
// value types driven by the integrators.
//
// Any type T satisfying [Animatable] can be animated:
//
//   - [Float]: scalar, epsilon 0.01
//   - [Color]: RGBA in 8-bit channel units, epsilon 1.0
//   - [Transform]: 2D translation, uniform zoom and rotation, epsilon 0.05
//   - [Transform3D]: 3D translation, per-axis size and Euler rotation, epsilon 0.05
//
// The Go zero value of each type is its neutral (additive identity) value.
//
// # Example
//
//	a := value.Float(0)
//	b := value.Float(100)
//	mid := a.Lerp(b, 0.5) // 50
package value
