// Package anim provides the shared vocabulary of the motion engine:
// animation configuration, loop modes, lifecycle states, completion
// callbacks and validation errors.
//
// The package has no dependency on value types; integrators, keyframe
// tracks, sequences and the motion state machine all build on it.
//
//   - [Config]: spring or tween profile plus [Timing]
//   - [LoopMode] and [LoopCounter]: iteration bookkeeping
//   - [State]: the phase reported by every Advance call
//   - [Callback]: a completion callback safe to share between motions
//
// # Example
//
//	spring, err := anim.NewSpring(170, 26, 1)
//	if err != nil {
//		return err
//	}
//	cfg := anim.SpringConfig(spring).WithLoop(anim.Times(3))
package anim
