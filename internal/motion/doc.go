// Package motion implements the per-animation state machine.
//
// A [Motion] owns a current value and advances it once per host frame:
//
//	m := motion.New(value.Float(0), motion.WithCadence(clock.Fixed))
//	if err := m.Start(100, anim.DefaultConfig()); err != nil {
//		return err
//	}
//	for {
//		v, st := m.Advance(time.Second / 120)
//		draw(v)
//		if !st.Active() {
//			break
//		}
//	}
//
// Lifecycle:
//
//	Idle --Start--> Delayed --delay elapsed--> Running
//	Running --converged, loops left--> LoopPending --Advance--> Running
//	Running --converged, last loop--> Completed
//	any --Stop--> Idle (value frozen)
//	any --Reset--> Idle (initial value restored)
//
// # Thread Safety
//
// A Motion is not safe for concurrent use. Pools and callbacks may be
// shared between motions driven from different goroutines.
package motion
