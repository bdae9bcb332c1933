package anim

import (
	"fmt"
	"time"
)

// Phase is the lifecycle position of a motion.
type Phase int

const (
	Idle Phase = iota
	Delayed
	Running
	Completed
	// LoopPending marks the tick on which an iteration ended and another
	// follows. The next Advance restarts from the loop origin.
	LoopPending
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Delayed:
		return "delayed"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case LoopPending:
		return "loop-pending"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is reported by every Advance. Remaining is only meaningful while
// Delayed; Iteration counts finished loop iterations.
type State struct {
	Phase     Phase
	Remaining time.Duration
	Iteration int
}

// Active reports whether the motion still needs ticks.
func (s State) Active() bool {
	return s.Phase == Delayed || s.Phase == Running || s.Phase == LoopPending
}

func (s State) String() string {
	if s.Phase == Delayed {
		return fmt.Sprintf("delayed(%s)", s.Remaining)
	}
	return s.Phase.String()
}

// ConsumeDelay subtracts dt from a pending delay. It returns the delay
// still pending and the part of dt left over once the delay has elapsed.
func ConsumeDelay(remaining, dt time.Duration) (left, carry time.Duration) {
	if dt < remaining {
		return remaining - dt, 0
	}
	return 0, dt - remaining
}
