package anim

import "fmt"

type loopKind int

const (
	loopNone loopKind = iota
	loopTimes
	loopInfinite
	loopAlternate
	loopAlternateTimes
)

// LoopMode controls how many times an animation plays. The zero value plays
// once.
type LoopMode struct {
	kind  loopKind
	count int
}

// None plays once.
func None() LoopMode { return LoopMode{} }

// Times plays n iterations in total. n must be at least 1.
func Times(n int) LoopMode { return LoopMode{kind: loopTimes, count: n} }

// Infinite never completes.
func Infinite() LoopMode { return LoopMode{kind: loopInfinite} }

// Alternate plays forward and backward forever.
func Alternate() LoopMode { return LoopMode{kind: loopAlternate} }

// AlternateTimes plays n iterations, reversing direction on each.
func AlternateTimes(n int) LoopMode { return LoopMode{kind: loopAlternateTimes, count: n} }

func (l LoopMode) Validate() error {
	if (l.kind == loopTimes || l.kind == loopAlternateTimes) && l.count < 1 {
		return Invalid("anim.LoopMode", "count", l.count, ErrInvalidLoop)
	}
	return nil
}

// Plays returns the total iteration count, or -1 when unbounded.
func (l LoopMode) Plays() int {
	switch l.kind {
	case loopTimes, loopAlternateTimes:
		return l.count
	case loopInfinite, loopAlternate:
		return -1
	default:
		return 1
	}
}

// Alternates reports whether odd iterations run in reverse.
func (l LoopMode) Alternates() bool {
	return l.kind == loopAlternate || l.kind == loopAlternateTimes
}

func (l LoopMode) String() string {
	switch l.kind {
	case loopTimes:
		return fmt.Sprintf("times(%d)", l.count)
	case loopInfinite:
		return "infinite"
	case loopAlternate:
		return "alternate"
	case loopAlternateTimes:
		return fmt.Sprintf("alternate(%d)", l.count)
	default:
		return "none"
	}
}

// LoopCounter tracks completed iterations against a LoopMode.
type LoopCounter struct {
	mode LoopMode
	done int
}

func NewLoopCounter(mode LoopMode) LoopCounter {
	return LoopCounter{mode: mode}
}

// Finish records the end of one iteration and reports whether another
// iteration follows.
func (c *LoopCounter) Finish() bool {
	c.done++
	plays := c.mode.Plays()
	return plays < 0 || c.done < plays
}

// Iteration is the zero-based index of the running iteration.
func (c *LoopCounter) Iteration() int {
	return c.done
}

// Reversed reports whether the running iteration plays backwards.
func (c *LoopCounter) Reversed() bool {
	return c.mode.Alternates() && c.done%2 == 1
}

func (c *LoopCounter) Mode() LoopMode {
	return c.mode
}

func (c *LoopCounter) Reset() {
	c.done = 0
}
