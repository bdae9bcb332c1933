package anim

import "sync"

// CompletionPolicy selects when a completion callback fires for looping
// animations.
type CompletionPolicy int

const (
	// NotifyFinal fires once, when the last iteration completes.
	NotifyFinal CompletionPolicy = iota
	// NotifyEachLoop fires at the end of every iteration, the last included.
	NotifyEachLoop
)

func (p CompletionPolicy) String() string {
	if p == NotifyEachLoop {
		return "each-loop"
	}
	return "final"
}

// Callback is a completion callback that may be shared by several motions,
// possibly driven from different goroutines. Invocations are serialized.
type Callback struct {
	mu    sync.Mutex
	fn    func()
	calls int
}

func NewCallback(fn func()) *Callback {
	return &Callback{fn: fn}
}

// Fire runs the callback. A nil receiver is a no-op.
func (c *Callback) Fire() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.fn != nil {
		c.fn()
	}
}

// Calls returns how many times Fire has run.
func (c *Callback) Calls() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
