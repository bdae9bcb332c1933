package motion

import (
	"fmt"

	"github.com/san-kum/dynmotion/internal/value"
)

type EventKind int

const (
	Started EventKind = iota
	LoopEnded
	Finished
	Stopped
)

func (k EventKind) String() string {
	switch k {
	case Started:
		return "started"
	case LoopEnded:
		return "loop-ended"
	case Finished:
		return "finished"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is delivered to subscribers on lifecycle transitions.
type Event[T value.Animatable[T]] struct {
	Kind      EventKind
	Iteration int
	Value     T
}

type subscribers[T value.Animatable[T]] struct {
	next    int
	chans   map[int]chan Event[T]
	dropped int
}

// Subscribe returns a channel receiving lifecycle events and a cancel func
// that closes it. Events are dropped, never waited on, when the buffer is
// full.
func (m *Motion[T]) Subscribe(buf int) (<-chan Event[T], func()) {
	if buf < 1 {
		buf = 1
	}
	if m.subs.chans == nil {
		m.subs.chans = make(map[int]chan Event[T])
	}
	id := m.subs.next
	m.subs.next++
	ch := make(chan Event[T], buf)
	m.subs.chans[id] = ch
	return ch, func() {
		if c, ok := m.subs.chans[id]; ok {
			delete(m.subs.chans, id)
			close(c)
		}
	}
}

// DroppedEvents counts events discarded because a subscriber was full.
func (m *Motion[T]) DroppedEvents() int {
	return m.subs.dropped
}

func (m *Motion[T]) emit(kind EventKind) {
	if len(m.subs.chans) == 0 {
		return
	}
	ev := Event[T]{Kind: kind, Iteration: m.state.Iteration, Value: m.value}
	for _, ch := range m.subs.chans {
		select {
		case ch <- ev:
		default:
			m.subs.dropped++
			m.log.V(1).Info("dropped motion event", "kind", kind.String())
		}
	}
}

func (m *Motion[T]) closeSubscribers() {
	for id, ch := range m.subs.chans {
		delete(m.subs.chans, id)
		close(ch)
	}
}
