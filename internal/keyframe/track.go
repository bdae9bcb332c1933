// Package keyframe evaluates multi-point animation tracks: a duration plus
// keyframes at normalized offsets in [0,1], each with an optional easing for
// the interval that ends at it.
package keyframe

import (
	"math"
	"sort"
	"time"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/easing"
	"github.com/san-kum/dynmotion/internal/integrators"
	"github.com/san-kum/dynmotion/internal/value"
)

// Keyframe pins Value at Offset. Easing shapes the interval arriving at this
// keyframe; nil falls back to the track default.
type Keyframe[T value.Animatable[T]] struct {
	Value  T
	Offset float64
	Easing easing.Func
}

// Track is a sorted set of keyframes played over Duration.
type Track[T value.Animatable[T]] struct {
	Duration time.Duration
	Easing   easing.Func
	anim.Timing

	frames []Keyframe[T]
}

// New builds a track, validating every keyframe.
func New[T value.Animatable[T]](d time.Duration, frames ...Keyframe[T]) (*Track[T], error) {
	if d < 0 {
		return nil, anim.Invalid("keyframe.New", "duration", d, anim.ErrInvalidDuration)
	}
	t := &Track[T]{Duration: d}
	for _, k := range frames {
		if err := t.Add(k); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add inserts k keeping offsets sorted. Offsets must be finite, within
// [0,1] and not already present.
func (t *Track[T]) Add(k Keyframe[T]) error {
	if math.IsNaN(k.Offset) || k.Offset < 0 || k.Offset > 1 {
		return anim.Invalid("keyframe.Add", "offset", k.Offset, anim.ErrInvalidOffset)
	}
	i := sort.Search(len(t.frames), func(i int) bool { return t.frames[i].Offset >= k.Offset })
	if i < len(t.frames) && t.frames[i].Offset == k.Offset {
		return anim.Invalid("keyframe.Add", "offset", k.Offset, anim.ErrDuplicateOffset)
	}
	t.frames = append(t.frames, Keyframe[T]{})
	copy(t.frames[i+1:], t.frames[i:])
	t.frames[i] = k
	return nil
}

// Frames returns a copy of the keyframes in offset order.
func (t *Track[T]) Frames() []Keyframe[T] {
	out := make([]Keyframe[T], len(t.frames))
	copy(out, t.frames)
	return out
}

func (t *Track[T]) Len() int { return len(t.frames) }

// Validate checks the track is playable.
func (t *Track[T]) Validate() error {
	if len(t.frames) == 0 {
		return anim.Invalid("keyframe.Track", "", nil, anim.ErrEmptyTrack)
	}
	if t.Duration < 0 {
		return anim.Invalid("keyframe.Track", "duration", t.Duration, anim.ErrInvalidDuration)
	}
	return t.Timing.Validate()
}

// First and Last return the boundary values. They panic on an empty track.
func (t *Track[T]) First() T { return t.frames[0].Value }

func (t *Track[T]) Last() T { return t.frames[len(t.frames)-1].Value }

// Evaluate returns the value at normalized progress p. Progress before the
// first keyframe holds the first value; after the last it holds the last.
func (t *Track[T]) Evaluate(p float64) (T, error) {
	var zero T
	n := len(t.frames)
	if n == 0 {
		return zero, anim.ErrEmptyTrack
	}
	if p <= t.frames[0].Offset {
		return t.frames[0].Value, nil
	}
	if p >= t.frames[n-1].Offset {
		return t.frames[n-1].Value, nil
	}
	for i := 1; i < n; i++ {
		b := t.frames[i]
		if p > b.Offset {
			continue
		}
		a := t.frames[i-1]
		local := (p - a.Offset) / (b.Offset - a.Offset)
		ease := b.Easing
		if ease == nil {
			ease = t.Easing
		}
		return a.Value.Lerp(b.Value, ease.Apply(local)), nil
	}
	return t.frames[n-1].Value, nil
}

// At evaluates the track elapsed time into playback.
func (t *Track[T]) At(elapsed time.Duration) (T, error) {
	return t.Evaluate(integrators.TweenProgress(elapsed, t.Duration))
}
