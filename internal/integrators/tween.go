package integrators

import (
	"time"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/value"
)

// TweenProgress returns the normalized progress of elapsed over d, clamped
// to [0,1]. A zero duration is complete immediately.
func TweenProgress(elapsed, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return value.Clamp(float64(elapsed)/float64(d), 0, 1)
}

// TweenValue evaluates a tween at elapsed. Progress 0 yields from and
// progress 1 yields to, exactly.
func TweenValue[T value.Animatable[T]](from, to T, tw anim.Tween, elapsed time.Duration) (T, bool) {
	p := TweenProgress(elapsed, tw.Duration)
	switch p {
	case 0:
		return from, false
	case 1:
		return to, true
	}
	return from.Lerp(to, tw.Easing.Apply(p)), false
}
