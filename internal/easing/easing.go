// Package easing holds the closed catalogue of easing curves used by tweens
// and keyframe tracks. Curves map normalized progress in [0,1] to eased
// progress; back and elastic curves leave [0,1] in between.
package easing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// Func maps normalized progress to eased progress. A nil Func means linear.
type Func func(t float64) float64

// Apply evaluates f, treating nil as linear.
func (f Func) Apply(t float64) float64 {
	if f == nil {
		return t
	}
	return f(t)
}

// Kind enumerates the built-in curves.
type Kind int

const (
	Linear Kind = iota
	InQuad
	OutQuad
	InOutQuad
	InCubic
	OutCubic
	InOutCubic
	InQuart
	OutQuart
	InOutQuart
	InQuint
	OutQuint
	InOutQuint
	InSine
	OutSine
	InOutSine
	InExpo
	OutExpo
	InOutExpo
	InCirc
	OutCirc
	InOutCirc
	InBack
	OutBack
	InOutBack
	InElastic
	OutElastic
	InOutElastic
	InBounce
	OutBounce
	InOutBounce
	SmoothStep
	numKinds
)

var names = [numKinds]string{
	"linear",
	"in-quad", "out-quad", "in-out-quad",
	"in-cubic", "out-cubic", "in-out-cubic",
	"in-quart", "out-quart", "in-out-quart",
	"in-quint", "out-quint", "in-out-quint",
	"in-sine", "out-sine", "in-out-sine",
	"in-expo", "out-expo", "in-out-expo",
	"in-circ", "out-circ", "in-out-circ",
	"in-back", "out-back", "in-out-back",
	"in-elastic", "out-elastic", "in-out-elastic",
	"in-bounce", "out-bounce", "in-out-bounce",
	"smoothstep",
}

var table = [numKinds]Func{
	func(t float64) float64 { return t },
	FromTween(ease.InQuad), FromTween(ease.OutQuad), FromTween(ease.InOutQuad),
	FromTween(ease.InCubic), FromTween(ease.OutCubic), FromTween(ease.InOutCubic),
	FromTween(ease.InQuart), FromTween(ease.OutQuart), FromTween(ease.InOutQuart),
	FromTween(ease.InQuint), FromTween(ease.OutQuint), FromTween(ease.InOutQuint),
	FromTween(ease.InSine), FromTween(ease.OutSine), FromTween(ease.InOutSine),
	FromTween(ease.InExpo), FromTween(ease.OutExpo), FromTween(ease.InOutExpo),
	FromTween(ease.InCirc), FromTween(ease.OutCirc), FromTween(ease.InOutCirc),
	FromTween(ease.InBack), FromTween(ease.OutBack), FromTween(ease.InOutBack),
	FromTween(ease.InElastic), FromTween(ease.OutElastic), FromTween(ease.InOutElastic),
	FromTween(ease.InBounce), FromTween(ease.OutBounce), FromTween(ease.InOutBounce),
	func(t float64) float64 { return t * t * (3 - 2*t) },
}

// Func returns the curve for k. Unknown kinds fall back to linear.
func (k Kind) Func() Func {
	if k < 0 || k >= numKinds {
		return table[Linear]
	}
	return table[k]
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return names[k]
}

// Of is shorthand for k.Func().
func Of(k Kind) Func {
	return k.Func()
}

// Parse resolves a curve name such as "out-cubic" or "OutCubic".
func Parse(name string) (Kind, error) {
	n := normalize(name)
	for k, s := range names {
		if normalize(s) == n {
			return Kind(k), nil
		}
	}
	return Linear, fmt.Errorf("easing: unknown curve %q", name)
}

// Names lists every built-in curve name in sorted order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names[:])
	sort.Strings(out)
	return out
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	return s
}

// FromTween adapts a Penner-style (t, b, c, d) function. Endpoints are
// pinned so that 0 maps to 0 and 1 maps to 1 exactly.
func FromTween(fn ease.TweenFunc) Func {
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// CubicBezier builds a CSS-style cubic-bezier(x1, y1, x2, y2) curve. x1 and
// x2 are clamped to [0,1] so the curve stays a function of t.
func CubicBezier(x1, y1, x2, y2 float64) Func {
	x1 = math.Max(0, math.Min(1, x1))
	x2 = math.Max(0, math.Min(1, x2))
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		lo, hi := 0.0, 1.0
		u := t
		for i := 0; i < 32; i++ {
			x := bezier(x1, x2, u)
			if math.Abs(x-t) < 1e-7 {
				break
			}
			if x < t {
				lo = u
			} else {
				hi = u
			}
			u = (lo + hi) / 2
		}
		return bezier(y1, y2, u)
	}
}

func bezier(a, b, m float64) float64 {
	return 3*a*(1-m)*(1-m)*m + 3*b*(1-m)*m*m + m*m*m
}

// Steps quantizes progress into n equal jumps, jumping at the end of each
// interval. n < 1 is treated as 1.
func Steps(n int) Func {
	if n < 1 {
		n = 1
	}
	return func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		if t <= 0 {
			return 0
		}
		return math.Floor(t*float64(n)) / float64(n)
	}
}
