package metrics

import (
	"github.com/san-kum/dynmotion/internal/sim"
)

// Overshoot measures how far the value travels past the target, as a
// fraction of the initial distance, projected on the start-to-target axis.
type Overshoot struct {
	start sim.Sample
	peak  float64
}

func NewOvershoot() *Overshoot {
	return &Overshoot{}
}

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(x, target sim.Sample, t float64) {
	if o.start == nil {
		o.start = x.Clone()
		return
	}
	var axis, past, norm float64
	for i := range x {
		if i >= len(target) || i >= len(o.start) {
			break
		}
		a := target[i] - o.start[i]
		axis += a * a
		past += (x[i] - target[i]) * a
	}
	if axis == 0 {
		return
	}
	norm = past / axis
	if norm > o.peak {
		o.peak = norm
	}
}

func (o *Overshoot) Value() float64 { return o.peak }

func (o *Overshoot) Reset() {
	o.start = nil
	o.peak = 0
}
