package metrics

import (
	"github.com/san-kum/dynmotion/internal/sim"
)

// PathLength sums the distance travelled between frames.
type PathLength struct {
	last  sim.Sample
	total float64
}

func NewPathLength() *PathLength {
	return &PathLength{}
}

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(x, target sim.Sample, t float64) {
	if p.last != nil {
		p.total += x.Distance(p.last)
	}
	p.last = x.Clone()
}

func (p *PathLength) Value() float64 { return p.total }

func (p *PathLength) Reset() {
	p.last = nil
	p.total = 0
}

// Standard returns the metric set recorded by default.
func Standard(band float64) []sim.Metric {
	return []sim.Metric{
		NewSettleTime(band),
		NewOvershoot(),
		NewStability(1.5),
		NewPathLength(),
		NewRinging(),
	}
}
