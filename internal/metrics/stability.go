package metrics

import (
	"github.com/san-kum/dynmotion/internal/sim"
)

// Stability is the fraction of frames whose distance to the target stays
// within threshold times the initial distance. Divergent integration drives
// it towards zero.
type Stability struct {
	name       string
	threshold  float64
	start      float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x, target sim.Sample, t float64) {
	d := x.Distance(target)
	if s.samples == 0 {
		s.start = d
	}
	s.samples++
	if d > s.threshold*s.start && d > 0 {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.start = 0
}
