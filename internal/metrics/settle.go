package metrics

import (
	"github.com/san-kum/dynmotion/internal/sim"
)

// SettleTime is the time after which the value stays within band of the
// target for the rest of the run.
type SettleTime struct {
	band    float64
	settled float64
	inside  bool
}

func NewSettleTime(band float64) *SettleTime {
	return &SettleTime{band: band}
}

func (s *SettleTime) Name() string { return "settle_time" }

func (s *SettleTime) Observe(x, target sim.Sample, t float64) {
	if x.Distance(target) <= s.band {
		if !s.inside {
			s.settled = t
			s.inside = true
		}
		return
	}
	s.inside = false
}

// Value returns -1 when the run never settled.
func (s *SettleTime) Value() float64 {
	if !s.inside {
		return -1
	}
	return s.settled
}

func (s *SettleTime) Reset() {
	s.settled = 0
	s.inside = false
}
