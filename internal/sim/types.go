package sim

import (
	"errors"
	"math"
	"time"

	"github.com/san-kum/dynmotion/internal/anim"
)

var (
	// ErrNotStarted indicates a run over a motion with nothing to play.
	ErrNotStarted = errors.New("sim: motion is idle")

	// ErrDiverged indicates a recorded sample became NaN or infinite.
	ErrDiverged = errors.New("sim: motion diverged (NaN or Inf detected)")
)

// Sample is one recorded frame projected to plain numbers.
type Sample []float64

func (s Sample) Clone() Sample {
	c := make(Sample, len(s))
	copy(c, s)
	return c
}

func (s Sample) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Distance is the Euclidean distance between s and other over their common
// length.
func (s Sample) Distance(other Sample) float64 {
	sum := 0.0
	for i := range s {
		if i >= len(other) {
			break
		}
		d := s[i] - other[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Metric accumulates a statistic over a run.
type Metric interface {
	Name() string
	Observe(x, target Sample, t float64)
	Value() float64
	Reset()
}

// Observer sees every recorded frame.
type Observer interface {
	OnFrame(x Sample, st anim.State, t float64)
}

type Config struct {
	// MaxDuration bounds the simulated time.
	MaxDuration time.Duration
	// Target is handed to metrics; nil uses the last sample of the run.
	Target Sample
}

type Result struct {
	Columns   []string
	Times     []float64
	Samples   []Sample
	Phases    []anim.Phase
	Ticks     int
	Completed bool
	Metrics   map[string]float64
}

// Final returns the last recorded sample.
func (r *Result) Final() Sample {
	if len(r.Samples) == 0 {
		return nil
	}
	return r.Samples[len(r.Samples)-1]
}

// Column extracts one column of the samples.
func (r *Result) Column(i int) []float64 {
	out := make([]float64, 0, len(r.Samples))
	for _, s := range r.Samples {
		if i < len(s) {
			out = append(out, s[i])
		}
	}
	return out
}
