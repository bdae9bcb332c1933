// Package sim drives a motion with a clock source, recording every frame
// and feeding pluggable metrics. It is the offline harness behind the
// command line tool; hosts embedding the engine call Advance directly.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/dynmotion/internal/clock"
	"github.com/san-kum/dynmotion/internal/motion"
	"github.com/san-kum/dynmotion/internal/value"
)

// Simulator records one motion.
type Simulator[T value.Animatable[T]] struct {
	motion    *motion.Motion[T]
	source    clock.Source
	project   func(T) Sample
	columns   []string
	metrics   []Metric
	observers []Observer
}

// New builds a simulator. project flattens a value into the named columns.
func New[T value.Animatable[T]](m *motion.Motion[T], src clock.Source, project func(T) Sample, columns ...string) *Simulator[T] {
	return &Simulator[T]{
		motion:    m,
		source:    src,
		project:   project,
		columns:   columns,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator[T]) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator[T]) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances the motion until it stops being active or MaxDuration of
// simulated time has passed.
func (s *Simulator[T]) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if !s.motion.State().Active() {
		return nil, ErrNotStarted
	}

	result := &Result{
		Columns: s.columns,
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	x := s.project(s.motion.Value())
	result.Samples = append(result.Samples, x)
	result.Times = append(result.Times, t)
	result.Phases = append(result.Phases, s.motion.State().Phase)

	maxT := cfg.MaxDuration.Seconds()
	for t < maxT {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		dt := s.source.Delta()
		v, st := s.motion.Advance(dt)
		t += dt.Seconds()
		result.Ticks++

		x = s.project(v)
		if !x.IsValid() {
			return result, fmt.Errorf("tick %d at %.4fs: %w", result.Ticks, t, ErrDiverged)
		}
		result.Samples = append(result.Samples, x)
		result.Times = append(result.Times, t)
		result.Phases = append(result.Phases, st.Phase)

		for _, obs := range s.observers {
			obs.OnFrame(x, st, t)
		}
		if !st.Active() {
			result.Completed = true
			break
		}
	}

	target := cfg.Target
	if target == nil {
		target = result.Final()
	}
	for i, f := range result.Samples {
		for _, m := range s.metrics {
			m.Observe(f, target, result.Times[i])
		}
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (s *Simulator[T]) validateConfig(cfg Config) error {
	if cfg.MaxDuration <= 0 {
		return fmt.Errorf("max duration must be positive, got %s", cfg.MaxDuration)
	}
	if s.source == nil {
		return fmt.Errorf("clock source is required")
	}
	if s.project == nil {
		return fmt.Errorf("projection is required")
	}
	return nil
}
