package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/clock"
	"github.com/san-kum/dynmotion/internal/integrators"
	"github.com/san-kum/dynmotion/internal/motion"
	"github.com/san-kum/dynmotion/internal/value"
)

func scalar(v value.Float) Sample { return Sample{float64(v)} }

type countMetric struct{ n int }

func (c *countMetric) Name() string                        { return "count" }
func (c *countMetric) Observe(x, target Sample, t float64) { c.n++ }
func (c *countMetric) Value() float64                      { return float64(c.n) }
func (c *countMetric) Reset()                              { c.n = 0 }

type phaseRecorder struct{ phases []anim.Phase }

func (p *phaseRecorder) OnFrame(x Sample, st anim.State, t float64) {
	p.phases = append(p.phases, st.Phase)
}

func startedMotion(t *testing.T, cfg anim.Config) *motion.Motion[value.Float] {
	t.Helper()
	m := motion.New(value.Float(0))
	if err := m.Start(100, cfg); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSimulatorRun(t *testing.T) {
	m := startedMotion(t, anim.TweenConfig(anim.Tween{Duration: 100 * time.Millisecond}))
	s := New(m, &clock.Steady{Step: 10 * time.Millisecond}, scalar, "x")
	cm := &countMetric{}
	obs := &phaseRecorder{}
	s.AddMetric(cm)
	s.AddObserver(obs)

	result, err := s.Run(context.Background(), Config{MaxDuration: time.Second})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Samples) != 11 || len(result.Times) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Samples))
	}
	if !result.Completed || result.Ticks != 10 {
		t.Errorf("completed = %v, ticks = %d", result.Completed, result.Ticks)
	}
	if result.Final()[0] != 100 {
		t.Errorf("final = %v", result.Final())
	}
	if result.Metrics["count"] != 11 {
		t.Errorf("metric saw %v frames, want 11", result.Metrics["count"])
	}
	if len(obs.phases) != 10 || obs.phases[9] != anim.Completed {
		t.Errorf("observer phases = %v", obs.phases)
	}
	if got := result.Column(0); len(got) != 11 || got[5] != 50 {
		t.Errorf("column = %v", got)
	}
}

func TestSimulatorStopsAtMaxDuration(t *testing.T) {
	m := startedMotion(t, anim.DefaultConfig().WithLoop(anim.Infinite()))
	s := New(m, clock.NewSteady(100), scalar, "x")

	result, err := s.Run(context.Background(), Config{MaxDuration: 500 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	if result.Completed {
		t.Error("infinite loop reported completion")
	}
	if result.Ticks < 49 || result.Ticks > 51 {
		t.Errorf("ticks = %d, want about 50", result.Ticks)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	m := startedMotion(t, anim.DefaultConfig())

	tests := []struct {
		name string
		sim  *Simulator[value.Float]
		cfg  Config
	}{
		{"zero duration", New(m, clock.NewSteady(60), scalar), Config{}},
		{"negative duration", New(m, clock.NewSteady(60), scalar), Config{MaxDuration: -time.Second}},
		{"no source", New(m, nil, scalar), Config{MaxDuration: time.Second}},
		{"no projection", New[value.Float](m, clock.NewSteady(60), nil), Config{MaxDuration: time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.sim.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}

func TestSimulatorIdleMotion(t *testing.T) {
	s := New(motion.New(value.Float(0)), clock.NewSteady(60), scalar)
	if _, err := s.Run(context.Background(), Config{MaxDuration: time.Second}); !errors.Is(err, ErrNotStarted) {
		t.Errorf("err = %v, want ErrNotStarted", err)
	}
}

func TestSimulatorCancel(t *testing.T) {
	m := startedMotion(t, anim.DefaultConfig().WithLoop(anim.Infinite()))
	s := New(m, clock.NewSteady(60), scalar)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Run(ctx, Config{MaxDuration: time.Hour}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestCompareSchemes(t *testing.T) {
	sp, err := anim.CriticallyDamped(100, 1)
	if err != nil {
		t.Fatal(err)
	}
	build := func(scheme integrators.Scheme) (*Simulator[value.Float], error) {
		m := motion.New(value.Float(0), motion.WithScheme(scheme))
		if err := m.Start(100, anim.SpringConfig(sp)); err != nil {
			return nil, err
		}
		return New(m, clock.NewSteady(120), scalar, "x"), nil
	}

	results, err := Compare(context.Background(), integrators.Schemes(), build, Config{MaxDuration: 5 * time.Second})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	for i, r := range results {
		if !r.Completed || r.Final()[0] != 100 {
			t.Errorf("%v: completed = %v, final = %v", integrators.Schemes()[i], r.Completed, r.Final())
		}
	}
}

func TestSampleDistance(t *testing.T) {
	a := Sample{0, 0}
	b := Sample{3, 4}
	if d := a.Distance(b); d != 5 {
		t.Errorf("distance = %v", d)
	}
	if (Sample{1, 2}).IsValid() != true {
		t.Error("finite sample reported invalid")
	}
}
