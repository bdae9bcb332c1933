package main

import (
	"context"
	"testing"

	"github.com/go-logr/logr"

	"github.com/san-kum/dynmotion/internal/config"
	"github.com/san-kum/dynmotion/internal/integrators"
	"github.com/san-kum/dynmotion/internal/motion"
	"github.com/san-kum/dynmotion/internal/value"
)

func TestRunFadePreset(t *testing.T) {
	cfg := config.GetPreset("fade")
	r, err := runnerFor(cfg.Kind)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := motionOptions(cfg, logr.Discard())
	if err != nil {
		t.Fatal(err)
	}

	result, sc, err := r.run(context.Background(), cfg, opts...)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Completed {
		t.Fatalf("fade did not finish in %d ticks", result.Ticks)
	}
	if got := result.Final()[0]; got != 1 {
		t.Errorf("final = %v, want 1", got)
	}
	if sc != integrators.SemiImplicitEuler {
		t.Errorf("fixed cadence should pick euler, got %s", sc)
	}
	if _, ok := result.Metrics["settle_time"]; !ok {
		t.Errorf("metrics = %v", result.Metrics)
	}
}

func TestRunColorPreset(t *testing.T) {
	cfg := config.GetPreset("sunset")
	r, err := runnerFor(cfg.Kind)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := motionOptions(cfg, logr.Discard())
	if err != nil {
		t.Fatal(err)
	}
	result, sc, err := r.run(context.Background(), cfg, opts...)
	if err != nil {
		t.Fatal(err)
	}
	if sc != integrators.RK4 {
		t.Errorf("variable cadence should pick rk4, got %s", sc)
	}
	if len(result.Columns) != 4 || len(result.Final()) != 4 {
		t.Errorf("columns = %v", result.Columns)
	}
}

func TestCompareAllSchemes(t *testing.T) {
	cfg := config.GetPreset("snappy")
	r, _ := runnerFor(cfg.Kind)
	results, err := r.compare(context.Background(), cfg, integrators.Schemes(), logr.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	for i, res := range results {
		if res.Ticks == 0 {
			t.Errorf("scheme %d did not run", i)
		}
	}
}

func TestMotionOptionsRejectsUnknown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Cadence = "sometimes"
	if _, err := motionOptions(cfg, logr.Discard()); err == nil {
		t.Error("unknown cadence accepted")
	}
	cfg = config.DefaultConfig()
	cfg.Scheme = "verlet"
	if _, err := motionOptions(cfg, logr.Discard()); err == nil {
		t.Error("unknown scheme accepted")
	}
	if _, err := runnerFor("vector"); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestPositionMapping(t *testing.T) {
	if got := floatKind.position(50, 0, 100); got != 0.5 {
		t.Errorf("float midpoint = %v", got)
	}
	if got := floatKind.position(0, 0, 100); got != 0.25 {
		t.Errorf("float start = %v", got)
	}
	black, white := value.Color{A: 255}, value.Color{R: 255, G: 255, B: 255, A: 255}
	if got := colorKind.position(white, black, white); got != 1 {
		t.Errorf("color end = %v", got)
	}
}

func TestPlayStartsProgram(t *testing.T) {
	prog, err := config.BuildProgram(config.GetPreset("tour"), config.ParseFloat)
	if err != nil {
		t.Fatal(err)
	}
	m := motion.New(prog.From)
	if err := play(m, prog); err != nil {
		t.Fatal(err)
	}
	if !m.State().Active() {
		t.Errorf("state = %s", m.State())
	}
}
