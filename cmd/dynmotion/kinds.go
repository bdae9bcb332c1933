package main

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/san-kum/dynmotion/internal/clock"
	"github.com/san-kum/dynmotion/internal/config"
	"github.com/san-kum/dynmotion/internal/integrators"
	"github.com/san-kum/dynmotion/internal/metrics"
	"github.com/san-kum/dynmotion/internal/motion"
	"github.com/san-kum/dynmotion/internal/sim"
	"github.com/san-kum/dynmotion/internal/tui"
	"github.com/san-kum/dynmotion/internal/value"
)

// runner hides the value type of an animation file from the commands.
type runner interface {
	run(ctx context.Context, cfg *config.Config, opts ...motion.Option) (*sim.Result, integrators.Scheme, error)
	compare(ctx context.Context, cfg *config.Config, schemes []integrators.Scheme, log logr.Logger) ([]*sim.Result, error)
	live(cfg *config.Config, opts ...motion.Option) error
}

type kind[T value.Animatable[T]] struct {
	parse   config.Parser[T]
	project func(T) sim.Sample
	columns []string
	// position maps a value onto [0,1] for the live preview given the
	// program's endpoints.
	position func(v, from, to T) float64
	swatch   func(T) (value.Color, bool)
}

var floatKind = kind[value.Float]{
	parse:   config.ParseFloat,
	project: func(v value.Float) sim.Sample { return sim.Sample{float64(v)} },
	columns: []string{"value"},
	position: func(v, from, to value.Float) float64 {
		lo, hi := min(from, to), max(from, to)
		span := float64(hi - lo)
		if span == 0 {
			return 0.5
		}
		// Leave a quarter of the rail on each side for overshoot.
		return 0.25 + 0.5*float64(v-lo)/span
	},
}

var colorKind = kind[value.Color]{
	parse:   config.ParseColor,
	project: func(c value.Color) sim.Sample { return sim.Sample{c.R, c.G, c.B, c.A} },
	columns: []string{"r", "g", "b", "a"},
	position: func(v, from, to value.Color) float64 {
		total := to.Sub(from).Magnitude()
		if total == 0 {
			return 1
		}
		return v.Sub(from).Magnitude() / total
	},
	swatch: func(c value.Color) (value.Color, bool) { return c, true },
}

func runnerFor(k string) (runner, error) {
	switch k {
	case "", "float":
		return floatKind, nil
	case "color":
		return colorKind, nil
	}
	return nil, fmt.Errorf("%w %q", config.ErrUnknownKind, k)
}

func play[T value.Animatable[T]](m *motion.Motion[T], p *config.Program[T]) error {
	switch {
	case p.Simple != nil:
		return m.Start(p.Target, *p.Simple)
	case p.Track != nil:
		return m.StartKeyframes(p.Track)
	default:
		return m.StartSequence(p.Seq)
	}
}

func (k kind[T]) simulator(cfg *config.Config, opts ...motion.Option) (*sim.Simulator[T], *motion.Motion[T], *config.Program[T], error) {
	prog, err := config.BuildProgram(cfg, k.parse)
	if err != nil {
		return nil, nil, nil, err
	}
	m := motion.New(prog.From, opts...)
	if err := play(m, prog); err != nil {
		return nil, nil, nil, err
	}

	s := sim.New(m, clock.NewSteady(cfg.Hz), k.project, k.columns...)
	for _, metric := range metrics.Standard(prog.From.Epsilon()) {
		s.AddMetric(metric)
	}
	return s, m, prog, nil
}

func (k kind[T]) simConfig(cfg *config.Config, prog *config.Program[T]) sim.Config {
	return sim.Config{
		MaxDuration: cfg.MaxDuration(),
		Target:      k.project(prog.End()),
	}
}

func (k kind[T]) run(ctx context.Context, cfg *config.Config, opts ...motion.Option) (*sim.Result, integrators.Scheme, error) {
	s, m, prog, err := k.simulator(cfg, opts...)
	if err != nil {
		return nil, 0, err
	}
	defer m.Close()

	result, err := s.Run(ctx, k.simConfig(cfg, prog))
	return result, m.Scheme(), err
}

func (k kind[T]) compare(ctx context.Context, cfg *config.Config, schemes []integrators.Scheme, log logr.Logger) ([]*sim.Result, error) {
	prog, err := config.BuildProgram(cfg, k.parse)
	if err != nil {
		return nil, err
	}
	pools := motion.NewPools[T](poolOptions(log))

	build := func(scheme integrators.Scheme) (*sim.Simulator[T], error) {
		s, _, _, err := k.simulator(cfg,
			motion.WithScheme(scheme),
			motion.WithPools(pools),
			motion.WithLogger(log.WithValues("scheme", scheme.String())),
		)
		return s, err
	}
	return sim.Compare[T](ctx, schemes, build, k.simConfig(cfg, prog))
}

func (k kind[T]) live(cfg *config.Config, opts ...motion.Option) error {
	prog, err := config.BuildProgram(cfg, k.parse)
	if err != nil {
		return err
	}
	m := motion.New(prog.From, opts...)
	defer m.Close()

	from, to := prog.From, prog.End()
	scene := tui.Scene[T]{
		Name:     cfg.Name,
		Play:     func(m *motion.Motion[T]) error { return play(m, prog) },
		Position: func(v T) float64 { return k.position(v, from, to) },
		Swatch:   k.swatch,
	}
	if prog.Simple != nil {
		scene.Flip = func(m *motion.Motion[T]) error {
			if value.Distance(m.Target(), prog.Target) == 0 {
				return m.Retarget(prog.From)
			}
			return m.Retarget(prog.Target)
		}
	}
	return tui.Run(m, scene)
}
