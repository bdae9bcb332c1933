package motion

import (
	"github.com/go-logr/logr"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/clock"
	"github.com/san-kum/dynmotion/internal/integrators"
	"github.com/san-kum/dynmotion/internal/pool"
	"github.com/san-kum/dynmotion/internal/value"
)

// Pools groups the shared pools a motion borrows from. One Pools value may
// serve any number of motions of the same value type, across goroutines.
type Pools[T value.Animatable[T]] struct {
	Configs *pool.Pool[anim.Config]
	Scratch *pool.Pool[integrators.Scratch[T]]
}

// NewPools builds a config pool and a scratch pool with the same options.
func NewPools[T value.Animatable[T]](opts pool.Options) *Pools[T] {
	cfgOpts, scratchOpts := opts, opts
	if opts.Name != "" {
		cfgOpts.Name = opts.Name + "/config"
		scratchOpts.Name = opts.Name + "/scratch"
	}
	return &Pools[T]{
		Configs: pool.New[anim.Config](nil, nil, cfgOpts),
		Scratch: pool.New(nil, func(s *integrators.Scratch[T]) { s.Reset() }, scratchOpts),
	}
}

type settings struct {
	cadence   clock.Cadence
	scheme    integrators.Scheme
	hasScheme bool
	pools     any
	log       logr.Logger
}

// Option configures a Motion.
type Option func(*settings)

// WithCadence selects the spring scheme from the host's frame cadence:
// semi-implicit Euler for fixed deltas, adaptive RK4 for variable ones.
func WithCadence(c clock.Cadence) Option {
	return func(s *settings) { s.cadence = c }
}

// WithScheme forces a spring scheme regardless of cadence.
func WithScheme(sc integrators.Scheme) Option {
	return func(s *settings) {
		s.scheme = sc
		s.hasScheme = true
	}
}

// WithPools shares pools between motions. Without it each motion owns
// private pools.
func WithPools[T value.Animatable[T]](p *Pools[T]) Option {
	return func(s *settings) { s.pools = p }
}

func WithLogger(l logr.Logger) Option {
	return func(s *settings) { s.log = l }
}

func (s *settings) resolveScheme() integrators.Scheme {
	if s.hasScheme {
		return s.scheme
	}
	if s.cadence == clock.Variable {
		return integrators.RK4
	}
	return integrators.SemiImplicitEuler
}
