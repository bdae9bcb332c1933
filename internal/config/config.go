// Package config reads animation files: YAML documents describing a value
// kind, its endpoints and one simple animation, keyframe track or sequence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/easing"
	"github.com/san-kum/dynmotion/internal/value"
)

const (
	DefaultHz       = 120
	DefaultDuration = 5.0
	DefaultKind     = "float"
	DefaultCadence  = "fixed"
)

var (
	ErrNoProgram       = errors.New("config: one of animation, keyframes or sequence is required")
	ErrSeveralPrograms = errors.New("config: animation, keyframes and sequence are exclusive")
	ErrUnknownKind     = errors.New("config: unknown value kind")
)

type Config struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Cadence string `yaml:"cadence"`
	// Scheme overrides the integrator the cadence would select.
	Scheme   string  `yaml:"scheme,omitempty"`
	Hz       int     `yaml:"hz"`
	Duration float64 `yaml:"duration"`
	From     string  `yaml:"from"`
	To       string  `yaml:"to,omitempty"`

	Animation *AnimationConfig `yaml:"animation,omitempty"`
	Keyframes *TrackConfig     `yaml:"keyframes,omitempty"`
	Sequence  *SequenceConfig  `yaml:"sequence,omitempty"`
}

// TimingConfig is the scheduling block shared by every program.
type TimingConfig struct {
	Delay  float64 `yaml:"delay,omitempty"`
	Loop   string  `yaml:"loop,omitempty"`
	Repeat int     `yaml:"repeat,omitempty"`
	Notify string  `yaml:"notify,omitempty"`
}

type AnimationConfig struct {
	Mode      string    `yaml:"mode"`
	Stiffness float64   `yaml:"stiffness,omitempty"`
	Damping   float64   `yaml:"damping,omitempty"`
	Mass      float64   `yaml:"mass,omitempty"`
	Velocity  float64   `yaml:"velocity,omitempty"`
	Critical  bool      `yaml:"critical,omitempty"`
	Duration  float64   `yaml:"duration,omitempty"`
	Easing    string    `yaml:"easing,omitempty"`
	Bezier    []float64 `yaml:"bezier,omitempty"`
	Epsilon   float64   `yaml:"epsilon,omitempty"`

	TimingConfig `yaml:",inline"`
}

type KeyframeConfig struct {
	Offset float64 `yaml:"offset"`
	Value  string  `yaml:"value"`
	Easing string  `yaml:"easing,omitempty"`
}

type TrackConfig struct {
	Duration float64          `yaml:"duration"`
	Easing   string           `yaml:"easing,omitempty"`
	Frames   []KeyframeConfig `yaml:"frames"`

	TimingConfig `yaml:",inline"`
}

type StepConfig struct {
	To        string          `yaml:"to"`
	Animation AnimationConfig `yaml:"animation"`
}

type SequenceConfig struct {
	Steps []StepConfig `yaml:"steps"`

	TimingConfig `yaml:",inline"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "default",
		Kind:     DefaultKind,
		Cadence:  DefaultCadence,
		Hz:       DefaultHz,
		Duration: DefaultDuration,
		From:     "0",
		To:       "100",
		Animation: &AnimationConfig{
			Mode:      "spring",
			Stiffness: anim.DefaultStiffness,
			Damping:   anim.DefaultDamping,
			Mass:      anim.DefaultMass,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a document over the defaults. A document that names its
// own program replaces the default spring.
func Parse(data []byte) (*Config, error) {
	var probe struct {
		Animation *yaml.Node `yaml:"animation"`
		Keyframes *yaml.Node `yaml:"keyframes"`
		Sequence  *yaml.Node `yaml:"sequence"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if probe.Animation != nil || probe.Keyframes != nil || probe.Sequence != nil {
		cfg.Animation = nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the document shape. Program contents are validated when
// they are built.
func (c *Config) Validate() error {
	n := 0
	for _, set := range []bool{c.Animation != nil, c.Keyframes != nil, c.Sequence != nil} {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return ErrNoProgram
	case n > 1:
		return ErrSeveralPrograms
	}
	switch c.Kind {
	case "float", "color":
	default:
		return fmt.Errorf("%w %q", ErrUnknownKind, c.Kind)
	}
	if c.Hz <= 0 {
		return fmt.Errorf("config: hz must be positive, got %d", c.Hz)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	return nil
}

// MaxDuration is the simulated time budget of a run.
func (c *Config) MaxDuration() time.Duration {
	return seconds(c.Duration)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Build turns the block into a validated animation profile. Zero spring
// fields take the package defaults.
func (a *AnimationConfig) Build() (anim.Config, error) {
	var cfg anim.Config
	switch strings.ToLower(a.Mode) {
	case "", "spring":
		s := anim.Spring{
			Stiffness: orDefault(a.Stiffness, anim.DefaultStiffness),
			Damping:   orDefault(a.Damping, anim.DefaultDamping),
			Mass:      orDefault(a.Mass, anim.DefaultMass),
			Velocity:  a.Velocity,
		}
		if a.Critical {
			s.Damping = anim.CriticalDamping(s.Stiffness, s.Mass)
		}
		cfg = anim.SpringConfig(s)
	case "tween":
		ease, err := a.easing()
		if err != nil {
			return anim.Config{}, err
		}
		d := anim.DefaultDuration
		if a.Duration != 0 {
			d = seconds(a.Duration)
		}
		cfg = anim.TweenConfig(anim.Tween{Duration: d, Easing: ease})
	default:
		return anim.Config{}, fmt.Errorf("config: unknown mode %q", a.Mode)
	}

	timing, err := a.TimingConfig.Build()
	if err != nil {
		return anim.Config{}, err
	}
	cfg.Timing = timing
	cfg.Epsilon = a.Epsilon
	return cfg, cfg.Validate()
}

func (a *AnimationConfig) easing() (easing.Func, error) {
	if len(a.Bezier) > 0 {
		if len(a.Bezier) != 4 {
			return nil, fmt.Errorf("config: bezier needs 4 control values, got %d", len(a.Bezier))
		}
		return easing.CubicBezier(a.Bezier[0], a.Bezier[1], a.Bezier[2], a.Bezier[3]), nil
	}
	return parseEasing(a.Easing)
}

func parseEasing(name string) (easing.Func, error) {
	if name == "" {
		return nil, nil
	}
	k, err := easing.Parse(name)
	if err != nil {
		return nil, err
	}
	return k.Func(), nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Build resolves the loop name, repeat count and notify policy.
func (t TimingConfig) Build() (anim.Timing, error) {
	timing := anim.Timing{Delay: seconds(t.Delay)}
	switch strings.ToLower(t.Loop) {
	case "", "none":
		timing.Loop = anim.None()
	case "times", "repeat":
		timing.Loop = anim.Times(t.Repeat)
	case "infinite", "forever":
		timing.Loop = anim.Infinite()
	case "alternate", "ping-pong":
		if t.Repeat > 0 {
			timing.Loop = anim.AlternateTimes(t.Repeat)
		} else {
			timing.Loop = anim.Alternate()
		}
	default:
		return anim.Timing{}, fmt.Errorf("config: unknown loop %q", t.Loop)
	}
	switch strings.ToLower(t.Notify) {
	case "", "final":
		timing.Notify = anim.NotifyFinal
	case "each-loop", "each":
		timing.Notify = anim.NotifyEachLoop
	default:
		return anim.Timing{}, fmt.Errorf("config: unknown notify policy %q", t.Notify)
	}
	return timing, timing.Validate()
}

// Parser reads one value of a kind from its text form.
type Parser[T value.Animatable[T]] func(string) (T, error)

func ParseFloat(s string) (value.Float, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("config: float value %q: %w", s, err)
	}
	return value.Float(f), nil
}

func ParseColor(s string) (value.Color, error) {
	c, err := value.ParseHex(strings.TrimSpace(s))
	if err != nil {
		return value.Color{}, fmt.Errorf("config: color value %q: %w", s, err)
	}
	return c, nil
}
