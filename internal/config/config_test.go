package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/value"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Hz <= 0 {
		t.Error("hz should be positive")
	}
	if cfg.MaxDuration() != 5*time.Second {
		t.Errorf("max duration = %s", cfg.MaxDuration())
	}
}

func TestParseReplacesDefaultProgram(t *testing.T) {
	doc := []byte(`
name: wobble
from: 0
keyframes:
  duration: 1
  frames:
    - {offset: 0, value: 0}
    - {offset: 1, value: 10}
`)
	cfg, err := Parse(doc)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Animation != nil {
		t.Error("default spring should be dropped when the file names a program")
	}
	if cfg.Hz != DefaultHz || cfg.Kind != "float" {
		t.Errorf("defaults lost: hz=%d kind=%q", cfg.Hz, cfg.Kind)
	}
	if len(cfg.Keyframes.Frames) != 2 || cfg.Keyframes.Frames[1].Value != "10" {
		t.Errorf("frames = %+v", cfg.Keyframes.Frames)
	}
}

func TestParseKeepsDefaultProgram(t *testing.T) {
	cfg, err := Parse([]byte("name: plain\nto: 50\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Animation == nil || cfg.To != "50" {
		t.Errorf("animation=%v to=%q", cfg.Animation, cfg.To)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no program", func(c *Config) { c.Animation = nil }, ErrNoProgram},
		{"two programs", func(c *Config) { c.Sequence = &SequenceConfig{} }, ErrSeveralPrograms},
		{"bad kind", func(c *Config) { c.Kind = "vector" }, ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Hz = 0
	if cfg.Validate() == nil {
		t.Error("zero hz accepted")
	}
}

func TestAnimationBuild(t *testing.T) {
	t.Run("spring defaults", func(t *testing.T) {
		cfg, err := (&AnimationConfig{Mode: "spring"}).Build()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(anim.DefaultSpring(), cfg.Spring); diff != "" {
			t.Errorf("spring mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("critical", func(t *testing.T) {
		cfg, err := (&AnimationConfig{Stiffness: 100, Mass: 1, Critical: true}).Build()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Spring.Damping != 20 {
			t.Errorf("damping = %v, want 20", cfg.Spring.Damping)
		}
	})

	t.Run("tween", func(t *testing.T) {
		a := &AnimationConfig{
			Mode: "tween", Duration: 0.25, Easing: "out-cubic",
			TimingConfig: TimingConfig{Delay: 0.1, Loop: "alternate", Repeat: 3, Notify: "each-loop"},
		}
		cfg, err := a.Build()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Mode != anim.ModeTween || cfg.Tween.Duration != 250*time.Millisecond {
			t.Errorf("mode=%v duration=%s", cfg.Mode, cfg.Tween.Duration)
		}
		if cfg.Tween.Easing.Apply(0.5) == 0.5 {
			t.Error("easing not applied")
		}
		if cfg.Delay != 100*time.Millisecond || cfg.Loop != anim.AlternateTimes(3) || cfg.Notify != anim.NotifyEachLoop {
			t.Errorf("timing = %+v", cfg.Timing)
		}
	})

	t.Run("bezier", func(t *testing.T) {
		cfg, err := (&AnimationConfig{Mode: "tween", Bezier: []float64{0, 0, 1, 1}}).Build()
		if err != nil {
			t.Fatal(err)
		}
		if got := cfg.Tween.Easing.Apply(0.3); got < 0.29 || got > 0.31 {
			t.Errorf("linear bezier at 0.3 = %v", got)
		}
		if cfg.Tween.Duration != anim.DefaultDuration {
			t.Errorf("duration = %s", cfg.Tween.Duration)
		}
	})

	errCases := []struct {
		name string
		a    AnimationConfig
	}{
		{"mode", AnimationConfig{Mode: "physics"}},
		{"easing", AnimationConfig{Mode: "tween", Easing: "wiggle"}},
		{"bezier", AnimationConfig{Mode: "tween", Bezier: []float64{1, 2}}},
		{"loop", AnimationConfig{TimingConfig: TimingConfig{Loop: "sometimes"}}},
		{"repeat", AnimationConfig{TimingConfig: TimingConfig{Loop: "times"}}},
		{"notify", AnimationConfig{TimingConfig: TimingConfig{Notify: "never"}}},
		{"delay", AnimationConfig{TimingConfig: TimingConfig{Delay: -1}}},
		{"epsilon", AnimationConfig{Epsilon: -0.5}},
		{"mass", AnimationConfig{Mass: -1}},
	}
	for _, tc := range errCases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			if _, err := tc.a.Build(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuildProgramSimple(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kind = "color"
	cfg.From = "#000"
	cfg.To = "#ff0000"

	p, err := BuildProgram(cfg, ParseColor)
	if err != nil {
		t.Fatal(err)
	}
	want := value.Color{R: 255, A: 255}
	if p.Simple == nil || p.Target != want || p.End() != want {
		t.Errorf("program = %+v", p)
	}
	if p.From != (value.Color{A: 255}) {
		t.Errorf("from = %v", p.From)
	}

	cfg.To = "red"
	if _, err := BuildProgram(cfg, ParseColor); err == nil {
		t.Error("expected error for unparsable target")
	}
}

func TestBuildProgramTrack(t *testing.T) {
	p, err := BuildProgram(GetPreset("wobble"), ParseFloat)
	if err != nil {
		t.Fatal(err)
	}
	if p.Track == nil || p.Track.Len() != 4 {
		t.Fatalf("track = %+v", p.Track)
	}
	if p.Track.Duration != 1200*time.Millisecond {
		t.Errorf("duration = %s", p.Track.Duration)
	}
	if p.End() != 0 {
		t.Errorf("end = %v", p.End())
	}

	dup := &TrackConfig{Duration: 1, Frames: []KeyframeConfig{{Offset: 0.5, Value: "1"}, {Offset: 0.5, Value: "2"}}}
	if _, err := BuildTrack(dup, ParseFloat); !errors.Is(err, anim.ErrDuplicateOffset) {
		t.Errorf("duplicate offset: got %v", err)
	}
	empty := &TrackConfig{Duration: 1}
	if _, err := BuildTrack(empty, ParseFloat); !errors.Is(err, anim.ErrEmptyTrack) {
		t.Errorf("empty track: got %v", err)
	}
}

func TestBuildProgramSequence(t *testing.T) {
	p, err := BuildProgram(GetPreset("tour"), ParseFloat)
	if err != nil {
		t.Fatal(err)
	}
	if p.Seq == nil || len(p.Seq.Steps) != 3 {
		t.Fatalf("sequence = %+v", p.Seq)
	}
	if p.Seq.Steps[2].Config.Delay != 200*time.Millisecond {
		t.Errorf("step delay = %s", p.Seq.Steps[2].Config.Delay)
	}
	if p.End() != 80 {
		t.Errorf("end = %v", p.End())
	}

	alt := &SequenceConfig{
		Steps:        []StepConfig{{To: "1"}},
		TimingConfig: TimingConfig{Loop: "alternate"},
	}
	if _, err := BuildSequence(alt, ParseFloat); !errors.Is(err, anim.ErrInvalidLoop) {
		t.Errorf("alternating sequence: got %v", err)
	}
	if _, err := BuildSequence(&SequenceConfig{}, ParseFloat); !errors.Is(err, anim.ErrEmptySequence) {
		t.Errorf("empty sequence: got %v", err)
	}
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			var err error
			switch cfg.Kind {
			case "color":
				_, err = BuildProgram(cfg, ParseColor)
			default:
				_, err = BuildProgram(cfg, ParseFloat)
			}
			if err != nil {
				t.Errorf("preset %s: %v", name, err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("bounce")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	cfg.Name = "changed"
	if Presets["bounce"].Name != "bounce" {
		t.Error("GetPreset must return a copy")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("got %d names", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("not sorted: %v", names)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sunset.yaml")
	if err := Save(path, GetPreset("sunset")); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.From != "#ff8800" || cfg.Kind != "color" || !cfg.Animation.Critical {
		t.Errorf("loaded %+v", cfg)
	}
}
