package config

import "sort"

var Presets = map[string]*Config{
	"bounce": {
		Name: "bounce", Kind: "float", Cadence: "fixed", Hz: 120, Duration: 3,
		From: "0", To: "100",
		Animation: &AnimationConfig{Mode: "spring", Stiffness: 170, Damping: 8, Mass: 1},
	},
	"snappy": {
		Name: "snappy", Kind: "float", Cadence: "fixed", Hz: 120, Duration: 2,
		From: "0", To: "100",
		Animation: &AnimationConfig{Mode: "spring", Stiffness: 300, Mass: 1, Critical: true},
	},
	"gentle": {
		Name: "gentle", Kind: "float", Cadence: "variable", Hz: 60, Duration: 4,
		From: "0", To: "100",
		Animation: &AnimationConfig{Mode: "spring", Stiffness: 60, Damping: 14, Mass: 1},
	},
	"fade": {
		Name: "fade", Kind: "float", Cadence: "fixed", Hz: 60, Duration: 1,
		From: "0", To: "1",
		Animation: &AnimationConfig{Mode: "tween", Duration: 0.5, Easing: "in-out-cubic"},
	},
	"pulse": {
		Name: "pulse", Kind: "float", Cadence: "fixed", Hz: 60, Duration: 3,
		From: "0", To: "1",
		Animation: &AnimationConfig{
			Mode: "tween", Duration: 0.4, Bezier: []float64{0.25, 0.1, 0.25, 1},
			TimingConfig: TimingConfig{Loop: "alternate", Repeat: 4},
		},
	},
	"wobble": {
		Name: "wobble", Kind: "float", Cadence: "fixed", Hz: 60, Duration: 2,
		From: "0",
		Keyframes: &TrackConfig{
			Duration: 1.2,
			Easing:   "in-out-sine",
			Frames: []KeyframeConfig{
				{Offset: 0, Value: "0"},
				{Offset: 0.3, Value: "30", Easing: "out-back"},
				{Offset: 0.6, Value: "-15"},
				{Offset: 1, Value: "0"},
			},
		},
	},
	"tour": {
		Name: "tour", Kind: "float", Cadence: "fixed", Hz: 120, Duration: 6,
		From: "0",
		Sequence: &SequenceConfig{
			Steps: []StepConfig{
				{To: "100", Animation: AnimationConfig{Mode: "tween", Duration: 0.5, Easing: "out-quad"}},
				{To: "40", Animation: AnimationConfig{Mode: "spring", Stiffness: 200, Damping: 20}},
				{To: "80", Animation: AnimationConfig{Mode: "tween", Duration: 0.3, TimingConfig: TimingConfig{Delay: 0.2}}},
			},
		},
	},
	"sunset": {
		Name: "sunset", Kind: "color", Cadence: "variable", Hz: 60, Duration: 3,
		From: "#ff8800", To: "#2200aa",
		Animation: &AnimationConfig{Mode: "spring", Stiffness: 80, Mass: 1, Critical: true},
	},
	"blink": {
		Name: "blink", Kind: "color", Cadence: "fixed", Hz: 60, Duration: 2,
		From: "#000000", To: "#ffffff",
		Animation: &AnimationConfig{
			Mode: "tween", Duration: 0.25, Easing: "in-out-sine",
			TimingConfig: TimingConfig{Loop: "infinite"},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
