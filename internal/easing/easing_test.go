package easing

import (
	"math"
	"testing"
)

func TestEndpoints(t *testing.T) {
	for k := Linear; k < numKinds; k++ {
		t.Run(k.String(), func(t *testing.T) {
			f := k.Func()
			if got := f(0); math.Abs(got) > 1e-6 {
				t.Errorf("f(0) = %v, want 0", got)
			}
			if got := f(1); math.Abs(got-1) > 1e-6 {
				t.Errorf("f(1) = %v, want 1", got)
			}
		})
	}
}

func TestMonotoneFamilies(t *testing.T) {
	kinds := []Kind{Linear, InQuad, OutQuad, InOutCubic, InSine, OutExpo, InOutCirc, SmoothStep}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			f := k.Func()
			prev := f(0)
			for i := 1; i <= 100; i++ {
				v := f(float64(i) / 100)
				if v < prev-1e-6 {
					t.Fatalf("not monotone at %d: %v < %v", i, v, prev)
				}
				prev = v
			}
		})
	}
}

func TestBackOvershoots(t *testing.T) {
	f := OutBack.Func()
	peak := 0.0
	for i := 0; i <= 100; i++ {
		peak = math.Max(peak, f(float64(i)/100))
	}
	if peak <= 1 {
		t.Errorf("out-back peak = %v, want > 1", peak)
	}
}

func TestNilIsLinear(t *testing.T) {
	var f Func
	if got := f.Apply(0.37); got != 0.37 {
		t.Errorf("nil Apply = %v", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		err  bool
	}{
		{"linear", Linear, false},
		{"out-cubic", OutCubic, false},
		{"InOutBounce", InOutBounce, false},
		{"in_elastic", InElastic, false},
		{"wobble", Linear, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("Parse(%q) err = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	if len(Names()) != int(numKinds) {
		t.Errorf("Names() has %d entries", len(Names()))
	}
}

func TestCubicBezier(t *testing.T) {
	lin := CubicBezier(0, 0, 1, 1)
	for _, x := range []float64{0.1, 0.5, 0.9} {
		if got := lin(x); math.Abs(got-x) > 1e-4 {
			t.Errorf("linear bezier(%v) = %v", x, got)
		}
	}
	easeOut := CubicBezier(0, 0, 0.58, 1)
	if easeOut(0.5) <= 0.5 {
		t.Errorf("ease-out bezier(0.5) = %v, want > 0.5", easeOut(0.5))
	}
}

func TestSteps(t *testing.T) {
	f := Steps(4)
	tests := map[float64]float64{0: 0, 0.2: 0, 0.25: 0.25, 0.6: 0.5, 0.99: 0.75, 1: 1}
	for in, want := range tests {
		if got := f(in); got != want {
			t.Errorf("Steps(4)(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestUnknownKind(t *testing.T) {
	k := Kind(999)
	if got := k.Func()(0.3); got != 0.3 {
		t.Errorf("unknown kind should be linear, got %v", got)
	}
	if k.String() != "Kind(999)" {
		t.Errorf("String() = %q", k.String())
	}
}
