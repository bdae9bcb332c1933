package integrators

import (
	"testing"
	"time"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/value"
)

func benchScheme(b *testing.B, scheme Scheme) {
	cfg := anim.DefaultConfig()
	var sc Scratch[value.Transform]
	target := value.Transform{X: 300, Y: 200, Zoom: 2, Rotation: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		seg := NewSegment(value.Identity(), target, value.Transform{}, cfg, scheme)
		for j := 0; j < 60; j++ {
			seg.Step(time.Second/60, &sc)
		}
	}
}

func BenchmarkEuler(b *testing.B)    { benchScheme(b, SemiImplicitEuler) }
func BenchmarkRK4(b *testing.B)      { benchScheme(b, RK4) }
func BenchmarkAnalytic(b *testing.B) { benchScheme(b, Analytic) }
