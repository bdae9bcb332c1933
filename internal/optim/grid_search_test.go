package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGridSearchFindsMinimum(t *testing.T) {
	g := NewGridSearch([]string{"x", "y"}, [][]float64{Linspace(-2, 2, 5), Linspace(0, 4, 5)})
	if g.Evaluated() != 25 {
		t.Errorf("evaluated = %d", g.Evaluated())
	}

	calls := 0
	best, score, err := g.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		calls++
		return (p["x"]-1)*(p["x"]-1) + (p["y"]-3)*(p["y"]-3), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 25 {
		t.Errorf("objective called %d times", calls)
	}
	if diff := cmp.Diff(map[string]float64{"x": 1, "y": 3}, best); diff != "" {
		t.Errorf("best mismatch (-want +got):\n%s", diff)
	}
	if score != 0 {
		t.Errorf("score = %v", score)
	}
}

func TestGridSearchSkipsFailures(t *testing.T) {
	g := NewGridSearch([]string{"k"}, [][]float64{{1, 2, 3}})
	best, score, err := g.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		switch p["k"] {
		case 1:
			return 0, errors.New("diverged")
		case 2:
			return math.Inf(1), nil
		}
		return 7, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if best["k"] != 3 || score != 7 {
		t.Errorf("best=%v score=%v", best, score)
	}

	_, _, err = g.Search(context.Background(), func(context.Context, map[string]float64) (float64, error) {
		return math.NaN(), nil
	})
	if !errors.Is(err, ErrNoCandidate) {
		t.Errorf("got %v, want ErrNoCandidate", err)
	}
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch([]string{"k"}, [][]float64{{1}})
	if _, _, err := g.Search(ctx, func(context.Context, map[string]float64) (float64, error) { return 1, nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want []float64
		err  bool
	}{
		{"5", []float64{5}, false},
		{"0:10:3", []float64{0, 5, 10}, false},
		{"1:2:1", []float64{1}, false},
		{"1:2", nil, true},
		{"a:2:3", nil, true},
		{"1:2:0", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseRange(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("%q: err = %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
