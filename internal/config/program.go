package config

import (
	"fmt"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/keyframe"
	"github.com/san-kum/dynmotion/internal/sequence"
	"github.com/san-kum/dynmotion/internal/value"
)

// Program is a config resolved for one value type. Exactly one of Simple,
// Track and Sequence is set.
type Program[T value.Animatable[T]] struct {
	From   T
	Target T
	Simple *anim.Config
	Track  *keyframe.Track[T]
	Seq    *sequence.Sequence[T]
}

// End is the value the program settles on when it runs to completion
// without alternating.
func (p *Program[T]) End() T {
	switch {
	case p.Track != nil:
		return p.Track.Last()
	case p.Seq != nil:
		return p.Seq.Steps[len(p.Seq.Steps)-1].Target
	default:
		return p.Target
	}
}

func BuildProgram[T value.Animatable[T]](c *Config, parse Parser[T]) (*Program[T], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	from, err := parse(c.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	p := &Program[T]{From: from}

	switch {
	case c.Animation != nil:
		if p.Target, err = parse(c.To); err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		cfg, err := c.Animation.Build()
		if err != nil {
			return nil, err
		}
		p.Simple = &cfg
	case c.Keyframes != nil:
		if p.Track, err = BuildTrack(c.Keyframes, parse); err != nil {
			return nil, err
		}
	case c.Sequence != nil:
		if p.Seq, err = BuildSequence(c.Sequence, parse); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func BuildTrack[T value.Animatable[T]](tc *TrackConfig, parse Parser[T]) (*keyframe.Track[T], error) {
	frames := make([]keyframe.Keyframe[T], 0, len(tc.Frames))
	for i, f := range tc.Frames {
		v, err := parse(f.Value)
		if err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
		ease, err := parseEasing(f.Easing)
		if err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
		frames = append(frames, keyframe.Keyframe[T]{Value: v, Offset: f.Offset, Easing: ease})
	}

	track, err := keyframe.New(seconds(tc.Duration), frames...)
	if err != nil {
		return nil, err
	}
	if track.Easing, err = parseEasing(tc.Easing); err != nil {
		return nil, err
	}
	if track.Timing, err = tc.TimingConfig.Build(); err != nil {
		return nil, err
	}
	return track, track.Validate()
}

func BuildSequence[T value.Animatable[T]](sc *SequenceConfig, parse Parser[T]) (*sequence.Sequence[T], error) {
	seq := sequence.New[T]()
	for i, st := range sc.Steps {
		target, err := parse(st.To)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		cfg, err := st.Animation.Build()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		seq.Then(target, cfg)
	}

	var err error
	if seq.Timing, err = sc.TimingConfig.Build(); err != nil {
		return nil, err
	}
	return seq, seq.Validate()
}
