package anim

import (
	"errors"
	"fmt"
)

// Validation errors returned at construction time.
var (
	// ErrInvalidSpring indicates non-positive stiffness or mass, negative
	// damping, or a non-finite parameter.
	ErrInvalidSpring = errors.New("anim: invalid spring parameters")

	// ErrInvalidDuration indicates a negative duration.
	ErrInvalidDuration = errors.New("anim: invalid duration")

	// ErrInvalidDelay indicates a negative delay.
	ErrInvalidDelay = errors.New("anim: invalid delay")

	// ErrInvalidLoop indicates a repeat count below one.
	ErrInvalidLoop = errors.New("anim: invalid loop count")

	// ErrInvalidEpsilon indicates a non-positive or non-finite epsilon override.
	ErrInvalidEpsilon = errors.New("anim: invalid epsilon")

	// ErrInvalidOffset indicates a keyframe offset outside [0,1] or non-finite.
	ErrInvalidOffset = errors.New("anim: keyframe offset out of range")

	// ErrDuplicateOffset indicates two keyframes at the same offset.
	ErrDuplicateOffset = errors.New("anim: duplicate keyframe offset")

	// ErrEmptyTrack indicates evaluation of a track without keyframes.
	ErrEmptyTrack = errors.New("anim: keyframe track is empty")

	// ErrEmptySequence indicates a sequence without steps.
	ErrEmptySequence = errors.New("anim: sequence has no steps")

	// ErrInvalidValue indicates a NaN or infinite start or target value.
	ErrInvalidValue = errors.New("anim: value is not finite")
)

// ConfigError wraps a validation error with the operation and field that
// failed.
type ConfigError struct {
	Op    string
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s=%v: %v", e.Op, e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Invalid builds a *ConfigError.
func Invalid(op, field string, v any, err error) error {
	return &ConfigError{Op: op, Field: field, Value: v, Err: err}
}
