package api

import (
	"fmt"
	"time"
)

// ResizeAction controls what happens to an in-flight tween when the viewport
// is resized.
type ResizeAction string

const (
	// ResizeRestart stops the tween and runs the same step again with a freshly
	// evaluated config. It is the default.
	ResizeRestart ResizeAction = "restart"
	// ResizeSkip stops the tween and moves on as if it had completed.
	ResizeSkip ResizeAction = "skip"
	// ResizeNothing leaves the tween running.
	ResizeNothing ResizeAction = "nothing"
)

// Normalize maps the zero value to ResizeRestart.
func (a ResizeAction) Normalize() ResizeAction {
	if a == "" {
		return ResizeRestart
	}
	return a
}

// ParseResizeAction parses a textual resize action. The empty string yields
// ResizeRestart.
func ParseResizeAction(s string) (ResizeAction, error) {
	switch a := ResizeAction(s).Normalize(); a {
	case ResizeRestart, ResizeSkip, ResizeNothing:
		return a, nil
	default:
		return "", fmt.Errorf("unknown resize action %q", s)
	}
}

// TweenConfig describes one tween request.
//
// The engine only looks at Targets, OnComplete, OnStop and ResizeAction.
// Props, Duration and Ease are passed through to the Animator untouched.
type TweenConfig struct {
	// Targets are the objects being animated. An empty slice makes the step
	// degenerate.
	Targets []any

	// Props maps property names to their end values.
	Props map[string]float64

	Duration time.Duration

	// Ease names the easing curve, e.g. "Quad.easeOut". Empty means linear.
	Ease string

	// OnComplete runs when the tween finishes normally. The engine wraps it so
	// it can advance the train afterwards.
	OnComplete func()

	// OnStop runs when the tween is stopped early by a resize, a skip or a kill.
	OnStop func()

	ResizeAction ResizeAction
}

// HasTargets reports whether the config animates anything.
func (c TweenConfig) HasTargets() bool {
	return len(c.Targets) > 0
}

// Tween is a handle to a tween owned by an Animator.
type Tween interface {
	// Stop halts the tween without invoking its OnComplete callback.
	Stop()
}

// Animator creates tweens.
type Animator interface {
	AddTween(cfg TweenConfig) Tween
}

// Clock schedules one-shot callbacks.
type Clock interface {
	// AfterFunc calls fn once, after d has elapsed, on the goroutine that
	// drives the clock.
	AfterFunc(d time.Duration, fn func())

	// Now returns the clock's current time.
	Now() time.Time
}

// Scene is the owning context a Train is bound to.
type Scene struct {
	Name   string
	Tweens Animator
	Time   Clock
}
