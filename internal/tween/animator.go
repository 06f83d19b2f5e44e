// Package tween is a small frame-driven tween engine. It interpolates
// numeric properties of targets over time and is the animator the bundled
// hosts plug into their scenes.
package tween

import (
	"time"

	"github.com/petrijr/tweentrain/pkg/api"
)

// Target is anything with named numeric properties.
type Target interface {
	Property(name string) float64
	SetProperty(name string, v float64)
}

// Animator owns running tweens and advances them on Update. Targets that do
// not implement Target are carried along but never written to.
//
// Completion callbacks run inside Update, on the caller's goroutine.
// Animator is not safe for concurrent use.
type Animator struct {
	tweens []*Tween
}

// Ensure Animator implements api.Animator.
var _ api.Animator = (*Animator)(nil)

// NewAnimator returns an Animator with no running tweens.
func NewAnimator() *Animator {
	return &Animator{}
}

// Tween is a running tween. It implements api.Tween.
type Tween struct {
	targets    []Target
	props      map[string]float64
	from       []map[string]float64
	duration   time.Duration
	elapsed    time.Duration
	ease       EaseFunc
	onComplete func()

	stopped bool
	done    bool
}

// AddTween starts a tween. Start values are captured on the first Update, so
// a tween queued behind another one starts from wherever the first left off.
func (a *Animator) AddTween(cfg api.TweenConfig) api.Tween {
	tw := &Tween{
		props:      cfg.Props,
		duration:   cfg.Duration,
		ease:       Ease(cfg.Ease),
		onComplete: cfg.OnComplete,
	}
	for _, t := range cfg.Targets {
		if target, ok := t.(Target); ok {
			tw.targets = append(tw.targets, target)
		}
	}
	a.tweens = append(a.tweens, tw)
	return tw
}

// Stop halts the tween where it is. OnComplete is not called.
func (tw *Tween) Stop() {
	tw.stopped = true
}

// Active returns the number of tweens still running.
func (a *Animator) Active() int {
	n := 0
	for _, tw := range a.tweens {
		if !tw.stopped && !tw.done {
			n++
		}
	}
	return n
}

// Update advances every running tween by dt and fires completions. Tweens
// added by a completion callback start on the next Update.
func (a *Animator) Update(dt time.Duration) {
	running := make([]*Tween, len(a.tweens))
	copy(running, a.tweens)

	for _, tw := range running {
		if tw.stopped || tw.done {
			continue
		}
		tw.step(dt)
		if tw.done && tw.onComplete != nil {
			tw.onComplete()
		}
	}

	kept := a.tweens[:0]
	for _, tw := range a.tweens {
		if !tw.stopped && !tw.done {
			kept = append(kept, tw)
		}
	}
	for i := len(kept); i < len(a.tweens); i++ {
		a.tweens[i] = nil
	}
	a.tweens = kept
}

// StopAll stops every running tween without completing it.
func (a *Animator) StopAll() {
	for _, tw := range a.tweens {
		tw.Stop()
	}
	a.tweens = nil
}

func (tw *Tween) step(dt time.Duration) {
	if tw.from == nil {
		tw.from = make([]map[string]float64, len(tw.targets))
		for i, target := range tw.targets {
			start := make(map[string]float64, len(tw.props))
			for name := range tw.props {
				start[name] = target.Property(name)
			}
			tw.from[i] = start
		}
	}

	tw.elapsed += dt
	p := 1.0
	if tw.duration > 0 && tw.elapsed < tw.duration {
		p = float64(tw.elapsed) / float64(tw.duration)
	}
	eased := tw.ease(p)

	for i, target := range tw.targets {
		for name, end := range tw.props {
			start := tw.from[i][name]
			target.SetProperty(name, start+(end-start)*eased)
		}
	}

	if p >= 1 {
		tw.done = true
	}
}
