package engine

import (
	"testing"
	"time"

	"github.com/petrijr/tweentrain/internal/clock"
	"github.com/petrijr/tweentrain/pkg/api"
)

// fakeAnimator records every tween request and lets tests complete them by
// hand.
type fakeAnimator struct {
	tweens []*fakeTween

	// instant completes tweens inside AddTween.
	instant bool
}

type fakeTween struct {
	cfg     api.TweenConfig
	stopped bool
	done    bool
}

func (a *fakeAnimator) AddTween(cfg api.TweenConfig) api.Tween {
	tw := &fakeTween{cfg: cfg}
	a.tweens = append(a.tweens, tw)
	if a.instant {
		tw.finish()
	}
	return tw
}

func (tw *fakeTween) Stop() {
	tw.stopped = true
}

// finish simulates the animator reaching the end of the tween.
func (tw *fakeTween) finish() {
	if tw.stopped || tw.done {
		return
	}
	tw.done = true
	if tw.cfg.OnComplete != nil {
		tw.cfg.OnComplete()
	}
}

// last returns the most recent tween.
func (a *fakeAnimator) last(t *testing.T) *fakeTween {
	t.Helper()
	if len(a.tweens) == 0 {
		t.Fatalf("no tween was requested")
	}
	return a.tweens[len(a.tweens)-1]
}

type fixture struct {
	reg   *Registry
	clock *clock.Manual
	anim  *fakeAnimator
	scene api.Scene
}

func newFixture(opts ...Option) *fixture {
	c := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	a := &fakeAnimator{}
	return &fixture{
		reg:   NewRegistry(opts...),
		clock: c,
		anim:  a,
		scene: api.Scene{Name: "test", Tweens: a, Time: c},
	}
}

func (f *fixture) train() *Train {
	return f.reg.Create(f.scene)
}

// sprite is a stand-in tween target.
type sprite struct{ name string }

// tweenOf returns a factory animating a single target.
func tweenOf(target any) func() api.TweenConfig {
	return func() api.TweenConfig {
		return api.TweenConfig{
			Targets:  []any{target},
			Props:    map[string]float64{"alpha": 1},
			Duration: 100 * time.Millisecond,
		}
	}
}

// logger collects labels in order.
type logger struct{ entries []string }

func (l *logger) add(s string) func() {
	return func() { l.entries = append(l.entries, s) }
}
