package tweentrain

import (
	"time"

	"github.com/petrijr/tweentrain/internal/clock"
	"github.com/petrijr/tweentrain/internal/engine"
	"github.com/petrijr/tweentrain/internal/tween"
	"github.com/petrijr/tweentrain/pkg/api"
)

// LocalStage bundles a Registry, a manual clock and a tween Animator into a
// single Scene for hosts that drive animation from a frame loop.
//
// Typical usage:
//
//	stage := tweentrain.NewLocalStage("menu")
//	stage.Create().
//		Add(tweentrain.To(logo, map[string]float64{"alpha": 1}, 300*time.Millisecond, "Quad.easeOut")).
//		AddDelay(time.Second).
//		Run()
//
//	// once per frame:
//	stage.Tick(frame)
//
// LocalStage is not safe for concurrent use; call it from the goroutine that
// owns the frame loop.
type LocalStage struct {
	// Registry owns every train created on this stage.
	Registry *Registry

	// Clock is advanced by Tick and schedules delays.
	Clock *clock.Manual

	// Animator runs tweens and is updated by Tick.
	Animator *tween.Animator

	scene api.Scene
}

// StageOption configures a LocalStage.
type StageOption func(*stageOptions)

type stageOptions struct {
	start    time.Time
	observer Observer
}

// WithStartTime sets the initial time of the stage clock.
func WithStartTime(t time.Time) StageOption {
	return func(o *stageOptions) { o.start = t }
}

// WithStageObserver sets the observer trains on this stage report to.
func WithStageObserver(obs Observer) StageOption {
	return func(o *stageOptions) { o.observer = obs }
}

// NewLocalStage returns a stage whose trains are owned by name.
func NewLocalStage(name string, opts ...StageOption) *LocalStage {
	o := stageOptions{start: time.Unix(0, 0)}
	for _, opt := range opts {
		opt(&o)
	}

	clk := clock.NewManual(o.start)
	anim := tween.NewAnimator()

	var regOpts []engine.Option
	if o.observer != nil {
		regOpts = append(regOpts, engine.WithObserver(o.observer))
	}

	return &LocalStage{
		Registry: engine.NewRegistry(regOpts...),
		Clock:    clk,
		Animator: anim,
		scene:    api.Scene{Name: name, Tweens: anim, Time: clk},
	}
}

// Scene returns the scene trains on this stage run in.
func (s *LocalStage) Scene() Scene {
	return s.scene
}

// Create returns a new idle train on this stage.
func (s *LocalStage) Create() *Train {
	return s.Registry.Create(s.scene)
}

// Compile builds p on this stage. See script.Compile.
func (s *LocalStage) Compile(p Program, b Bindings) (*Train, error) {
	return Compile(s.Registry, s.scene, p, b)
}

// Tick advances the clock by dt, firing due delays, then advances running
// tweens by dt.
func (s *LocalStage) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.Clock.Advance(dt)
	s.Animator.Update(dt)
}

// Resize broadcasts a resize to every live train on the stage.
func (s *LocalStage) Resize() {
	s.Registry.BroadcastResize()
}

// Shutdown kills every train and drops any tweens still running. The stage
// can be reused afterwards.
func (s *LocalStage) Shutdown() {
	s.Registry.KillAll()
	s.Animator.StopAll()
}
