package tweentrain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStage_TickAdvancesClockThenTweens(t *testing.T) {
	stage := NewLocalStage("stage", WithStartTime(time.Unix(100, 0)))
	s := NewSprite("s", '*', 0, 0)

	train := stage.Create().
		AddDelay(20 * time.Millisecond).
		Add(To(s, map[string]float64{"x": 10}, 20*time.Millisecond, ""))
	train.Run()
	require.Equal(t, "stage", train.Owner())

	// The delay fires first within the tick, so the tween it starts is
	// stepped by the same tick.
	stage.Tick(20 * time.Millisecond)
	assert.InDelta(t, 10, s.X, 1e-9)
	assert.True(t, train.Finished())
	assert.Equal(t, time.Unix(100, 0).Add(20*time.Millisecond), stage.Clock.Now())

	stage.Tick(-time.Second)
	assert.Equal(t, time.Unix(100, 0).Add(20*time.Millisecond), stage.Clock.Now())
}

func TestLocalStage_ResizeRestartsFromCurrentValues(t *testing.T) {
	stage := NewLocalStage("stage")
	s := NewSprite("s", '*', 0, 0)

	train := stage.Create().Add(To(s, map[string]float64{"x": 10}, 100*time.Millisecond, ""))
	train.Run()

	stage.Tick(50 * time.Millisecond)
	assert.InDelta(t, 5, s.X, 1e-9)

	stage.Resize()
	require.Equal(t, StateRunningTween, train.State())
	require.Equal(t, 1, stage.Animator.Active())

	stage.Tick(50 * time.Millisecond)
	assert.InDelta(t, 7.5, s.X, 1e-9)
	stage.Tick(50 * time.Millisecond)
	assert.InDelta(t, 10, s.X, 1e-9)
	assert.True(t, train.Finished())
}

func TestLocalStage_ResizeSkip(t *testing.T) {
	stage := NewLocalStage("stage")
	s := NewSprite("s", '*', 0, 0)

	reached := false
	train := stage.Create().
		Add(OnResize(To(s, map[string]float64{"x": 10}, 100*time.Millisecond, ""), ResizeSkip)).
		AddEvent(func() { reached = true })
	train.Run()

	stage.Tick(50 * time.Millisecond)
	stage.Resize()

	assert.True(t, reached)
	assert.True(t, train.Finished())
	assert.InDelta(t, 5, s.X, 1e-9)
	assert.Equal(t, 0, stage.Animator.Active())
}

func TestLocalStage_Shutdown(t *testing.T) {
	stage := NewLocalStage("stage")
	s := NewSprite("s", '*', 0, 0)

	a := stage.Create().Add(To(s, map[string]float64{"x": 10}, time.Second, ""))
	b := stage.Create().AddDelay(time.Second).AddEvent(func() { t.Fatal("killed train ran an event") })
	a.Run()
	b.Run()

	stage.Shutdown()
	assert.True(t, a.Finished())
	assert.True(t, b.Finished())
	assert.Equal(t, 0, stage.Registry.Live())
	assert.Equal(t, 0, stage.Animator.Active())

	stage.Tick(2 * time.Second)

	ran := false
	stage.Create().AddEvent(func() { ran = true }).Run()
	assert.True(t, ran)
}

func TestStepHelpers(t *testing.T) {
	cfg := TweenConfig{Targets: []any{1}, Duration: time.Second}
	assert.Equal(t, cfg, Fixed(cfg)())

	wrapped := OnResize(Fixed(cfg), ResizeNothing)()
	assert.Equal(t, ResizeNothing, wrapped.ResizeAction)
	assert.Equal(t, time.Second, wrapped.Duration)

	assert.Equal(t, 5*time.Millisecond, JitterDelay(5*time.Millisecond, time.Millisecond)())
	jitter := JitterDelay(10*time.Millisecond, 20*time.Millisecond)
	for i := 0; i < 100; i++ {
		d := jitter()
		assert.GreaterOrEqual(t, d, 10*time.Millisecond)
		assert.Less(t, d, 20*time.Millisecond)
	}
}
