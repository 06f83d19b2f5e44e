package tweentrain

import (
	"math/rand/v2"
	"time"
)

// Fixed returns a tween factory that always yields cfg.
func Fixed(cfg TweenConfig) func() TweenConfig {
	return func() TweenConfig { return cfg }
}

// To returns a factory tweening target's props over d with the given ease.
func To(target any, props map[string]float64, d time.Duration, ease string) func() TweenConfig {
	return Fixed(TweenConfig{
		Targets:  []any{target},
		Props:    props,
		Duration: d,
		Ease:     ease,
	})
}

// OnResize wraps factory so that every config it yields uses action.
func OnResize(factory func() TweenConfig, action ResizeAction) func() TweenConfig {
	return func() TweenConfig {
		cfg := factory()
		cfg.ResizeAction = action
		return cfg
	}
}

// JitterDelay returns a delay function for AddDelayFunc drawing uniformly
// from [lo, hi). It returns lo when hi <= lo.
func JitterDelay(lo, hi time.Duration) func() time.Duration {
	return func() time.Duration {
		if hi <= lo {
			return lo
		}
		return lo + rand.N(hi-lo)
	}
}
