package script

import (
	"fmt"
	"time"

	"github.com/petrijr/tweentrain/internal/engine"
	"github.com/petrijr/tweentrain/pkg/api"
)

// Bindings connects the names used in a program to host objects.
type Bindings struct {
	// Targets maps tween target names to tween targets. The map is read each
	// time a tween step runs, so hosts may add or remove targets after
	// Compile.
	Targets map[string]any

	// Events maps event names to callbacks.
	Events map[string]func()
}

// Compile validates p, checks its event names against b and builds the
// trains on reg. Parallel branches become child trains owned by the branch
// name, or by scene.Name when the branch is unnamed. The returned root train
// has not been started.
//
// On error no train is created.
func Compile(reg *engine.Registry, scene api.Scene, p Program, b Bindings) (*engine.Train, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := checkEvents(p, b, p.label()); err != nil {
		return nil, err
	}
	if p.Name != "" {
		scene.Name = p.Name
	}
	return build(reg, scene, p, b), nil
}

func checkEvents(p Program, b Bindings, path string) error {
	for i, s := range p.Steps {
		switch s.Kind() {
		case api.StepEvent:
			if b.Events[s.Event] == nil {
				return fmt.Errorf("%s: step %d: %w %q", path, i+1, ErrUnknownEvent, s.Event)
			}
		case api.StepParallel:
			for _, child := range s.Parallel {
				if err := checkEvents(child, b, path+": "+child.label()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// build assumes p has been validated.
func build(reg *engine.Registry, scene api.Scene, p Program, b Bindings) *engine.Train {
	t := reg.Create(scene).SetLooping(p.Loop)
	for _, s := range p.Steps {
		switch s.Kind() {
		case api.StepTween:
			t.Add(tweenFactory(*s.Tween, b))
		case api.StepDelay:
			d, _ := parseDuration(s.Delay)
			t.AddDelay(d)
		case api.StepEvent:
			t.AddEvent(b.Events[s.Event])
		case api.StepParallel:
			children := make([]*engine.Train, 0, len(s.Parallel))
			for _, child := range s.Parallel {
				sub := scene
				if child.Name != "" {
					sub.Name = child.Name
				}
				children = append(children, build(reg, sub, child, b))
			}
			t.AddParallel(children...)
		}
	}
	return t
}

func tweenFactory(ts TweenSpec, b Bindings) func() api.TweenConfig {
	var duration time.Duration
	if ts.Duration != "" {
		duration, _ = parseDuration(ts.Duration)
	}
	resize, _ := api.ParseResizeAction(ts.Resize)

	return func() api.TweenConfig {
		targets := make([]any, 0, len(ts.Targets))
		for _, name := range ts.Targets {
			if target, ok := b.Targets[name]; ok && target != nil {
				targets = append(targets, target)
			}
		}
		return api.TweenConfig{
			Targets:      targets,
			Props:        ts.Props,
			Duration:     duration,
			Ease:         ts.Ease,
			ResizeAction: resize,
		}
	}
}
