// Package script loads train programs from YAML and compiles them into
// trains on a Registry.
//
// A program looks like:
//
//	name: intro
//	loop: false
//	steps:
//	  - tween: {targets: [logo], props: {alpha: 1}, duration: 300ms, ease: Quad.easeOut}
//	  - delay: 1s
//	  - parallel:
//	      - steps: [{tween: {targets: [a], props: {x: 10}, duration: 200ms}}]
//	      - steps: [{tween: {targets: [b], props: {x: 20}, duration: 400ms}}]
//	  - event: intro_done
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/petrijr/tweentrain/internal/tween"
	"github.com/petrijr/tweentrain/pkg/api"
)

var (
	// ErrInvalidStep is returned for a step that does not declare exactly one
	// kind, or whose fields do not parse.
	ErrInvalidStep = errors.New("invalid step")
	// ErrUnknownEvent is returned when an event step names a callback that
	// was not bound.
	ErrUnknownEvent = errors.New("unknown event")
)

// Program is a named list of steps, optionally looping.
type Program struct {
	Name  string `yaml:"name,omitempty"`
	Loop  bool   `yaml:"loop,omitempty"`
	Steps []Step `yaml:"steps"`

	// Source is the file the program was loaded from, if any.
	Source string `yaml:"-"`
}

// Step declares exactly one of its fields.
type Step struct {
	Tween    *TweenSpec `yaml:"tween,omitempty"`
	Delay    string     `yaml:"delay,omitempty"`
	Event    string     `yaml:"event,omitempty"`
	Parallel []Program  `yaml:"parallel,omitempty"`
}

// TweenSpec is the YAML form of api.TweenConfig. Targets are names looked up
// in Bindings when the step runs.
type TweenSpec struct {
	Targets  []string           `yaml:"targets"`
	Props    map[string]float64 `yaml:"props,omitempty"`
	Duration string             `yaml:"duration,omitempty"`
	Ease     string             `yaml:"ease,omitempty"`
	Resize   string             `yaml:"resize,omitempty"`
}

// Kind reports which step kind s declares. It returns an empty kind when s
// declares none or more than one.
func (s Step) Kind() api.StepKind {
	var kinds []api.StepKind
	if s.Tween != nil {
		kinds = append(kinds, api.StepTween)
	}
	if s.Delay != "" {
		kinds = append(kinds, api.StepDelay)
	}
	if s.Event != "" {
		kinds = append(kinds, api.StepEvent)
	}
	if s.Parallel != nil {
		kinds = append(kinds, api.StepParallel)
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Parse decodes and validates a single program.
func Parse(data []byte) (Program, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Program{}, fmt.Errorf("script: program is empty")
	}
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Program{}, fmt.Errorf("script: decode program: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Program{}, err
	}
	return p, nil
}

// LoadFile reads a YAML program from disk.
func LoadFile(path string) (Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Program{}, fmt.Errorf("script: read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return Program{}, fmt.Errorf("script: %s: %w", path, err)
	}
	p.Source = filepath.Clean(path)
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// Validate checks every step, including nested parallel programs. It does
// not check bindings; Compile does that.
func (p Program) Validate() error {
	return p.validate(p.label())
}

func (p Program) label() string {
	if p.Name != "" {
		return p.Name
	}
	return "program"
}

func (p Program) validate(path string) error {
	for i, s := range p.Steps {
		where := fmt.Sprintf("%s: step %d", path, i+1)
		switch s.Kind() {
		case api.StepTween:
			if err := s.Tween.validate(); err != nil {
				return fmt.Errorf("%s: %w", where, err)
			}
		case api.StepDelay:
			if _, err := parseDuration(s.Delay); err != nil {
				return fmt.Errorf("%s: delay: %w", where, err)
			}
		case api.StepEvent:
		case api.StepParallel:
			for j, child := range s.Parallel {
				name := child.Name
				if name == "" {
					name = fmt.Sprintf("branch %d", j+1)
				}
				if err := child.validate(where + ": " + name); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%s: %w: want exactly one of tween, delay, event, parallel", where, ErrInvalidStep)
		}
	}
	return nil
}

func (t *TweenSpec) validate() error {
	if t.Duration != "" {
		if _, err := parseDuration(t.Duration); err != nil {
			return fmt.Errorf("tween duration: %w", err)
		}
	}
	if !tween.KnownEase(t.Ease) {
		return fmt.Errorf("%w: unknown ease %q", ErrInvalidStep, t.Ease)
	}
	if _, err := api.ParseResizeAction(t.Resize); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStep, err)
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidStep, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: negative duration %s", ErrInvalidStep, s)
	}
	return d, nil
}

// TargetNames returns the sorted, de-duplicated tween target names used
// anywhere in p.
func (p Program) TargetNames() []string {
	seen := map[string]struct{}{}
	p.walk(func(s Step) {
		if s.Tween != nil {
			for _, name := range s.Tween.Targets {
				seen[name] = struct{}{}
			}
		}
	})
	return sortedKeys(seen)
}

// EventNames returns the sorted, de-duplicated event names used anywhere
// in p.
func (p Program) EventNames() []string {
	seen := map[string]struct{}{}
	p.walk(func(s Step) {
		if s.Event != "" {
			seen[s.Event] = struct{}{}
		}
	})
	return sortedKeys(seen)
}

func (p Program) walk(fn func(Step)) {
	for _, s := range p.Steps {
		fn(s)
		for _, child := range s.Parallel {
			child.walk(fn)
		}
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
