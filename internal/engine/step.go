package engine

import (
	"time"

	"github.com/petrijr/tweentrain/pkg/api"
)

// Step is one unit of work in a Train.
//
// The set of variants is closed: TweenStep, DelayStep, EventStep and
// ParallelStep. The executor switches over them exhaustively.
type Step interface {
	Kind() api.StepKind
	step()
}

// TweenStep requests a tween. Config is evaluated each time the step
// executes, so it may read live values such as positions or scales.
type TweenStep struct {
	Config func() api.TweenConfig
}

// DelayStep waits on the scene clock. When AmountFn is set it is evaluated
// at the moment the step starts and Amount is ignored.
type DelayStep struct {
	Amount   time.Duration
	AmountFn func() time.Duration
}

// EventStep calls Callback synchronously and moves on.
type EventStep struct {
	Callback func()
}

// ParallelStep runs Children side by side and completes when the last of
// them finishes.
type ParallelStep struct {
	Children []*Train
}

func (TweenStep) Kind() api.StepKind    { return api.StepTween }
func (DelayStep) Kind() api.StepKind    { return api.StepDelay }
func (EventStep) Kind() api.StepKind    { return api.StepEvent }
func (ParallelStep) Kind() api.StepKind { return api.StepParallel }

func (TweenStep) step()    {}
func (DelayStep) step()    {}
func (EventStep) step()    {}
func (ParallelStep) step() {}

func (s DelayStep) duration() time.Duration {
	if s.AmountFn != nil {
		return s.AmountFn()
	}
	return s.Amount
}
