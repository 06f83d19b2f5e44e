package engine

import (
	"fmt"
	"time"

	"github.com/petrijr/tweentrain/pkg/api"
)

// Train is an ordered queue of steps plus the state needed to drive it.
//
// Trains are acquired from a Registry, filled through the builder methods and
// started with Run. They are not safe for concurrent use: every call,
// including the callbacks fired by the scene's animator and clock, must come
// from the same goroutine.
type Train struct {
	id       uint64
	scene    api.Scene
	observer api.Observer

	steps    []Step
	state    api.State
	looping  bool
	finished bool
	started  bool

	active *activeTween

	// parent is a non-owning back-reference to the train whose ParallelStep
	// is running this one. It is only used to report completion, is set once
	// and never changes.
	parent          *Train
	pendingChildren int

	// Trampoline state. Run re-enters itself through advance whenever a step
	// completes synchronously; pumping turns that recursion into a loop.
	pumping bool
	again   bool

	// gen is bumped every time the head executes so that late clock
	// callbacks from an earlier execution can be recognized and dropped.
	gen uint64

	seq       int
	headLive  bool
	stepStart time.Time
}

type activeTween struct {
	handle api.Tween
	onStop func()
	resize api.ResizeAction
}

func newTrain(id uint64, scene api.Scene, obs api.Observer) *Train {
	return &Train{
		id:       id,
		scene:    scene,
		observer: obs,
		state:    api.StateIdle,
	}
}

// ID returns the registry-assigned identifier. IDs are never reused, even
// when a registry slot is.
func (t *Train) ID() uint64 { return t.id }

// Owner returns the name of the scene the train is bound to.
func (t *Train) Owner() string { return t.scene.Name }

func (t *Train) State() api.State { return t.state }

func (t *Train) Finished() bool { return t.finished }

func (t *Train) Looping() bool { return t.looping }

// Len returns the number of queued steps, including the one executing.
func (t *Train) Len() int { return len(t.steps) }

// PendingChildren returns how many children of the running ParallelStep have
// not finished yet.
func (t *Train) PendingChildren() int { return t.pendingChildren }

// Parent returns the train that ran this one as a parallel child, if any.
func (t *Train) Parent() *Train { return t.parent }

// SetLooping controls whether completed steps are re-appended to the tail.
// The flag is read when a step completes, so a step already in flight
// finishes under whatever mode is in effect at that moment.
func (t *Train) SetLooping(looping bool) *Train {
	t.looping = looping
	return t
}

// Add appends a tween step. factory is called every time the step executes.
func (t *Train) Add(factory func() api.TweenConfig) *Train {
	if factory == nil {
		panic("tweentrain: nil tween config factory")
	}
	return t.push(TweenStep{Config: factory})
}

// AddDelay appends a fixed delay.
func (t *Train) AddDelay(d time.Duration) *Train {
	return t.push(DelayStep{Amount: d})
}

// AddDelayFunc appends a delay whose length is computed when the step starts.
func (t *Train) AddDelayFunc(fn func() time.Duration) *Train {
	if fn == nil {
		panic("tweentrain: nil delay function")
	}
	return t.push(DelayStep{AmountFn: fn})
}

// AddEvent appends an instant callback.
func (t *Train) AddEvent(cb func()) *Train {
	if cb == nil {
		panic("tweentrain: nil event callback")
	}
	return t.push(EventStep{Callback: cb})
}

// AddParallel appends a step that runs children side by side. A child must
// not be shared with another train's parallel step, nor listed twice.
func (t *Train) AddParallel(children ...*Train) *Train {
	seen := make(map[*Train]struct{}, len(children))
	for i, c := range children {
		if c == nil {
			panic(fmt.Sprintf("tweentrain: parallel child %d is nil", i))
		}
		if c == t {
			panic("tweentrain: a train cannot run itself in parallel")
		}
		if _, dup := seen[c]; dup {
			panic(fmt.Sprintf("tweentrain: parallel child %d is listed twice", i))
		}
		seen[c] = struct{}{}
	}
	cp := make([]*Train, len(children))
	copy(cp, children)
	return t.push(ParallelStep{Children: cp})
}

// AddStep appends an already-built step.
func (t *Train) AddStep(s Step) *Train {
	switch s := s.(type) {
	case TweenStep:
		return t.Add(s.Config)
	case DelayStep:
		if s.AmountFn != nil {
			return t.AddDelayFunc(s.AmountFn)
		}
		return t.AddDelay(s.Amount)
	case EventStep:
		return t.AddEvent(s.Callback)
	case ParallelStep:
		return t.AddParallel(s.Children...)
	default:
		panic(fmt.Sprintf("tweentrain: unknown step type %T", s))
	}
}

func (t *Train) push(s Step) *Train {
	t.steps = append(t.steps, s)
	return t
}

// Run executes the head step. It is a no-op on a finished train.
func (t *Train) Run() {
	if t.finished {
		return
	}
	if t.pumping {
		t.again = true
		return
	}

	t.pumping = true
	defer func() { t.pumping = false }()

	synchronous := 0
	for {
		t.again = false
		t.execute()
		if !t.again || t.finished {
			return
		}

		synchronous++
		if t.looping && synchronous >= len(t.steps) {
			// A whole cycle completed without suspending. Give the host a
			// chance to run before starting the next one.
			t.state = api.StateIdle
			gen := t.gen
			t.scene.Time.AfterFunc(0, func() {
				if t.gen == gen {
					t.Run()
				}
			})
			return
		}
	}
}

func (t *Train) execute() {
	if t.finished {
		return
	}
	t.gen++

	if !t.started {
		t.started = true
		t.observer.OnTrainStart(t.info())
	}

	if len(t.steps) == 0 {
		t.finish()
		return
	}

	head := t.steps[0]
	if !t.headLive {
		t.headLive = true
		t.seq++
	}
	t.stepStart = t.now()
	t.observer.OnStepStart(t.info(), head.Kind(), t.seq)

	switch s := head.(type) {
	case DelayStep:
		t.state = api.StateRunningDelay
		gen := t.gen
		t.scene.Time.AfterFunc(s.duration(), func() {
			if t.gen == gen {
				t.complete(api.OutcomeCompleted)
			}
		})

	case EventStep:
		t.state = api.StateRunningEvent
		s.Callback()
		t.complete(api.OutcomeCompleted)

	case ParallelStep:
		t.state = api.StateAwaitingChildren
		if len(s.Children) == 0 {
			t.complete(api.OutcomeCompleted)
			return
		}
		t.pendingChildren = len(s.Children)
		for _, child := range s.Children {
			if child.parent == nil {
				child.parent = t
			}
			if child.finished {
				// Already drained, e.g. on the second pass of a looping
				// parent. It counts as joined.
				t.childFinished()
				continue
			}
			child.Run()
		}

	case TweenStep:
		cfg := s.Config()
		if !cfg.HasTargets() {
			t.complete(api.OutcomeDegenerate)
			return
		}
		t.startTween(cfg)

	default:
		panic(fmt.Sprintf("tweentrain: unknown step type %T", head))
	}
}

func (t *Train) startTween(cfg api.TweenConfig) {
	at := &activeTween{
		onStop: cfg.OnStop,
		resize: cfg.ResizeAction.Normalize(),
	}
	if at.onStop == nil {
		at.onStop = func() {}
	}

	userComplete := cfg.OnComplete
	cfg.OnComplete = func() {
		if t.active != at {
			// Stopped or replaced; the completion belongs to a dead tween.
			return
		}
		t.active = nil
		if userComplete != nil {
			userComplete()
		}
		t.complete(api.OutcomeCompleted)
	}

	t.state = api.StateRunningTween
	t.active = at
	at.handle = t.scene.Tweens.AddTween(cfg)
}

// complete ends the head step with the given outcome and moves on.
func (t *Train) complete(outcome api.Outcome) {
	if t.finished {
		return
	}
	t.endStep(outcome)
	t.advance()
}

func (t *Train) endStep(outcome api.Outcome) {
	if !t.headLive || len(t.steps) == 0 {
		return
	}
	t.headLive = false
	t.observer.OnStepCompleted(t.info(), t.steps[0].Kind(), t.seq, outcome, t.now().Sub(t.stepStart))
}

// advance drops the head, re-appending it when looping, and runs the next
// step.
func (t *Train) advance() {
	if t.finished {
		return
	}
	if len(t.steps) > 0 {
		head := t.steps[0]
		t.steps[0] = nil
		t.steps = t.steps[1:]
		if t.looping {
			t.steps = append(t.steps, head)
		}
	}
	t.Run()
}

func (t *Train) finish() {
	if t.finished {
		return
	}
	t.finished = true
	t.state = api.StateFinished
	t.active = nil
	t.pendingChildren = 0
	// A train killed before it ever ran was never reported as started.
	if t.started {
		t.observer.OnTrainFinished(t.info())
	}

	if p := t.parent; p != nil {
		p.childFinished()
	}
}

func (t *Train) childFinished() {
	if t.finished || t.pendingChildren == 0 {
		return
	}
	t.pendingChildren--
	if t.pendingChildren == 0 {
		t.complete(api.OutcomeCompleted)
	}
}

// stopActive stops the in-flight tween, if any, firing its OnStop hook.
// The tween's OnComplete is not called.
//
// The hook may call back into the train. Callers compare t.gen before and
// after to detect that the train moved on (or finished) underneath them.
func (t *Train) stopActive() bool {
	at := t.active
	if at == nil {
		return false
	}
	t.active = nil
	at.onStop()
	if at.handle != nil {
		at.handle.Stop()
	}
	return true
}

// Resize applies the active tween's resize action. Trains waiting on a
// delay, an event or parallel children are unaffected.
func (t *Train) Resize() {
	if t.finished || t.active == nil {
		return
	}
	action := t.active.resize
	t.observer.OnResize(t.info(), action)

	switch action {
	case api.ResizeNothing:
	case api.ResizeSkip:
		gen := t.gen
		t.stopActive()
		if t.finished || t.gen != gen {
			return
		}
		t.complete(api.OutcomeSkipped)
	default:
		gen := t.gen
		t.stopActive()
		if t.finished || t.gen != gen {
			return
		}
		// The head stays live so the rerun keeps its seq.
		t.observer.OnStepCompleted(t.info(), t.steps[0].Kind(), t.seq, api.OutcomeRestarted, t.now().Sub(t.stepStart))
		t.Run()
	}
}

// SkipToNext abandons the active tween and moves to the next step. It does
// nothing while the train waits on a delay or on parallel children.
func (t *Train) SkipToNext() {
	if t.finished {
		return
	}
	gen := t.gen
	if !t.stopActive() || t.finished || t.gen != gen {
		return
	}
	t.complete(api.OutcomeSkipped)
}

// SkipToLast abandons the active tween, discards every queued step except
// the final one and runs it. It does nothing without an active tween.
func (t *Train) SkipToLast() {
	if t.finished {
		return
	}
	gen := t.gen
	if !t.stopActive() || t.finished || t.gen != gen || len(t.steps) == 0 {
		return
	}
	t.endStep(api.OutcomeSkipped)
	last := t.steps[len(t.steps)-1]
	t.steps = []Step{last}
	t.Run()
}

// Kill stops the active tween, drops every queued step and finishes the
// train synchronously, reporting to its parent if it has one. Killing a
// finished train does nothing. A train killed before its first Run reports
// no lifecycle events to the observer.
func (t *Train) Kill() {
	if t.finished {
		return
	}
	t.stopActive()
	if t.finished {
		// The OnStop hook killed the train already.
		return
	}
	t.endStep(api.OutcomeKilled)
	t.steps = nil
	t.gen++
	t.finish()
}

func (t *Train) info() api.TrainInfo {
	info := api.TrainInfo{ID: t.id, Owner: t.scene.Name}
	if t.parent != nil {
		info.ParentID = t.parent.id
	}
	return info
}

func (t *Train) now() time.Time {
	if t.scene.Time != nil {
		return t.scene.Time.Now()
	}
	return time.Now()
}

func (t *Train) String() string {
	return fmt.Sprintf("train-%d(%s, %d steps)", t.id, t.state, len(t.steps))
}
