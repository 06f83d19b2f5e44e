package api

// State is the execution state of a Train.
type State string

const (
	StateIdle             State = "IDLE"
	StateRunningTween     State = "RUNNING_TWEEN"
	StateRunningDelay     State = "RUNNING_DELAY"
	StateRunningEvent     State = "RUNNING_EVENT"
	StateAwaitingChildren State = "AWAITING_CHILDREN"
	StateFinished         State = "FINISHED"
)

// StepKind identifies which variant a step is.
type StepKind string

const (
	StepTween    StepKind = "tween"
	StepDelay    StepKind = "delay"
	StepEvent    StepKind = "event"
	StepParallel StepKind = "parallel"
)

// Outcome describes how a step ended.
type Outcome string

const (
	// OutcomeCompleted is a step that ran to its natural end.
	OutcomeCompleted Outcome = "completed"
	// OutcomeDegenerate is a tween step whose config had no targets.
	OutcomeDegenerate Outcome = "degenerate"
	// OutcomeSkipped is a step abandoned by SkipToNext, SkipToLast or a
	// "skip" resize.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeRestarted is a tween step stopped by a "restart" resize; the same
	// step runs again.
	OutcomeRestarted Outcome = "restarted"
	// OutcomeKilled is a step discarded by Kill.
	OutcomeKilled Outcome = "killed"
)

// TrainInfo identifies a train in observer callbacks.
type TrainInfo struct {
	ID    uint64
	Owner string

	// ParentID is zero for trains that are not running as a parallel child.
	ParentID uint64
}
