package api

import "time"

// EventType identifies a train history event.
type EventType string

const (
	EventTrainStarted  EventType = "train.started"
	EventTrainFinished EventType = "train.finished"
	EventTrainResized  EventType = "train.resized"

	EventStepStarted   EventType = "step.started"
	EventStepCompleted EventType = "step.completed"
)

// TrainEvent is a minimal append-only history record for debugging.
// It is intentionally small; the journal is not a replay log.
type TrainEvent struct {
	// Run identifies the stage that wrote the event. Train IDs are only
	// unique within a run.
	Run     string
	TrainID uint64
	Owner   string
	At      time.Time
	Type    EventType

	// Step is empty for train-level events.
	Step StepKind
	// Seq counts executed steps within the train, starting at 1. Zero for
	// train-level events.
	Seq int

	// Short human-oriented detail (outcome, resize action). Keep it small.
	Detail string
}
