package persistence

import (
	"context"
	"errors"

	"github.com/petrijr/tweentrain/pkg/api"
)

var (
	// ErrTrainNotFound is returned when no events were recorded for a train
	// in the requested run.
	ErrTrainNotFound = errors.New("train not found")
)

// EventFilter is used to select events across trains.
// Zero values mean "no filter" for that field.
type EventFilter struct {
	Run   string
	Owner string
	Type  api.EventType

	// Limit caps the number of events returned. Values <= 0 mean no limit.
	Limit int
}

// EventStore is an append-only history store for train lifecycle events.
type EventStore interface {
	AppendEvent(ctx context.Context, ev api.TrainEvent) error
	// ListEvents returns the events of one train of run in append order, or
	// ErrTrainNotFound if none were recorded.
	ListEvents(ctx context.Context, run string, trainID uint64) ([]api.TrainEvent, error)
	// QueryEvents returns events matching filter in append order.
	QueryEvents(ctx context.Context, filter EventFilter) ([]api.TrainEvent, error)
}

func (f EventFilter) matches(ev api.TrainEvent) bool {
	if f.Run != "" && ev.Run != f.Run {
		return false
	}
	if f.Owner != "" && ev.Owner != f.Owner {
		return false
	}
	if f.Type != "" && ev.Type != f.Type {
		return false
	}
	return true
}
