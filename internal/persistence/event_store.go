package persistence

import (
	"context"

	"github.com/petrijr/tweentrain/pkg/api"
)

// NoopEventStore discards all events.
type NoopEventStore struct{}

// Ensure NoopEventStore implements EventStore.
var _ EventStore = NoopEventStore{}

func (NoopEventStore) AppendEvent(ctx context.Context, ev api.TrainEvent) error { return nil }
func (NoopEventStore) ListEvents(ctx context.Context, run string, trainID uint64) ([]api.TrainEvent, error) {
	return nil, ErrTrainNotFound
}
func (NoopEventStore) QueryEvents(ctx context.Context, filter EventFilter) ([]api.TrainEvent, error) {
	return nil, nil
}
