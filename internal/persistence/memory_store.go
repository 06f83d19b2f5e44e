package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/petrijr/tweentrain/pkg/api"
)

// InMemoryEventStore is a simple, goroutine-safe EventStore backed by a
// slice.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events []api.TrainEvent
}

// NewInMemoryEventStore creates a new InMemoryEventStore.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{}
}

// Ensure InMemoryEventStore implements EventStore.
var _ EventStore = (*InMemoryEventStore)(nil)

func (s *InMemoryEventStore) AppendEvent(ctx context.Context, ev api.TrainEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, ev)
	return nil
}

func (s *InMemoryEventStore) ListEvents(ctx context.Context, run string, trainID uint64) ([]api.TrainEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []api.TrainEvent
	for _, ev := range s.events {
		if ev.Run == run && ev.TrainID == trainID {
			out = append(out, ev)
		}
	}
	if len(out) == 0 {
		return nil, ErrTrainNotFound
	}
	return out, nil
}

func (s *InMemoryEventStore) QueryEvents(ctx context.Context, filter EventFilter) ([]api.TrainEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []api.TrainEvent
	for _, ev := range s.events {
		if !filter.matches(ev) {
			continue
		}
		out = append(out, ev)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
