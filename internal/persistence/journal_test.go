package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrijr/tweentrain/pkg/api"
)

func TestInMemoryEventStore_StampsMissingTime(t *testing.T) {
	store := NewInMemoryEventStore()
	require.NoError(t, store.AppendEvent(context.Background(), api.TrainEvent{TrainID: 1, Type: api.EventTrainStarted}))

	events, err := store.ListEvents(context.Background(), "", 1)
	require.NoError(t, err)
	assert.False(t, events[0].At.IsZero())
}

func TestJournalObserver_RecordsLifecycle(t *testing.T) {
	store := NewInMemoryEventStore()
	at := time.Unix(1700000000, 0)
	j := NewJournalObserver(context.Background(), store,
		WithJournalClock(func() time.Time { return at }),
		WithJournalRun("run-a"),
	)
	require.Equal(t, "run-a", j.Run())

	info := api.TrainInfo{ID: 7, Owner: "menu", ParentID: 3}
	j.OnTrainStart(info)
	j.OnStepStart(info, api.StepDelay, 1)
	j.OnStepCompleted(info, api.StepDelay, 1, api.OutcomeCompleted, 50*time.Millisecond)
	j.OnResize(info, "")
	j.OnTrainFinished(info)

	_, err := store.ListEvents(context.Background(), "", 7)
	require.ErrorIs(t, err, ErrTrainNotFound)

	events, err := store.ListEvents(context.Background(), "run-a", 7)
	require.NoError(t, err)
	require.Len(t, events, 5)

	types := make([]api.EventType, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
		assert.Equal(t, "menu", ev.Owner)
		assert.Equal(t, "run-a", ev.Run)
		assert.True(t, at.Equal(ev.At))
	}
	assert.Equal(t, []api.EventType{
		api.EventTrainStarted,
		api.EventStepStarted,
		api.EventStepCompleted,
		api.EventTrainResized,
		api.EventTrainFinished,
	}, types)

	assert.Equal(t, "parent=3", events[0].Detail)
	assert.Equal(t, "completed in 50ms", events[2].Detail)
	assert.Equal(t, 1, events[2].Seq)
	assert.Equal(t, string(api.ResizeRestart), events[3].Detail)
	assert.Equal(t, 0, j.Failures())
}

type failingStore struct {
	NoopEventStore
}

func (failingStore) AppendEvent(ctx context.Context, ev api.TrainEvent) error {
	return errors.New("disk full")
}

func TestJournalObserver_CountsFailures(t *testing.T) {
	j := NewJournalObserver(context.Background(), failingStore{})

	j.OnTrainStart(api.TrainInfo{ID: 1})
	j.OnTrainFinished(api.TrainInfo{ID: 1})

	assert.Equal(t, 2, j.Failures())
}

func TestJournalObserver_DefaultsToNoopStore(t *testing.T) {
	j := NewJournalObserver(context.Background(), nil)
	j.OnTrainStart(api.TrainInfo{ID: 1})
	assert.Equal(t, 0, j.Failures())
}
