package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/petrijr/tweentrain/pkg/api"
)

// JournalObserver records train lifecycle events into an EventStore.
//
// Observer callbacks cannot return errors, so write failures are logged and
// counted instead of surfacing to the train.
type JournalObserver struct {
	ctx    context.Context
	store  EventStore
	logger *slog.Logger
	now    func() time.Time
	run    string

	failures int
}

// Ensure JournalObserver implements api.Observer.
var _ api.Observer = (*JournalObserver)(nil)

// JournalOption configures a JournalObserver.
type JournalOption func(*JournalObserver)

// WithJournalLogger sets the logger used to report write failures.
func WithJournalLogger(logger *slog.Logger) JournalOption {
	return func(j *JournalObserver) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// WithJournalClock stamps events with now instead of the wall clock. Hosts
// that drive trains from a manual clock pass its Now here.
func WithJournalClock(now func() time.Time) JournalOption {
	return func(j *JournalObserver) {
		if now != nil {
			j.now = now
		}
	}
}

// WithJournalRun tags every event with run so that several stages can share
// one store without their train IDs colliding.
func WithJournalRun(run string) JournalOption {
	return func(j *JournalObserver) {
		j.run = run
	}
}

// Run returns the run tag stamped on every event.
func (j *JournalObserver) Run() string {
	return j.run
}

// NewJournalObserver returns an observer that appends every callback to store.
// ctx is passed to each write; a nil ctx means context.Background().
func NewJournalObserver(ctx context.Context, store EventStore, opts ...JournalOption) *JournalObserver {
	if ctx == nil {
		ctx = context.Background()
	}
	if store == nil {
		store = NoopEventStore{}
	}
	j := &JournalObserver{
		ctx:    ctx,
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Failures returns the number of events that could not be written.
func (j *JournalObserver) Failures() int {
	return j.failures
}

func (j *JournalObserver) OnTrainStart(info api.TrainInfo) {
	detail := ""
	if info.ParentID != 0 {
		detail = fmt.Sprintf("parent=%d", info.ParentID)
	}
	j.append(info, api.EventTrainStarted, "", 0, detail)
}

func (j *JournalObserver) OnTrainFinished(info api.TrainInfo) {
	j.append(info, api.EventTrainFinished, "", 0, "")
}

func (j *JournalObserver) OnStepStart(info api.TrainInfo, kind api.StepKind, seq int) {
	j.append(info, api.EventStepStarted, kind, seq, "")
}

func (j *JournalObserver) OnStepCompleted(info api.TrainInfo, kind api.StepKind, seq int, outcome api.Outcome, d time.Duration) {
	j.append(info, api.EventStepCompleted, kind, seq, fmt.Sprintf("%s in %s", outcome, d))
}

func (j *JournalObserver) OnResize(info api.TrainInfo, action api.ResizeAction) {
	j.append(info, api.EventTrainResized, "", 0, string(action.Normalize()))
}

func (j *JournalObserver) append(info api.TrainInfo, typ api.EventType, kind api.StepKind, seq int, detail string) {
	ev := api.TrainEvent{
		Run:     j.run,
		TrainID: info.ID,
		Owner:   info.Owner,
		At:      j.now(),
		Type:    typ,
		Step:    kind,
		Seq:     seq,
		Detail:  detail,
	}
	if err := j.store.AppendEvent(j.ctx, ev); err != nil {
		j.failures++
		j.logger.Warn("journal_write_failed",
			slog.Uint64("train_id", info.ID),
			slog.String("event", string(typ)),
			slog.Any("error", err),
		)
	}
}
