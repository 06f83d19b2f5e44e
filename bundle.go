package tweentrain

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/petrijr/tweentrain/internal/persistence"
)

// JournalBundle wires together a LocalStage and a SQLite journal that
// records the lifecycle of every train on the stage.
type JournalBundle struct {
	Stage   *LocalStage
	Journal *persistence.SQLiteEventStore

	// Run tags every event this bundle writes. Train IDs restart at 1 for
	// each bundle, so reads go through the run.
	Run string

	// Observer is the journal observer attached to the stage. Failures
	// reports how many events could not be written.
	Observer *JournalObserver
}

// NewSQLiteBundle constructs a stage whose trains are journaled into db.
// The schema is created if missing. Each bundle gets a fresh run ID, and its
// stage clock starts at the current wall time unless WithStartTime says
// otherwise. Events are stamped with the stage clock. Further observers (logging, metrics) can be passed with
// WithStageObserver; they run alongside the journal.
//
// Typical usage:
//
//	db, _ := sql.Open("sqlite", "file:trains.db?_journal=WAL")
//	bundle, err := tweentrain.NewSQLiteBundle(ctx, "menu", db, logger)
//	// create trains via bundle.Stage
//	events, _ := bundle.Journal.ListEvents(ctx, bundle.Run, train.ID())
func NewSQLiteBundle(ctx context.Context, name string, db *sql.DB, logger *slog.Logger, opts ...StageOption) (*JournalBundle, error) {
	store, err := persistence.NewSQLiteEventStore(db)
	if err != nil {
		return nil, err
	}

	run := uuid.NewString()
	var stage *LocalStage
	journal := persistence.NewJournalObserver(ctx, store,
		persistence.WithJournalLogger(logger),
		persistence.WithJournalClock(func() time.Time { return stage.Clock.Now() }),
		persistence.WithJournalRun(run),
	)

	stageOpts := append([]StageOption{WithStartTime(time.Now())}, opts...)
	o := stageOptions{}
	for _, opt := range stageOpts {
		opt(&o)
	}
	stageOpts = append(stageOpts, WithStageObserver(NewCompositeObserver(o.observer, journal)))
	stage = NewLocalStage(name, stageOpts...)

	return &JournalBundle{
		Stage:    stage,
		Journal:  store,
		Run:      run,
		Observer: journal,
	}, nil
}
