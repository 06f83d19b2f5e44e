package api

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from trains for logging and metrics.
//
// Callbacks run synchronously on the goroutine driving the trains, in the
// middle of step transitions. Implementations must be fast and must not call
// back into the train that reported the event.
type Observer interface {
	// OnTrainStart is called once, the first time a train runs a step.
	OnTrainStart(info TrainInfo)

	// OnTrainFinished is called once when a train reaches StateFinished,
	// whether it drained naturally or was killed.
	OnTrainFinished(info TrainInfo)

	// OnStepStart is called before a step executes. seq counts executed
	// steps within the train, starting at 1; a restarted step keeps its seq.
	OnStepStart(info TrainInfo, kind StepKind, seq int)

	// OnStepCompleted is called when a step leaves the head of the queue, or
	// is stopped for a restart.
	OnStepCompleted(info TrainInfo, kind StepKind, seq int, outcome Outcome, d time.Duration)

	// OnResize is called when a resize reaches a train with an active tween.
	OnResize(info TrainInfo, action ResizeAction)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnTrainStart(info TrainInfo)                         {}
func (NoopObserver) OnTrainFinished(info TrainInfo)                      {}
func (NoopObserver) OnStepStart(info TrainInfo, kind StepKind, seq int) {}
func (NoopObserver) OnStepCompleted(info TrainInfo, kind StepKind, seq int, outcome Outcome, d time.Duration) {
}
func (NoopObserver) OnResize(info TrainInfo, action ResizeAction) {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnTrainStart(info TrainInfo) {
	for _, o := range c.observers {
		o.OnTrainStart(info)
	}
}

func (c *CompositeObserver) OnTrainFinished(info TrainInfo) {
	for _, o := range c.observers {
		o.OnTrainFinished(info)
	}
}

func (c *CompositeObserver) OnStepStart(info TrainInfo, kind StepKind, seq int) {
	for _, o := range c.observers {
		o.OnStepStart(info, kind, seq)
	}
}

func (c *CompositeObserver) OnStepCompleted(info TrainInfo, kind StepKind, seq int, outcome Outcome, d time.Duration) {
	for _, o := range c.observers {
		o.OnStepCompleted(info, kind, seq, outcome, d)
	}
}

func (c *CompositeObserver) OnResize(info TrainInfo, action ResizeAction) {
	for _, o := range c.observers {
		o.OnResize(info, action)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs train / step lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnTrainStart(info TrainInfo) {
	o.Logger.Info("train_start", trainAttrs(info)...)
}

func (o *LoggingObserver) OnTrainFinished(info TrainInfo) {
	o.Logger.Info("train_finished", trainAttrs(info)...)
}

func (o *LoggingObserver) OnStepStart(info TrainInfo, kind StepKind, seq int) {
	o.Logger.Debug("step_start", append(trainAttrs(info),
		slog.String("step", string(kind)),
		slog.Int("seq", seq),
	)...)
}

func (o *LoggingObserver) OnStepCompleted(info TrainInfo, kind StepKind, seq int, outcome Outcome, d time.Duration) {
	o.Logger.Debug("step_completed", append(trainAttrs(info),
		slog.String("step", string(kind)),
		slog.Int("seq", seq),
		slog.String("outcome", string(outcome)),
		slog.Duration("duration", d),
	)...)
}

func (o *LoggingObserver) OnResize(info TrainInfo, action ResizeAction) {
	o.Logger.Debug("train_resized", append(trainAttrs(info),
		slog.String("action", string(action)),
	)...)
}

func trainAttrs(info TrainInfo) []any {
	attrs := []any{
		slog.Uint64("train_id", info.ID),
		slog.String("owner", info.Owner),
	}
	if info.ParentID != 0 {
		attrs = append(attrs, slog.Uint64("parent_id", info.ParentID))
	}
	return attrs
}

// BasicMetrics collects simple counters and aggregate step durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	trainsStarted     atomic.Int64
	trainsFinished    atomic.Int64
	stepsCompleted    atomic.Int64
	stepsSkipped      atomic.Int64
	stepsDegenerate   atomic.Int64
	resizes           atomic.Int64
	totalStepDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	TrainsStarted  int64
	TrainsFinished int64
	LiveTrains     int64

	StepsCompleted  int64
	StepsSkipped    int64
	StepsDegenerate int64
	Resizes         int64
	AvgStepDuration time.Duration
}

func (m *BasicMetrics) OnTrainStart(info TrainInfo) {
	m.trainsStarted.Add(1)
}

func (m *BasicMetrics) OnTrainFinished(info TrainInfo) {
	m.trainsFinished.Add(1)
}

func (m *BasicMetrics) OnStepCompleted(info TrainInfo, kind StepKind, seq int, outcome Outcome, d time.Duration) {
	switch outcome {
	case OutcomeCompleted:
		// Only naturally completed steps count towards the average duration.
		m.stepsCompleted.Add(1)
		m.totalStepDuration.Add(d.Nanoseconds())
	case OutcomeSkipped:
		m.stepsSkipped.Add(1)
	case OutcomeDegenerate:
		m.stepsDegenerate.Add(1)
	}
}

func (m *BasicMetrics) OnResize(info TrainInfo, action ResizeAction) {
	m.resizes.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	started := m.trainsStarted.Load()
	finished := m.trainsFinished.Load()
	steps := m.stepsCompleted.Load()
	totalNs := m.totalStepDuration.Load()

	var avg time.Duration
	if steps > 0 {
		avg = time.Duration(totalNs / steps)
	}

	return BasicMetricsSnapshot{
		TrainsStarted:   started,
		TrainsFinished:  finished,
		LiveTrains:      started - finished,
		StepsCompleted:  steps,
		StepsSkipped:    m.stepsSkipped.Load(),
		StepsDegenerate: m.stepsDegenerate.Load(),
		Resizes:         m.resizes.Load(),
		AvgStepDuration: avg,
	}
}
