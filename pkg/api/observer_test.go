package api

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"
)

//
// Helpers
//

// testObserver is a simple Observer implementation used to verify fan-out behavior.
type testObserver struct {
	mu sync.Mutex

	starts        int
	finishes      int
	stepStarts    int
	stepCompletes int
	resizes       int

	lastInfo    TrainInfo
	lastKind    StepKind
	lastSeq     int
	lastOutcome Outcome
	lastAction  ResizeAction
	lastDur     time.Duration
}

func (o *testObserver) OnTrainStart(info TrainInfo) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.starts++
	o.lastInfo = info
}

func (o *testObserver) OnTrainFinished(info TrainInfo) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finishes++
	o.lastInfo = info
}

func (o *testObserver) OnStepStart(info TrainInfo, kind StepKind, seq int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stepStarts++
	o.lastKind = kind
	o.lastSeq = seq
}

func (o *testObserver) OnStepCompleted(info TrainInfo, kind StepKind, seq int, outcome Outcome, d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stepCompletes++
	o.lastKind = kind
	o.lastSeq = seq
	o.lastOutcome = outcome
	o.lastDur = d
}

func (o *testObserver) OnResize(info TrainInfo, action ResizeAction) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resizes++
	o.lastAction = action
}

// recordingHandler is a minimal slog.Handler that just records log records.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (h *recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	// Copy to avoid reuse issues.
	cpy := slog.Record{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		cpy.AddAttrs(a)
		return true
	})
	h.records = append(h.records, cpy)
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *recordingHandler) WithGroup(name string) slog.Handler {
	return h
}

func attrsToMap(r slog.Record) map[string]any {
	m := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value.Any()
		return true
	})
	return m
}

func newTestInfo() TrainInfo {
	return TrainInfo{ID: 7, Owner: "sparkle"}
}

//
// NoopObserver
//

func TestNoopObserver_DoesNotPanic(t *testing.T) {
	info := newTestInfo()
	var o Observer = NoopObserver{}

	o.OnTrainStart(info)
	o.OnTrainFinished(info)
	o.OnStepStart(info, StepTween, 1)
	o.OnStepCompleted(info, StepTween, 1, OutcomeCompleted, time.Second)
	o.OnResize(info, ResizeSkip)
}

//
// CompositeObserver
//

func TestNewCompositeObserver_EmptyReturnsNoop(t *testing.T) {
	o := NewCompositeObserver()
	if _, ok := o.(NoopObserver); !ok {
		t.Fatalf("expected NewCompositeObserver() to return NoopObserver, got %T", o)
	}
}

func TestNewCompositeObserver_SingleReturnsThatObserver(t *testing.T) {
	single := &testObserver{}
	o := NewCompositeObserver(single, nil) // include a nil to ensure it is filtered

	if got, ok := o.(*testObserver); !ok || got != single {
		t.Fatalf("expected the single non-nil observer to be returned, got %T (%p)", o, o)
	}
}

func TestCompositeObserver_ForwardsAllEvents(t *testing.T) {
	info := newTestInfo()

	o1 := &testObserver{}
	o2 := &testObserver{}
	co, ok := NewCompositeObserver(o1, o2).(*CompositeObserver)
	if !ok {
		t.Fatalf("expected *CompositeObserver")
	}

	co.OnTrainStart(info)
	co.OnStepStart(info, StepDelay, 2)
	co.OnStepCompleted(info, StepDelay, 2, OutcomeSkipped, 2*time.Second)
	co.OnResize(info, ResizeNothing)
	co.OnTrainFinished(info)

	for i, o := range []*testObserver{o1, o2} {
		if o.starts != 1 || o.finishes != 1 || o.stepStarts != 1 || o.stepCompletes != 1 || o.resizes != 1 {
			t.Fatalf("observer %d did not receive all calls: %+v", i+1, o)
		}
		if o.lastInfo != info {
			t.Fatalf("observer %d info mismatch: %+v", i+1, o.lastInfo)
		}
		if o.lastKind != StepDelay || o.lastSeq != 2 || o.lastOutcome != OutcomeSkipped || o.lastDur != 2*time.Second {
			t.Fatalf("observer %d step mismatch: %+v", i+1, o)
		}
		if o.lastAction != ResizeNothing {
			t.Fatalf("observer %d resize action mismatch: %q", i+1, o.lastAction)
		}
	}
}

//
// LoggingObserver
//

func TestNewLoggingObserver_NilLoggerUsesDefault(t *testing.T) {
	o := NewLoggingObserver(nil)
	lo, ok := o.(*LoggingObserver)
	if !ok {
		t.Fatalf("expected *LoggingObserver, got %T", o)
	}
	if lo.Logger == nil {
		t.Fatalf("expected non-nil Logger when created with nil")
	}
}

func TestLoggingObserver_OnTrainStart_EmitsInfoLog(t *testing.T) {
	h := &recordingHandler{}
	o := NewLoggingObserver(slog.New(h))

	o.OnTrainStart(newTestInfo())

	if len(h.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(h.records))
	}

	rec := h.records[0]
	if rec.Level != slog.LevelInfo {
		t.Fatalf("expected LevelInfo, got %v", rec.Level)
	}
	if rec.Message != "train_start" {
		t.Fatalf("expected message train_start, got %q", rec.Message)
	}

	attrs := attrsToMap(rec)
	if attrs["train_id"] != uint64(7) {
		t.Fatalf("expected train_id=7, got %v", attrs["train_id"])
	}
	if attrs["owner"] != "sparkle" {
		t.Fatalf("expected owner=sparkle, got %v", attrs["owner"])
	}
	if _, ok := attrs["parent_id"]; ok {
		t.Fatalf("expected no parent_id for a root train")
	}
}

func TestLoggingObserver_OnStepCompleted_CarriesOutcome(t *testing.T) {
	h := &recordingHandler{}
	o := NewLoggingObserver(slog.New(h))

	info := newTestInfo()
	info.ParentID = 3
	o.OnStepCompleted(info, StepTween, 4, OutcomeDegenerate, 0)

	if len(h.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(h.records))
	}
	rec := h.records[0]
	if rec.Level != slog.LevelDebug {
		t.Fatalf("expected LevelDebug, got %v", rec.Level)
	}
	if rec.Message != "step_completed" {
		t.Fatalf("expected step_completed, got %q", rec.Message)
	}

	attrs := attrsToMap(rec)
	if attrs["step"] != "tween" {
		t.Fatalf("expected step=tween, got %v", attrs["step"])
	}
	if attrs["outcome"] != "degenerate" {
		t.Fatalf("expected outcome=degenerate, got %v", attrs["outcome"])
	}
	if attrs["seq"] != int64(4) {
		t.Fatalf("expected seq=4, got %v", attrs["seq"])
	}
	if attrs["parent_id"] != uint64(3) {
		t.Fatalf("expected parent_id=3, got %v", attrs["parent_id"])
	}
}

//
// BasicMetrics
//

func TestBasicMetrics_TrainCountersAndSnapshot(t *testing.T) {
	var m BasicMetrics
	info := newTestInfo()

	// 3 started, 1 finished -> live = 2
	m.OnTrainStart(info)
	m.OnTrainStart(info)
	m.OnTrainStart(info)
	m.OnTrainFinished(info)
	m.OnResize(info, ResizeRestart)

	snap := m.Snapshot()

	if snap.TrainsStarted != 3 {
		t.Fatalf("TrainsStarted=%d, want 3", snap.TrainsStarted)
	}
	if snap.TrainsFinished != 1 {
		t.Fatalf("TrainsFinished=%d, want 1", snap.TrainsFinished)
	}
	if snap.LiveTrains != 2 {
		t.Fatalf("LiveTrains=%d, want 2", snap.LiveTrains)
	}
	if snap.Resizes != 1 {
		t.Fatalf("Resizes=%d, want 1", snap.Resizes)
	}
	if snap.StepsCompleted != 0 || snap.AvgStepDuration != 0 {
		t.Fatalf("expected no step metrics yet, got %+v", snap)
	}
}

func TestBasicMetrics_OnlyCompletedStepsCountDuration(t *testing.T) {
	var m BasicMetrics
	info := newTestInfo()

	m.OnStepCompleted(info, StepTween, 1, OutcomeCompleted, 1*time.Second)
	m.OnStepCompleted(info, StepDelay, 2, OutcomeCompleted, 3*time.Second)
	m.OnStepCompleted(info, StepTween, 3, OutcomeSkipped, 10*time.Second)
	m.OnStepCompleted(info, StepTween, 4, OutcomeDegenerate, 0)
	m.OnStepCompleted(info, StepTween, 5, OutcomeKilled, 5*time.Second)

	snap := m.Snapshot()

	if snap.StepsCompleted != 2 {
		t.Fatalf("StepsCompleted=%d, want 2", snap.StepsCompleted)
	}
	if snap.StepsSkipped != 1 {
		t.Fatalf("StepsSkipped=%d, want 1", snap.StepsSkipped)
	}
	if snap.StepsDegenerate != 1 {
		t.Fatalf("StepsDegenerate=%d, want 1", snap.StepsDegenerate)
	}
	wantAvg := 2 * time.Second // (1s + 3s) / 2
	if snap.AvgStepDuration != wantAvg {
		t.Fatalf("AvgStepDuration=%v, want %v", snap.AvgStepDuration, wantAvg)
	}
}

func TestParseResizeAction(t *testing.T) {
	cases := map[string]ResizeAction{
		"":        ResizeRestart,
		"restart": ResizeRestart,
		"skip":    ResizeSkip,
		"nothing": ResizeNothing,
	}
	for in, want := range cases {
		got, err := ParseResizeAction(in)
		if err != nil {
			t.Fatalf("ParseResizeAction(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseResizeAction(%q)=%q, want %q", in, got, want)
		}
	}
	if _, err := ParseResizeAction("bounce"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
