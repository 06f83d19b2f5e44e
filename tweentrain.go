package tweentrain

import (
	"github.com/petrijr/tweentrain/internal/engine"
	"github.com/petrijr/tweentrain/internal/persistence"
	"github.com/petrijr/tweentrain/internal/script"
	"github.com/petrijr/tweentrain/internal/tween"
	"github.com/petrijr/tweentrain/pkg/api"
)

// Re-export key types so users don't need to dig into internal packages.

type (
	Train    = engine.Train
	Registry = engine.Registry
	Option   = engine.Option

	Step         = engine.Step
	TweenStep    = engine.TweenStep
	DelayStep    = engine.DelayStep
	EventStep    = engine.EventStep
	ParallelStep = engine.ParallelStep

	Scene        = api.Scene
	TweenConfig  = api.TweenConfig
	Tween        = api.Tween
	Animator     = api.Animator
	Clock        = api.Clock
	ResizeAction = api.ResizeAction
	State        = api.State
	StepKind     = api.StepKind
	Outcome      = api.Outcome
	TrainInfo    = api.TrainInfo

	Observer             = api.Observer
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver

	TrainEvent      = api.TrainEvent
	EventStore      = persistence.EventStore
	EventFilter     = persistence.EventFilter
	JournalObserver = persistence.JournalObserver
	JournalOption   = persistence.JournalOption

	Program  = script.Program
	Bindings = script.Bindings

	Sprite = tween.Sprite
	Target = tween.Target
)

// Re-export constructors and helpers.

var (
	NewRegistry  = engine.NewRegistry
	WithObserver = engine.WithObserver

	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
	ParseResizeAction    = api.ParseResizeAction

	NewInMemoryEventStore = persistence.NewInMemoryEventStore
	NewSQLiteEventStore   = persistence.NewSQLiteEventStore
	NewJournalObserver    = persistence.NewJournalObserver
	WithJournalLogger     = persistence.WithJournalLogger
	WithJournalClock      = persistence.WithJournalClock
	WithJournalRun        = persistence.WithJournalRun

	NewSprite = tween.NewSprite

	ParseProgram = script.Parse
	LoadProgram  = script.LoadFile
	Compile      = script.Compile
)

// Re-export sentinel errors.

var (
	ErrTrainNotFound = persistence.ErrTrainNotFound
	ErrUnknownEvent  = script.ErrUnknownEvent
	ErrInvalidStep   = script.ErrInvalidStep
)

// Re-export resize actions and states.

const (
	ResizeRestart = api.ResizeRestart
	ResizeSkip    = api.ResizeSkip
	ResizeNothing = api.ResizeNothing

	StateIdle             = api.StateIdle
	StateRunningTween     = api.StateRunningTween
	StateRunningDelay     = api.StateRunningDelay
	StateRunningEvent     = api.StateRunningEvent
	StateAwaitingChildren = api.StateAwaitingChildren
	StateFinished         = api.StateFinished
)
