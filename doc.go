// Package tweentrain sequences animations, delays and callbacks into
// trains that run one step at a time inside a host's frame loop.
//
// A train is a FIFO queue of steps. Each step is one of:
//
//  1. a tween, built lazily from a factory when the step starts
//  2. a delay, fixed or computed when the step starts
//  3. an event, a callback that runs and completes immediately
//  4. a parallel group of child trains that all have to finish
//
// Trains suspend only while a tween or a delay is outstanding. Everything
// else runs synchronously, so a train of a thousand events completes inside
// a single Run call without growing the stack.
//
// # Scenes
//
// Trains never animate or keep time themselves. They run inside a Scene,
// which supplies an Animator (AddTween) and a Clock (AfterFunc). Hosts that
// do not bring their own engine use LocalStage, which bundles a manual clock,
// a small tween engine and a Registry behind a single Tick call.
//
// # Registry
//
// The Registry creates trains, reuses the slots of finished ones and
// broadcasts resizes. A resize only affects trains with a running tween; what
// happens to the tween is chosen by its TweenConfig.ResizeAction.
//
// # Manual control
//
// SkipToNext abandons the running tween and moves on. SkipToLast jumps to the
// final step. Kill stops the train on the spot and reports it finished.
//
// # Programs
//
// Trains can also be described in YAML and compiled onto a Registry; see
// ParseProgram, LoadProgram and Compile. Names in a program are resolved
// through Bindings.
//
// # Observability
//
// Every train reports to an Observer. LoggingObserver writes log/slog
// records and BasicMetrics keeps counters. JournalObserver appends events to
// an EventStore such as the SQLite journal used by NewSQLiteBundle.
//
// Trains, the Registry and LocalStage are not safe for concurrent use.
package tweentrain
