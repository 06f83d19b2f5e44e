// Package api contains the contracts shared by the tweentrain sequencing
// engine and the hosts it runs on. It defines what the engine consumes from
// its collaborators and what it reports to observers.
//
// Most users interact with the higher-level tweentrain package, which
// re-exports selected types and helpers from this package. The api package is
// intended for hosts that plug in their own animation engine or clock, and for
// contributors extending the engine itself.
//
// # Collaborators
//
// A Train never animates or keeps time by itself. It delegates to:
//
//   - an Animator, which turns a TweenConfig into a running Tween
//   - a Clock, which fires one-shot callbacks after a delay
//
// Both are bundled into a Scene, the owning context a Train is bound to.
// Collaborators must invoke callbacks on the same goroutine that drives the
// trains; the engine does no locking of its own.
//
// # Tween Configuration
//
// TweenConfig is opaque to the engine except for Targets, OnComplete, OnStop
// and ResizeAction. A config with no targets is degenerate: the step is
// treated as already complete and the animator is never called.
//
// # Observability
//
// The Observer interface receives train and step lifecycle callbacks.
// Ready-made implementations cover structured logging (LoggingObserver),
// in-memory counters (BasicMetrics) and fan-out (CompositeObserver).
// The persistence layer adds a journaling observer on top of TrainEvent.
package api
