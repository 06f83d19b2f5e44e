package engine

import (
	"fmt"

	"github.com/petrijr/tweentrain/pkg/api"
)

// Registry holds every train created for a process (or a test) and is the
// only place trains come from.
//
// It reuses the slot of a finished train instead of growing, and broadcasts
// resize events to every live train. Like Train, it is not safe for
// concurrent use.
type Registry struct {
	trains   []*Train
	nextID   uint64
	observer api.Observer
}

// Option configures a Registry.
type Option func(*Registry)

// WithObserver attaches an observer to every train the registry creates.
func WithObserver(obs api.Observer) Option {
	return func(r *Registry) {
		if obs != nil {
			r.observer = obs
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{observer: api.NoopObserver{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create returns a fresh idle train bound to scene. The first finished
// train found in the registry has its slot taken over; otherwise the
// registry grows by one.
func (r *Registry) Create(scene api.Scene) *Train {
	if scene.Tweens == nil || scene.Time == nil {
		panic(fmt.Sprintf("tweentrain: scene %q needs both an animator and a clock", scene.Name))
	}

	r.nextID++
	t := newTrain(r.nextID, scene, r.observer)

	for i, existing := range r.trains {
		if existing.finished {
			r.trains[i] = t
			return t
		}
	}
	r.trains = append(r.trains, t)
	return t
}

// BroadcastResize calls Resize on every train that has not finished.
//
// It walks a snapshot from the newest slot down, so trains finishing or
// being created by the resize itself do not disturb the iteration.
func (r *Registry) BroadcastResize() {
	snapshot := r.snapshot()
	for i := len(snapshot) - 1; i >= 0; i-- {
		if t := snapshot[i]; !t.finished {
			t.Resize()
		}
	}
}

// KillAll kills every train that has not finished.
func (r *Registry) KillAll() {
	snapshot := r.snapshot()
	for i := len(snapshot) - 1; i >= 0; i-- {
		snapshot[i].Kill()
	}
}

// Len returns the number of slots, finished or not.
func (r *Registry) Len() int {
	return len(r.trains)
}

// Live returns the number of trains that have not finished.
func (r *Registry) Live() int {
	n := 0
	for _, t := range r.trains {
		if !t.finished {
			n++
		}
	}
	return n
}

// Trains returns the trains that have not finished, in slot order.
func (r *Registry) Trains() []*Train {
	out := make([]*Train, 0, len(r.trains))
	for _, t := range r.trains {
		if !t.finished {
			out = append(out, t)
		}
	}
	return out
}

func (r *Registry) snapshot() []*Train {
	out := make([]*Train, len(r.trains))
	copy(out, r.trains)
	return out
}
