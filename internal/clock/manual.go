// Package clock provides a deterministic, manually advanced clock for
// driving trains from a host frame loop or from tests.
package clock

import (
	"sort"
	"time"
)

// Manual is a clock whose time only moves when Advance is called.
// Timer callbacks run synchronously inside Advance, on the caller's
// goroutine. It is not safe for concurrent use.
type Manual struct {
	now    time.Time
	timers []*timer
	seq    uint64

	advancing bool
	round     uint64
}

type timer struct {
	due time.Time
	seq uint64
	fn  func()

	// minRound defers zero-delay timers registered during an Advance to the
	// next one, so a callback re-arming itself with no delay cannot spin.
	minRound uint64
}

// NewManual returns a clock reading start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current clock time.
func (c *Manual) Now() time.Time {
	return c.now
}

// AfterFunc schedules fn to run once d from now. Negative durations are
// treated as zero.
func (c *Manual) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &timer{due: c.now.Add(d), seq: c.seq, fn: fn}
	if c.advancing && d == 0 {
		t.minRound = c.round + 1
	}
	c.timers = append(c.timers, t)
}

// Pending returns the number of timers that have not fired yet.
func (c *Manual) Pending() int {
	return len(c.timers)
}

// Advance moves the clock forward by d, firing due timers in due order.
// Timers with equal due times fire in registration order. The clock reads
// each timer's due time while its callback runs.
func (c *Manual) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.round++
	c.advancing = true
	defer func() { c.advancing = false }()

	target := c.now.Add(d)
	for {
		t := c.popDue(target)
		if t == nil {
			break
		}
		if t.due.After(c.now) {
			c.now = t.due
		}
		t.fn()
	}
	c.now = target
}

func (c *Manual) popDue(target time.Time) *timer {
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].due.Equal(c.timers[j].due) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].due.Before(c.timers[j].due)
	})
	for i, t := range c.timers {
		if t.due.After(target) {
			return nil
		}
		if t.minRound > c.round {
			continue
		}
		c.timers = append(c.timers[:i], c.timers[i+1:]...)
		return t
	}
	return nil
}
