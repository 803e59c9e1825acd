package flappy

import (
	"container/heap"
	"context"
	"time"
)

// Timeline is a single-threaded event queue over virtual time. All delayed
// work of the engine (ticks, pipe timers, ghost pacers) is registered here and
// fired in deadline order, ties broken by registration order.
//
// A Timeline does not sleep. AdvanceTo fires everything due up to a point in
// time; the real-time driver calls it with the wall clock, simulations with
// any time they like. Timers belong to a context: once it is cancelled they are
// discarded without firing, which is how a run tears down everything it started.
type Timeline struct {
	now   time.Time
	seq   uint64
	queue timerQueue
}

type timer struct {
	at    time.Time
	seq   uint64
	ctx   context.Context
	fire  func(now time.Time)
	index int
}

// NewTimeline creates a timeline whose clock starts at start.
func NewTimeline(start time.Time) *Timeline {
	return &Timeline{now: start}
}

// Now returns the current virtual time.
func (tl *Timeline) Now() time.Time {
	return tl.now
}

// After schedules fn to run once, d after the current time.
func (tl *Timeline) After(ctx context.Context, d time.Duration, fn func(now time.Time)) {
	tl.schedule(ctx, tl.now.Add(max(d, 0)), fn)
}

// Every schedules fn every d, starting d from now, for as long as fn returns
// true and ctx is alive. Deadlines are fixed multiples of d, so a late
// AdvanceTo does not make the cadence drift.
func (tl *Timeline) Every(ctx context.Context, d time.Duration, fn func(now time.Time) bool) {
	if d <= 0 {
		d = time.Millisecond
	}
	var tick func(now time.Time)
	next := tl.now.Add(d)
	tick = func(now time.Time) {
		if !fn(now) {
			return
		}
		next = next.Add(d)
		tl.schedule(ctx, next, tick)
	}
	tl.schedule(ctx, next, tick)
}

func (tl *Timeline) schedule(ctx context.Context, at time.Time, fn func(now time.Time)) {
	if ctx.Err() != nil {
		return
	}
	tl.seq++
	heap.Push(&tl.queue, &timer{at: at, seq: tl.seq, ctx: ctx, fire: fn})
}

// Next returns the earliest live deadline. Cancelled timers at the head of
// the queue are dropped.
func (tl *Timeline) Next() (time.Time, bool) {
	for tl.queue.Len() > 0 {
		head := tl.queue[0]
		if head.ctx.Err() == nil {
			return head.at, true
		}
		heap.Pop(&tl.queue)
	}
	return time.Time{}, false
}

// AdvanceTo fires every live timer due at or before t, in order, and moves the
// clock to t. While a timer fires, Now reports that timer's deadline. Timers
// scheduled while firing are honoured if they fall within t. It returns the
// number of timers fired.
func (tl *Timeline) AdvanceTo(t time.Time) int {
	fired := 0
	for {
		at, ok := tl.Next()
		if !ok || at.After(t) {
			break
		}
		next := heap.Pop(&tl.queue).(*timer)
		if next.at.After(tl.now) {
			tl.now = next.at
		}
		next.fire(tl.now)
		fired++
	}
	if t.After(tl.now) {
		tl.now = t
	}
	return fired
}

// Advance moves the clock forward by d. See AdvanceTo.
func (tl *Timeline) Advance(d time.Duration) int {
	return tl.AdvanceTo(tl.now.Add(d))
}

// Pending returns the number of live timers.
func (tl *Timeline) Pending() int {
	n := 0
	for _, t := range tl.queue {
		if t.ctx.Err() == nil {
			n++
		}
	}
	return n
}

// timerQueue is a min-heap ordered by (deadline, registration order).
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
