package flappy

import (
	"context"
	"time"

	"github.com/vovakirdan/ghostbird/internal/config"
)

// Reason explains why a run ended.
type Reason string

const (
	ReasonCrashed Reason = "crashed" // Out of lives
	ReasonCleared Reason = "cleared" // Every pipe passed
)

// Result summarises a finished run.
type Result struct {
	Run      int // 1-based run number within the session
	Seed     int64
	Score    int
	Lives    int
	Ticks    int
	Duration time.Duration
	Reason   Reason
}

// Run is one play-through: a set of timers on a Timeline feeding ops into a
// single State. A Run holds its final state once GameEnd is set and drops
// every op that arrives afterwards.
type Run struct {
	cfg     config.Config
	number  int
	seed    int64
	tl      *Timeline
	rng     *RNG
	archive []GhostTape
	total   int

	ctx    context.Context
	cancel context.CancelFunc

	state   State
	startAt time.Time
	ticks   int

	onState func(State)
	onEnd   func(State, Result)
}

type runParams struct {
	cfg     config.Config
	number  int
	seed    int64
	pipes   []Pipe
	archive []GhostTape
	onState func(State)
	onEnd   func(State, Result)
}

// startRun registers the tick, one spawn timer per pipe and one pacer per
// archived ghost, all bound to a context derived from parent.
func startRun(parent context.Context, tl *Timeline, p runParams) *Run {
	ctx, cancel := context.WithCancel(parent)
	r := &Run{
		cfg:     p.cfg,
		number:  p.number,
		seed:    p.seed,
		tl:      tl,
		rng:     NewRNG(p.seed),
		archive: p.archive,
		total:   len(p.pipes),
		ctx:     ctx,
		cancel:  cancel,
		state:   InitialState(p.cfg),
		startAt: tl.Now(),
		onState: p.onState,
		onEnd:   p.onEnd,
	}

	tick := p.cfg.TickInterval()
	tl.Every(ctx, tick, r.tick)

	for _, pipe := range p.pipes {
		tl.After(ctx, pipe.Delay(), func(now time.Time) {
			r.apply(Spawn(SpawnedPipe{Pipe: pipe, SpawnedAt: now}))
		})
	}

	for i, tape := range p.archive {
		if len(tape.Frames) == 0 {
			continue
		}
		k := 0
		tl.Every(ctx, tick, func(time.Time) bool {
			r.apply(ReplayFrame(i, tape.Frames[k]))
			k++
			return k < len(tape.Frames)
		})
	}

	r.publish()
	return r
}

// tick emits the per-tick ops in their fixed order. One PRNG value is drawn
// every tick whether or not it is needed.
func (r *Run) tick(now time.Time) bool {
	if r.state.GameEnd {
		return false
	}
	r.ticks++
	rv := r.rng.Next()
	r.apply(
		Physics(r.cfg),
		Collide(r.cfg, rv, now),
		Score(r.cfg, r.archive, now),
		EndWhenCleared(r.total),
	)
	return !r.state.GameEnd
}

// Flap applies the upward impulse immediately.
func (r *Run) Flap() {
	r.apply(Flap(r.cfg))
}

// apply folds ops onto the state. The op that ends the run is the last one
// applied; the run then tears down its timers and reports the result once.
func (r *Run) apply(ops ...Op) {
	if r.state.GameEnd {
		return
	}
	for _, op := range ops {
		r.state = op(r.state)
		if r.state.GameEnd {
			r.finish()
			return
		}
	}
	r.publish()
}

func (r *Run) finish() {
	r.cancel()
	r.publish()
	if r.onEnd != nil {
		r.onEnd(r.state, r.Result())
	}
}

func (r *Run) publish() {
	if r.onState != nil {
		r.onState(r.state)
	}
}

// State returns the current state.
func (r *Run) State() State {
	return r.state
}

// Active reports whether the run is still in play.
func (r *Run) Active() bool {
	return !r.state.GameEnd
}

// Ticks returns the number of ticks processed.
func (r *Run) Ticks() int {
	return r.ticks
}

// Result describes the run as it stands.
func (r *Run) Result() Result {
	reason := ReasonCleared
	if r.state.Lives <= 0 {
		reason = ReasonCrashed
	}
	return Result{
		Run:      r.number,
		Seed:     r.seed,
		Score:    r.state.Score,
		Lives:    r.state.Lives,
		Ticks:    r.ticks,
		Duration: r.tl.Now().Sub(r.startAt),
		Reason:   reason,
	}
}

// Stop cancels the run's timers without ending it.
func (r *Run) Stop() {
	r.cancel()
}
