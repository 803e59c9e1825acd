package flappy

import (
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/ghostbird/internal/config"
	"github.com/vovakirdan/ghostbird/internal/core"
)

// crashSchedule has one late pipe; a bird that never flaps bounces off the
// floor until it runs out of lives before the pipe reaches it.
var crashSchedule = []Pipe{{GapY: 0.5, GapHeight: 0.3, Time: 1}}

// clearSchedule can be cleared by flapping every 950ms from 25ms.
var clearSchedule = []Pipe{
	{GapY: 0.45, GapHeight: 0.5, Time: 0.5},
	{GapY: 0.45, GapHeight: 0.5, Time: 1.5},
}

func newTestSession(t *testing.T, pipes []Pipe, opts ...Option) (*Session, *Timeline) {
	t.Helper()
	tl := NewTimeline(SimEpoch)
	sess := NewSession(config.Default(), pipes, append(opts, WithTimeline(tl))...)
	t.Cleanup(sess.Close)
	return sess, tl
}

// flapper drives a session's timeline, flapping every period. A zero period
// never flaps.
type flapper struct {
	tl     *Timeline
	sess   *Session
	next   time.Time
	period time.Duration
}

func newFlapper(tl *Timeline, sess *Session, period, offset time.Duration) *flapper {
	return &flapper{tl: tl, sess: sess, next: tl.Now().Add(offset), period: period}
}

// until advances the timeline to t, flapping on schedule.
func (f *flapper) until(t time.Time) {
	for {
		at, ok := f.tl.Next()
		if !ok || at.After(t) {
			break
		}
		if f.period > 0 && !f.next.After(at) {
			f.tl.AdvanceTo(f.next)
			f.sess.Flap()
			f.next = f.next.Add(f.period)
			continue
		}
		f.tl.AdvanceTo(at)
	}
	f.tl.AdvanceTo(t)
}

func TestSessionIdleUntilRestart(t *testing.T) {
	sess, tl := newTestSession(t, crashSchedule)

	sess.Flap()
	tl.Advance(time.Second)

	if sess.Started() || sess.Active() {
		t.Error("session started without a restart")
	}
	if got := sess.State(); got.Position.Y != 200 || got.Velocity != 0 {
		t.Errorf("idle State() = %+v, expected the initial state", got)
	}
}

func TestSessionCrashRun(t *testing.T) {
	var results []Result
	sess, tl := newTestSession(t, crashSchedule, WithResultHandler(func(r Result) {
		results = append(results, r)
	}))

	if !sess.Restart() {
		t.Fatal("Restart() = false, expected true")
	}
	tl.Advance(time.Minute)

	s := sess.State()
	if !s.GameEnd || s.Lives != 0 || s.Score != 0 {
		t.Errorf("final state: GameEnd=%v Lives=%d Score=%d, expected true 0 0", s.GameEnd, s.Lives, s.Score)
	}
	if len(s.Tape) != 53 {
		t.Errorf("len(Tape) = %d, expected 53", len(s.Tape))
	}

	if len(results) != 1 {
		t.Fatalf("got %d results, expected 1", len(results))
	}
	want := Result{Run: 1, Seed: 1234, Score: 0, Lives: 0, Ticks: 53, Duration: 2650 * time.Millisecond, Reason: ReasonCrashed}
	if results[0] != want {
		t.Errorf("result = %+v, expected %+v", results[0], want)
	}

	archive := sess.Archive().Snapshot()
	if len(archive) != 1 {
		t.Fatalf("archive has %d tapes, expected 1", len(archive))
	}
	if archive[0].DeathScore != 0 || len(archive[0].Frames) != 53 {
		t.Errorf("archived tape: DeathScore=%d frames=%d, expected 0 and 53", archive[0].DeathScore, len(archive[0].Frames))
	}

	if tl.Pending() != 0 {
		t.Errorf("Pending() = %d after the run ended, expected 0", tl.Pending())
	}
}

func TestSessionClearRun(t *testing.T) {
	var results []Result
	sess, tl := newTestSession(t, clearSchedule, WithResultHandler(func(r Result) {
		results = append(results, r)
	}))

	sess.Restart()
	newFlapper(tl, sess, 950*time.Millisecond, 25*time.Millisecond).until(SimEpoch.Add(time.Minute))

	s := sess.State()
	if !s.GameEnd || s.Lives != 3 || s.Score != 2 {
		t.Errorf("final state: GameEnd=%v Lives=%d Score=%d, expected true 3 2", s.GameEnd, s.Lives, s.Score)
	}
	if len(results) != 1 || results[0].Reason != ReasonCleared {
		t.Fatalf("results = %+v, expected one cleared run", results)
	}
	if results[0].Ticks != 105 || results[0].Duration != 5250*time.Millisecond {
		t.Errorf("ticks=%d duration=%v, expected 105 and 5.25s", results[0].Ticks, results[0].Duration)
	}
	if sess.Archive().Snapshot()[0].DeathScore != 2 {
		t.Errorf("DeathScore = %d, expected 2", sess.Archive().Snapshot()[0].DeathScore)
	}
}

func TestSessionRestartIgnoredWhileActive(t *testing.T) {
	sess, tl := newTestSession(t, crashSchedule)

	sess.Restart()
	tl.Advance(500 * time.Millisecond)
	if sess.Restart() {
		t.Error("Restart() during a run = true, expected false")
	}
	if sess.Runs() != 1 {
		t.Errorf("Runs() = %d, expected 1", sess.Runs())
	}

	tl.Advance(time.Minute)
	if !sess.Restart() {
		t.Error("Restart() after the run ended = false, expected true")
	}
	if sess.Runs() != 2 {
		t.Errorf("Runs() = %d, expected 2", sess.Runs())
	}
}

func TestSessionRunsRepeatTheSameStream(t *testing.T) {
	sess, tl := newTestSession(t, crashSchedule)

	for range 3 {
		sess.Restart()
		tl.Advance(time.Minute)
	}

	archive := sess.Archive().Snapshot()
	if len(archive) != 3 {
		t.Fatalf("archive has %d tapes, expected 3", len(archive))
	}
	for i := 1; i < len(archive); i++ {
		if !slices.Equal(archive[i].Frames, archive[0].Frames) {
			t.Errorf("run %d trajectory differs from run 1", i+1)
		}
	}
	if tl.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", tl.Pending())
	}
}

func TestSessionGhostReplay(t *testing.T) {
	sess, tl := newTestSession(t, clearSchedule)

	// Run 1 never flaps and dies with score 0
	sess.Restart()
	tl.Advance(time.Minute)
	first := sess.Archive().Snapshot()[0]

	// Run 2 flaps its way through both pipes
	start := tl.Now()
	sess.Restart()
	f := newFlapper(tl, sess, 950*time.Millisecond, 25*time.Millisecond)

	f.until(start.Add(20 * time.Millisecond))
	if len(sess.State().Ghosts) != 0 {
		t.Errorf("ghosts before the first frame = %d, expected 0", len(sess.State().Ghosts))
	}
	f.until(start.Add(50 * time.Millisecond))
	s := sess.State()
	if len(s.Ghosts) != 1 {
		t.Fatalf("len(Ghosts) = %d, expected 1", len(s.Ghosts))
	}
	if g := s.Ghosts[0]; g.Y != first.Frames[0].Y || !g.Visible {
		t.Errorf("ghost after one tick = %+v, expected visible at frame 0 (y=%v)", g, first.Frames[0].Y)
	}

	f.until(start.Add(4200 * time.Millisecond))
	if s := sess.State(); s.Score != 0 || !s.Ghosts[0].Visible {
		t.Errorf("at 4.2s: Score=%d visible=%v, expected 0 true", s.Score, s.Ghosts[0].Visible)
	}

	f.until(start.Add(4250 * time.Millisecond))
	s = sess.State()
	if s.Score != 1 || s.Ghosts[0].Visible {
		t.Errorf("at 4.25s: Score=%d visible=%v, expected 1 false", s.Score, s.Ghosts[0].Visible)
	}
	// The ghost has run out of frames and holds its last one
	if last := first.Frames[len(first.Frames)-1]; s.Ghosts[0].Y != last.Y {
		t.Errorf("ghost Y = %v, expected last frame %v", s.Ghosts[0].Y, last.Y)
	}
}

func TestSessionPublishedStatesAreStable(t *testing.T) {
	var published []State
	sess, tl := newTestSession(t, crashSchedule, WithObserver(func(s State) {
		published = append(published, s)
	}))

	sess.Restart()
	tl.Advance(500 * time.Millisecond)
	early := published[len(published)-1]
	frames := slices.Clone(early.Tape)
	tl.Advance(time.Minute)

	if !slices.Equal(early.Tape, frames) {
		t.Error("a published tape changed after publishing")
	}
	if last := published[len(published)-1]; !last.GameEnd {
		t.Error("last published state has GameEnd = false")
	}

	lives, score := config.Default().Run.Lives, 0
	for i, s := range published {
		if s.Lives > lives {
			t.Errorf("state %d: lives rose from %d to %d", i, lives, s.Lives)
		}
		if s.Score < score {
			t.Errorf("state %d: score fell from %d to %d", i, score, s.Score)
		}
		lives, score = s.Lives, s.Score
	}
}

func TestSessionHandleAndClose(t *testing.T) {
	sess, tl := newTestSession(t, crashSchedule)

	if !sess.Handle(core.ActionRestart) {
		t.Error("Handle(restart) = false, expected true")
	}
	if !sess.Active() {
		t.Fatal("restart action did not start a run")
	}
	sess.Close()

	if tl.Pending() != 0 {
		t.Errorf("Pending() = %d after Close, expected 0", tl.Pending())
	}
	tl.Advance(time.Minute)
	if sess.Restart() {
		t.Error("Restart() after Close = true, expected false")
	}
}

func TestSessionSeedFromClock(t *testing.T) {
	cfg := config.Default()
	cfg.Run.Seed = 0
	sess := NewSession(cfg, crashSchedule, WithTimeline(NewTimeline(SimEpoch)))
	defer sess.Close()

	if s := sess.Seed(); s < 0 || s >= rngM {
		t.Errorf("Seed() = %d, expected a 31-bit value", s)
	}
}
