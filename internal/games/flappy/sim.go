package flappy

import (
	"time"

	"github.com/vovakirdan/ghostbird/internal/config"
)

// SimEpoch is the virtual start time of simulated sessions.
var SimEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// SimOptions scripts a headless session.
type SimOptions struct {
	Runs        int           // Consecutive runs; at least 1
	FlapEvery   time.Duration // Flap period; 0 never flaps
	FlapOffset  time.Duration // First flap, relative to run start
	MaxDuration time.Duration // Per-run cap on virtual time; default 10 minutes
}

// SimReport is the outcome of Simulate.
type SimReport struct {
	Results  []Result
	Final    State // State of the last run
	Ghosts   int   // Archive size at the end
	TimedOut bool  // The last run hit MaxDuration without ending
}

// Simulate plays runs back to back on a virtual clock, flapping on a fixed
// schedule, and returns once every run has ended. The same inputs always give
// the same report. Any result handler or timeline among opts is replaced.
func Simulate(cfg config.Config, pipes []Pipe, opt SimOptions, opts ...Option) SimReport {
	if opt.Runs < 1 {
		opt.Runs = 1
	}
	if opt.MaxDuration <= 0 {
		opt.MaxDuration = 10 * time.Minute
	}

	var report SimReport
	tl := NewTimeline(SimEpoch)
	opts = append(opts,
		WithTimeline(tl),
		WithResultHandler(func(res Result) {
			report.Results = append(report.Results, res)
		}),
	)
	sess := NewSession(cfg, pipes, opts...)
	defer sess.Close()

	for range opt.Runs {
		sess.Restart()
		start := tl.Now()
		deadline := start.Add(opt.MaxDuration)
		nextFlap := start.Add(opt.FlapOffset)

		for sess.Active() {
			at, ok := tl.Next()
			if !ok || at.After(deadline) {
				break
			}
			if opt.FlapEvery > 0 && !nextFlap.After(at) {
				tl.AdvanceTo(nextFlap)
				sess.Flap()
				nextFlap = nextFlap.Add(opt.FlapEvery)
				continue
			}
			tl.AdvanceTo(at)
		}

		if sess.Active() {
			report.TimedOut = true
			break
		}
	}

	report.Final = sess.State()
	report.Ghosts = sess.Archive().Len()
	return report
}
