package flappy

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ghostbird/internal/config"
	"github.com/vovakirdan/ghostbird/internal/core"
)

// Session supervises consecutive runs for one player. It owns the ghost
// archive, starts a run on each restart request and archives every run that
// ends. A Session is driven from a single goroutine (see Serve and Simulate);
// other goroutines observe it through the observer callback.
type Session struct {
	cfg     config.Config
	pipes   []Pipe
	seed    int64
	tl      *Timeline
	archive *Archive
	logger  *log.Logger

	observer func(State)
	onResult func(Result)

	ctx    context.Context
	cancel context.CancelFunc

	run  *Run
	runs int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers a callback receiving every published state.
func WithObserver(fn func(State)) Option {
	return func(s *Session) {
		s.observer = fn
	}
}

// WithResultHandler registers a callback receiving each finished run.
func WithResultHandler(fn func(Result)) Option {
	return func(s *Session) {
		s.onResult = fn
	}
}

// WithTimeline drives the session from tl instead of a timeline starting now.
func WithTimeline(tl *Timeline) Option {
	return func(s *Session) {
		if tl != nil {
			s.tl = tl
		}
	}
}

// WithArchive starts the session with an existing archive.
func WithArchive(a *Archive) Option {
	return func(s *Session) {
		if a != nil {
			s.archive = a
		}
	}
}

// NewSession creates an idle session; nothing runs until Restart is called.
// Every run of the session replays the same random stream: the seed comes from
// the config, or from the clock when the configured seed is 0.
func NewSession(cfg config.Config, pipes []Pipe, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		cfg:     cfg,
		pipes:   pipes,
		archive: NewArchive(),
		logger:  log.New(io.Discard),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tl == nil {
		s.tl = NewTimeline(time.Now())
	}

	s.seed = cfg.Run.Seed
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	s.seed &= rngM - 1
	return s
}

// Restart starts a new run unless one is in progress. It reports whether a
// run was started.
func (s *Session) Restart() bool {
	if s.ctx.Err() != nil || s.Active() {
		return false
	}

	s.runs++
	s.logger.Debug("run starting", "run", s.runs, "seed", s.seed, "ghosts", s.archive.Len())
	s.run = startRun(s.ctx, s.tl, runParams{
		cfg:     s.cfg,
		number:  s.runs,
		seed:    s.seed,
		pipes:   s.pipes,
		archive: s.archive.Snapshot(),
		onState: s.publish,
		onEnd:   s.finish,
	})
	return true
}

// Flap forwards the impulse to the active run. It is ignored when idle.
func (s *Session) Flap() {
	if s.Active() {
		s.run.Flap()
	}
}

// Handle dispatches a player action. It reports false for ActionQuit so that
// drivers know to stop.
func (s *Session) Handle(a core.Action) bool {
	switch a {
	case core.ActionFlap:
		s.Flap()
	case core.ActionRestart:
		s.Restart()
	case core.ActionQuit:
		return false
	}
	return true
}

func (s *Session) finish(st State, res Result) {
	s.archive.Append(GhostTape{Frames: st.Tape, DeathScore: st.Score})
	s.logger.Info("run ended",
		"run", res.Run,
		"reason", res.Reason,
		"score", res.Score,
		"lives", res.Lives,
		"ticks", res.Ticks,
	)
	if s.onResult != nil {
		s.onResult(res)
	}
}

func (s *Session) publish(st State) {
	if s.observer != nil {
		s.observer(st)
	}
}

// Active reports whether a run is in progress.
func (s *Session) Active() bool {
	return s.run != nil && s.run.Active()
}

// State returns the state of the current or last run. Before the first run it
// returns the initial state.
func (s *Session) State() State {
	if s.run == nil {
		return InitialState(s.cfg)
	}
	return s.run.State()
}

// Started reports whether any run has been started.
func (s *Session) Started() bool {
	return s.run != nil
}

// Runs returns the number of runs started.
func (s *Session) Runs() int {
	return s.runs
}

// Seed returns the masked seed every run starts from.
func (s *Session) Seed() int64 {
	return s.seed
}

// Archive returns the session's ghost archive.
func (s *Session) Archive() *Archive {
	return s.archive
}

// Timeline returns the clock driving the session.
func (s *Session) Timeline() *Timeline {
	return s.tl
}

// Config returns the session's configuration.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Pipes returns the obstacle schedule.
func (s *Session) Pipes() []Pipe {
	return s.pipes
}

// Close stops the current run and rejects further restarts.
func (s *Session) Close() {
	s.cancel()
}
