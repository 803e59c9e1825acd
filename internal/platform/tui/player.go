package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ghostbird/internal/config"
	"github.com/vovakirdan/ghostbird/internal/core"
	"github.com/vovakirdan/ghostbird/internal/games/flappy"
	"github.com/vovakirdan/ghostbird/internal/storage"
)

// Frame is what the play screen renders: an engine state plus the session
// context around it.
type Frame struct {
	State   flappy.State
	At      time.Time // Engine time the state was published at
	Started bool      // A run has been started in this session
	Run     int
	Ghosts  int // Archived runs replayed as ghosts
	Best    int
	Last    flappy.Result // Most recent finished run; zero before the first
}

// PlayerConfig describes one player's game.
type PlayerConfig struct {
	Config config.Config
	Pipes  []flappy.Pipe
	Map    string         // Name the runs are recorded under
	Name   string         // Player name for the run history
	Store  *storage.Store // Optional
	Logger *log.Logger    // Optional
}

// Player runs one engine session on its own goroutine and bridges it to a UI:
// actions go in through Send, frames come out of Frames.
type Player struct {
	cfg    PlayerConfig
	sess   *flappy.Session
	feed   *flappy.Feed[Frame]
	inputs chan core.Action
	cancel context.CancelFunc
	done   chan struct{}

	// Engine goroutine only
	best int
	last flappy.Result
}

// StartPlayer starts the engine for one player. The session stays idle until
// the first restart action.
func StartPlayer(ctx context.Context, cfg PlayerConfig) *Player {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Name == "" {
		cfg.Name = "local"
	}

	p := &Player{
		cfg:    cfg,
		feed:   flappy.NewFeed[Frame](4),
		inputs: make(chan core.Action, 16),
		done:   make(chan struct{}),
	}

	if cfg.Store != nil {
		best, err := cfg.Store.BestScore(cfg.Map)
		if err != nil {
			cfg.Logger.Warn("could not load best score", "map", cfg.Map, "error", err)
		}
		p.best = best
	}

	p.sess = flappy.NewSession(cfg.Config, cfg.Pipes,
		flappy.WithLogger(cfg.Logger.With("player", cfg.Name)),
		flappy.WithObserver(p.publish),
		flappy.WithResultHandler(p.record),
	)

	ctx, p.cancel = context.WithCancel(ctx)
	go func() {
		defer close(p.done)
		defer p.feed.Close()
		p.publish(p.sess.State())
		p.sess.Serve(ctx, p.inputs)
	}()

	return p
}

func (p *Player) publish(st flappy.State) {
	p.feed.Publish(Frame{
		State:   st,
		At:      p.sess.Timeline().Now(),
		Started: p.sess.Started(),
		Run:     p.sess.Runs(),
		Ghosts:  p.sess.Archive().Len(),
		Best:    p.best,
		Last:    p.last,
	})
}

// record stores a finished run and republishes the final state, since the
// frame that carried GameEnd went out before the result existed.
func (p *Player) record(res flappy.Result) {
	p.last = res
	p.best = max(p.best, res.Score)

	if p.cfg.Store != nil {
		if _, err := p.cfg.Store.SaveRun(storage.RunRecord{
			Map:        p.cfg.Map,
			Player:     p.cfg.Name,
			Seed:       res.Seed,
			RunNo:      res.Run,
			Score:      res.Score,
			Lives:      res.Lives,
			Ticks:      res.Ticks,
			DurationMS: res.Duration.Milliseconds(),
			Reason:     string(res.Reason),
		}); err != nil {
			// Best-effort save, game continues regardless
			p.cfg.Logger.Warn("could not record run", "run", res.Run, "error", err)
		}
	}
	p.publish(p.sess.State())
}

// Send queues an action for the engine. It never blocks; when the queue is
// full the action is dropped.
func (p *Player) Send(a core.Action) {
	select {
	case p.inputs <- a:
	default:
	}
}

// Feed returns the frame feed.
func (p *Player) Feed() *flappy.Feed[Frame] {
	return p.feed
}

// Done is closed once the engine goroutine has exited.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

// Stop shuts the engine down and waits for it.
func (p *Player) Stop() {
	p.cancel()
	<-p.done
}
