// Package flappy implements ghostbird's engine: a side-scrolling avoidance game
// with lives, rebounds and ghost replays of earlier runs.
//
// Every event source (tick, pipe timers, ghost pacers, input) emits Ops, pure
// State -> State functions, which a Run folds in emission order onto a single
// State. The Run is the only writer; renderers receive read-only snapshots.
package flappy

import (
	"github.com/vovakirdan/ghostbird/internal/config"
	"github.com/vovakirdan/ghostbird/internal/core"
)

// Op is a pure state transformation. Ops never mutate the State they receive
// in place; slices are replaced, never rewritten.
type Op func(State) State

// Ghost is the per-tick projection of one archived run onto the live run.
type Ghost struct {
	X, Y    float64
	Visible bool
}

// offscreenGhost fills slots whose replay has not produced a frame yet.
var offscreenGhost = Ghost{X: -9999, Y: -9999, Visible: false}

// State is the authoritative snapshot of one run.
type State struct {
	Lives    int
	Position core.Point // X is fixed; the world scrolls past the bird
	Velocity float64
	Score    int
	GameEnd  bool
	Pipes    []SpawnedPipe // Only grows during a run
	Collided bool          // Previous tick's hit flag, for rising-edge detection
	Ghosts   []Ghost
	Tape     []core.Point // One sample per physics tick; frozen at GameEnd
}

// InitialState returns the state every run starts from.
func InitialState(cfg config.Config) State {
	return State{
		Lives: cfg.Run.Lives,
		Position: core.Point{
			X: cfg.AvatarX(),
			Y: cfg.Field.Height / 2,
		},
	}
}

// Fold applies ops in order. Convenience for tests and replays.
func Fold(s State, ops ...Op) State {
	for _, op := range ops {
		s = op(s)
	}
	return s
}
