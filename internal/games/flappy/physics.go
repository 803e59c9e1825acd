package flappy

import (
	"github.com/vovakirdan/ghostbird/internal/config"
	"github.com/vovakirdan/ghostbird/internal/core"
)

// Physics integrates one tick of constant downward acceleration and records
// the new position on the tape while the run is active.
func Physics(cfg config.Config) Op {
	gravity := cfg.Physics.Gravity
	return func(s State) State {
		s.Velocity += gravity
		s.Position.Y += s.Velocity

		if !s.GameEnd {
			s.Tape = append(s.Tape, core.Point{X: s.Position.X, Y: s.Position.Y})
		}
		return s
	}
}

// Flap overrides the velocity with the upward impulse.
func Flap(cfg config.Config) Op {
	v := cfg.Physics.FlapVelocity
	return func(s State) State {
		s.Velocity = v
		return s
	}
}

// Spawn appends a pipe that appeared at the given time.
func Spawn(p SpawnedPipe) Op {
	return func(s State) State {
		pipes := make([]SpawnedPipe, len(s.Pipes), len(s.Pipes)+1)
		copy(pipes, s.Pipes)
		s.Pipes = append(pipes, p)
		return s
	}
}
