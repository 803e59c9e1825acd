package flappy

import (
	"time"

	"github.com/vovakirdan/ghostbird/internal/config"
)

// PipeCenterX returns the horizontal centre of a pipe at time now.
func PipeCenterX(cfg config.Config, p SpawnedPipe, now time.Time) float64 {
	return PipeX(cfg, p, now) + cfg.Obstacles.Width/2
}

// PassedCount counts pipes whose centre has scrolled strictly past the bird.
func PassedCount(cfg config.Config, s State, now time.Time) int {
	passed := 0
	for _, p := range s.Pipes {
		if PipeCenterX(cfg, p, now) < s.Position.X {
			passed++
		}
	}
	return passed
}

// Score recomputes the score and each ghost's visibility. Ghost i stays visible
// while the live score has not exceeded the score that run died with.
func Score(cfg config.Config, archive []GhostTape, now time.Time) Op {
	return func(s State) State {
		s.Score = PassedCount(cfg, s, now)

		if len(s.Ghosts) > 0 {
			ghosts := make([]Ghost, len(s.Ghosts))
			for i, g := range s.Ghosts {
				deathScore := -1
				if i < len(archive) {
					deathScore = archive[i].DeathScore
				}
				g.Visible = s.Score <= deathScore
				ghosts[i] = g
			}
			s.Ghosts = ghosts
		}
		return s
	}
}

// EndWhenCleared ends the run once every scheduled pipe has been passed.
func EndWhenCleared(total int) Op {
	return func(s State) State {
		s.GameEnd = s.GameEnd || s.Score >= total
		return s
	}
}
