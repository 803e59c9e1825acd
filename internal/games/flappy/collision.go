package flappy

import (
	"time"

	"github.com/vovakirdan/ghostbird/internal/config"
	"github.com/vovakirdan/ghostbird/internal/core"
)

// HitFlags reports which side of the bird struck something.
type HitFlags struct {
	Top    bool
	Bottom bool
}

// Any reports whether either side was hit.
func (h HitFlags) Any() bool {
	return h.Top || h.Bottom
}

// Or merges two sets of flags.
func (h HitFlags) Or(other HitFlags) HitFlags {
	return HitFlags{Top: h.Top || other.Top, Bottom: h.Bottom || other.Bottom}
}

// Direction is +1 for a top hit (push down), -1 for a bottom hit (push up)
// and 0 when both or neither side was hit.
func (h HitFlags) Direction() float64 {
	var d float64
	if h.Top {
		d++
	}
	if h.Bottom {
		d--
	}
	return d
}

// BirdRect returns the bird's hitbox.
func BirdRect(cfg config.Config, s State) core.Rect {
	return core.RectAround(s.Position.X, s.Position.Y, cfg.Avatar.Width, cfg.Avatar.Height)
}

// PipeX returns the left edge of a pipe at time now.
func PipeX(cfg config.Config, p SpawnedPipe, now time.Time) float64 {
	elapsed := now.Sub(p.SpawnedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	ms := float64(elapsed) / float64(time.Millisecond)
	return cfg.Field.Width - ms*cfg.PxPerMs()
}

// PipeRects returns the top and bottom rectangles of a pipe at time now.
func PipeRects(cfg config.Config, p SpawnedPipe, now time.Time) (top, bottom core.Rect) {
	x := PipeX(cfg, p, now)
	h := cfg.Field.Height
	gapCenter := p.GapY * h
	gapHeight := p.GapHeight * h

	top = core.Rect{X0: x, Y0: 0, X1: x + cfg.Obstacles.Width, Y1: max(0, gapCenter-gapHeight/2)}
	bottomY := gapCenter + gapHeight/2
	bottom = core.Rect{X0: x, Y0: bottomY, X1: x + cfg.Obstacles.Width, Y1: bottomY + max(0, h-bottomY)}
	return top, bottom
}

// BoundsHit tests the bird against the top and bottom of the field.
func BoundsHit(cfg config.Config, s State) HitFlags {
	bird := BirdRect(cfg, s)
	return HitFlags{
		Top:    bird.Y0 <= 0,
		Bottom: bird.Y1 >= cfg.Field.Height,
	}
}

// PipesHit tests the bird against every spawned pipe. Hitting the top
// rectangle of any pipe counts as a top hit, and likewise for the bottom.
func PipesHit(cfg config.Config, s State, now time.Time) HitFlags {
	bird := BirdRect(cfg, s)

	var hits HitFlags
	for _, p := range s.Pipes {
		top, bottom := PipeRects(cfg, p, now)
		hits = hits.Or(HitFlags{
			Top:    bird.Overlaps(top),
			Bottom: bird.Overlaps(bottom),
		})
	}
	return hits
}

// ReboundMagnitude maps a PRNG value in [-1, 1] to a rebound speed.
// With the default offset 2 and scale 5 the result lies in [5, 15].
func ReboundMagnitude(cfg config.Config, r float64) float64 {
	return (r + cfg.Rebound.Offset) * cfg.Rebound.Scale
}

// Collide resolves collisions at time now using this tick's PRNG value r.
// Only a rising edge (not colliding -> colliding) costs a life and applies the
// rebound; while the bird keeps overlapping, velocity is left alone. When both
// sides are hit at once the direction cancels and the impulse is zero, but the
// life is still lost.
func Collide(cfg config.Config, r float64, now time.Time) Op {
	magnitude := ReboundMagnitude(cfg, r)
	return func(s State) State {
		hits := PipesHit(cfg, s, now).Or(BoundsHit(cfg, s))
		hit := hits.Any()

		if hit && !s.Collided {
			s.Lives = max(0, s.Lives-1)
			s.Velocity = hits.Direction() * magnitude
		}

		s.Collided = hit
		s.GameEnd = s.GameEnd || s.Lives <= 0
		return s
	}
}
