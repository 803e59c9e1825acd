package flappy

import (
	"slices"
	"sync"

	"github.com/vovakirdan/ghostbird/internal/core"
)

// GhostTape is an archived run: its recorded trajectory and the score it died with.
type GhostTape struct {
	Frames     []core.Point
	DeathScore int
}

// Archive holds every finished run of a session. It is append-only and never
// pruned. Runs are strictly sequential so there is one writer at a time, but
// renderers may read concurrently.
type Archive struct {
	mu    sync.RWMutex
	tapes []GhostTape
}

// NewArchive creates an empty archive.
func NewArchive() *Archive {
	return &Archive{}
}

// Append stores a finished run. The frames are copied.
func (a *Archive) Append(tape GhostTape) {
	tape.Frames = slices.Clone(tape.Frames)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.tapes = append(a.tapes, tape)
}

// Snapshot returns the archive as it is now. Later appends do not show up in
// the returned slice.
func (a *Archive) Snapshot() []GhostTape {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clip(a.tapes)
}

// Len returns the number of archived runs.
func (a *Archive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.tapes)
}

// ReplayFrame moves ghost idx to frame f. Slots below idx that have not been
// reached yet are filled with an off-screen, invisible ghost. The slot keeps
// whatever visibility scoring last gave it.
func ReplayFrame(idx int, f core.Point) Op {
	return func(s State) State {
		n := max(len(s.Ghosts), idx+1)
		ghosts := make([]Ghost, n)
		for i := range ghosts {
			switch {
			case i == idx:
				visible := true
				if i < len(s.Ghosts) {
					visible = s.Ghosts[i].Visible
				}
				ghosts[i] = Ghost{X: f.X, Y: f.Y, Visible: visible}
			case i < len(s.Ghosts):
				ghosts[i] = s.Ghosts[i]
			default:
				ghosts[i] = offscreenGhost
			}
		}
		s.Ghosts = ghosts
		return s
	}
}
