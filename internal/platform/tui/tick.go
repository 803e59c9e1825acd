// Package tui provides the Bubble Tea front end of ghostbird: the play screen,
// the run history board and the SSH server. The engine runs on its own
// goroutine; the UI only sends actions and renders published frames.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ghostbird/internal/games/flappy"
)

// FrameMsg carries a frame published by the engine.
type FrameMsg Frame

// feedClosedMsg is sent once the engine has stopped publishing.
type feedClosedMsg struct{}

// waitFrame returns a command that blocks until the next frame is published.
func waitFrame(feed *flappy.Feed[Frame]) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-feed.Frames():
			return FrameMsg(f)
		case <-feed.Done():
			return feedClosedMsg{}
		}
	}
}
