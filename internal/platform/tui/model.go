package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ghostbird/internal/config"
	"github.com/vovakirdan/ghostbird/internal/core"
)

// helpRows is the number of rows below the field reserved for the help bar.
const helpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model of the play screen. It owns no game state:
// keys and clicks are forwarded to the Player, frames come back through its feed.
type Model struct {
	player   *Player
	cfg      config.Config
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	frame    Frame
	quitting bool
}

// NewModel creates the play screen for a running player.
func NewModel(player *Player, width, height int) Model {
	h := help.New()
	h.Width = width

	return Model{
		player: player,
		cfg:    player.cfg.Config,
		screen: core.NewScreen(width, max(0, height-helpRows)),
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return waitFrame(m.player.Feed())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if a := MouseAction(msg); a != core.ActionNone {
			m.player.Send(a)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(0, msg.Height-helpRows))
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = Frame(msg)
		return m, waitFrame(m.player.Feed())

	case feedClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.quitting = true
		m.player.Send(a)
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.player.Send(a)
	}
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	DrawFrame(m.screen, m.cfg, m.frame)

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("ghostbird_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// Frame returns the last frame received.
func (m Model) Frame() Frame {
	return m.frame
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawFrame(m.screen, m.cfg, m.frame)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run plays locally until the user quits.
func Run(ctx context.Context, cfg PlayerConfig, width, height int) error {
	player := StartPlayer(ctx, cfg)
	defer player.Stop()

	p := tea.NewProgram(
		NewModel(player, width, height),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
