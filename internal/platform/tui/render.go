package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ghostbird/internal/config"
	"github.com/vovakirdan/ghostbird/internal/core"
	"github.com/vovakirdan/ghostbird/internal/games/flappy"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDimGray:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Glyphs used on the play field.
const (
	birdGlyph  = '>'
	ghostGlyph = '@'
	pipeGlyph  = '█'
)

// hudRows is the number of rows above the play field.
const hudRows = 1

// DrawFrame renders a frame onto the screen: HUD on the first row, the field
// scaled into the rest. Pipes are drawn while any part is on screen, ghosts
// only while visible.
func DrawFrame(scr *core.Screen, cfg config.Config, f Frame) {
	scr.Clear()
	if scr.Height() <= hudRows {
		return
	}

	vp := core.NewViewport(scr.Width(), scr.Height()-hudRows, cfg.Field.Width, cfg.Field.Height)
	st := f.State

	for _, p := range st.Pipes {
		drawPipe(scr, vp, cfg, p, f)
	}

	for _, g := range st.Ghosts {
		if !g.Visible {
			continue
		}
		col, row := fieldCell(vp, core.Point{X: g.X, Y: g.Y})
		scr.SetColored(col, row, ghostGlyph, core.ColorDimGray)
	}

	birdColor := core.ColorBrightYellow
	if st.Collided {
		birdColor = core.ColorRed
	}
	col, row := fieldCell(vp, st.Position)
	scr.SetColored(col, row, birdGlyph, birdColor)

	drawHUD(scr, cfg, f)

	switch {
	case !f.Started:
		drawBanner(scr, core.ColorBrightWhite,
			"G H O S T B I R D",
			"press enter or click to start",
		)
	case st.GameEnd:
		title := "CLEARED!"
		color := core.ColorBrightGreen
		if f.Last.Reason == flappy.ReasonCrashed || st.Lives <= 0 {
			title = "GAME OVER"
			color = core.ColorRed
		}
		drawBanner(scr, color,
			title,
			fmt.Sprintf("score %d  best %d", st.Score, f.Best),
			"press r or click to race your ghost",
		)
	}
}

// fieldCell projects a field point to a screen cell below the HUD. Points
// above or below the field are pinned to its edge rows.
func fieldCell(vp core.Viewport, p core.Point) (int, int) {
	col, row := vp.Cell(core.Point{X: p.X, Y: core.ClampF(p.Y, 0, vp.FieldH)})
	return col, core.Clamp(row, 0, vp.ScreenH-1) + hudRows
}

func drawPipe(scr *core.Screen, vp core.Viewport, cfg config.Config, p flappy.SpawnedPipe, f Frame) {
	x := flappy.PipeX(cfg, p, f.At)
	if x+cfg.Obstacles.Width < 0 {
		return
	}

	top, bottom := flappy.PipeRects(cfg, p, f.At)
	x0 := vp.Col(top.X0)
	w := max(1, vp.Col(top.X1)-x0)

	if h := vp.Row(top.Y1); h > 0 {
		scr.FillArea(x0, hudRows, w, h, pipeGlyph, core.ColorGreen)
	}
	if bottom.Height() > 0 {
		y0 := vp.Row(bottom.Y0)
		scr.FillArea(x0, y0+hudRows, w, vp.ScreenH-y0, pipeGlyph, core.ColorGreen)
	}
}

func drawHUD(scr *core.Screen, cfg config.Config, f Frame) {
	st := f.State
	hearts := strings.Repeat("♥", st.Lives) + strings.Repeat("·", max(0, cfg.Run.Lives-st.Lives))

	scr.DrawTextColored(1, 0, hearts, core.ColorRed)
	scr.DrawTextColored(cfg.Run.Lives+3, 0,
		fmt.Sprintf("score %d  best %d  run %d  ghosts %d", st.Score, f.Best, f.Run, f.Ghosts),
		core.ColorWhite,
	)
}

// drawBanner draws centred lines inside a box in the middle of the screen.
func drawBanner(scr *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	x := (scr.Width() - boxW) / 2
	y := (scr.Height() - boxH) / 2

	scr.FillArea(x, y, boxW, boxH, ' ', core.ColorDefault)
	scr.DrawBox(x, y, boxW, boxH, c)
	for i, l := range lines {
		scr.DrawTextCentered(y+1+i, l, c)
	}
}
