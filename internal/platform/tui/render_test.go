package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/ghostbird/internal/config"
	"github.com/vovakirdan/ghostbird/internal/core"
	"github.com/vovakirdan/ghostbird/internal/games/flappy"
)

var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// testFrame is a running frame with the bird mid-field. On a 60x21 screen the
// field maps 10 px per column and 20 px per row below the HUD.
func testFrame() Frame {
	cfg := config.Default()
	return Frame{
		State:   flappy.InitialState(cfg),
		At:      epoch,
		Started: true,
		Run:     1,
	}
}

func TestDrawFrameBird(t *testing.T) {
	cfg := config.Default()
	scr := core.NewScreen(60, 21)

	DrawFrame(scr, cfg, testFrame())

	// Bird at (180, 200) -> column 18, row 10 + HUD
	if got := scr.GetCell(18, 11); got.Rune != birdGlyph || got.Color != core.ColorBrightYellow {
		t.Errorf("bird cell = %+v, expected %q in bright yellow", got, birdGlyph)
	}

	f := testFrame()
	f.State.Collided = true
	DrawFrame(scr, cfg, f)
	if got := scr.GetCell(18, 11); got.Color != core.ColorRed {
		t.Errorf("colliding bird color = %v, expected red", got.Color)
	}
}

func TestDrawFrameBirdOutsideField(t *testing.T) {
	cfg := config.Default()
	scr := core.NewScreen(60, 21)

	tests := []struct {
		y   float64
		row int
	}{
		{-745, 1}, // Above the field: first row below the HUD
		{500, 20}, // Below the field: last row
		{400, 20}, // On the bottom edge
	}
	for _, tc := range tests {
		f := testFrame()
		f.State.Position.Y = tc.y
		DrawFrame(scr, cfg, f)
		if got := scr.GetCell(18, tc.row).Rune; got != birdGlyph {
			t.Errorf("bird at y=%v: cell (18, %d) = %q, expected %q", tc.y, tc.row, got, birdGlyph)
		}
	}
}

func TestDrawFrameHUD(t *testing.T) {
	cfg := config.Default()
	scr := core.NewScreen(60, 21)

	f := testFrame()
	f.State.Lives = 2
	f.State.Score = 4
	f.Best = 7
	f.Ghosts = 3
	DrawFrame(scr, cfg, f)

	hud := scr.Row(0)
	if !strings.Contains(hud, "♥♥·") {
		t.Errorf("HUD %q does not show 2 of 3 lives", hud)
	}
	if !strings.Contains(hud, "score 4  best 7  run 1  ghosts 3") {
		t.Errorf("HUD %q missing score line", hud)
	}
}

func TestDrawFramePipe(t *testing.T) {
	cfg := config.Default()
	scr := core.NewScreen(60, 21)

	f := testFrame()
	f.State.Pipes = []flappy.SpawnedPipe{{Pipe: flappy.Pipe{GapY: 0.5, GapHeight: 0.2}, SpawnedAt: epoch}}
	// After 2.5s the pipe spans x [300, 350] -> columns 30..34
	f.At = epoch.Add(2500 * time.Millisecond)
	DrawFrame(scr, cfg, f)

	// Top pipe covers y [0, 160) -> rows 0..7 of the field
	if got := scr.GetCell(30, 1).Rune; got != pipeGlyph {
		t.Errorf("top pipe cell = %q, expected %q", got, pipeGlyph)
	}
	// Gap at y 200 -> field row 10
	if got := scr.GetCell(30, 11).Rune; got != ' ' {
		t.Errorf("gap cell = %q, expected blank", got)
	}
	// Bottom pipe from y 240 -> field row 12
	if got := scr.GetCell(34, 20).Rune; got != pipeGlyph {
		t.Errorf("bottom pipe cell = %q, expected %q", got, pipeGlyph)
	}
	if got := scr.GetCell(35, 20).Rune; got == pipeGlyph {
		t.Error("pipe drawn past its right edge")
	}

	// Scrolled off the left edge: not drawn
	f.At = epoch.Add(10 * time.Second)
	DrawFrame(scr, cfg, f)
	for y := 1; y < scr.Height(); y++ {
		if strings.ContainsRune(scr.Row(y), pipeGlyph) {
			t.Fatalf("off-screen pipe drawn on row %d", y)
		}
	}
}

func TestDrawFrameGhosts(t *testing.T) {
	cfg := config.Default()
	scr := core.NewScreen(60, 21)

	f := testFrame()
	f.State.Ghosts = []flappy.Ghost{
		{X: 180, Y: 100, Visible: true},
		{X: 180, Y: 300, Visible: false},
	}
	DrawFrame(scr, cfg, f)

	if got := scr.GetCell(18, 6); got.Rune != ghostGlyph || got.Color != core.ColorDimGray {
		t.Errorf("visible ghost cell = %+v, expected dim %q", got, ghostGlyph)
	}
	if got := scr.GetCell(18, 16).Rune; got == ghostGlyph {
		t.Error("hidden ghost was drawn")
	}
}

func TestDrawFrameBanners(t *testing.T) {
	cfg := config.Default()
	scr := core.NewScreen(60, 21)

	f := testFrame()
	f.Started = false
	DrawFrame(scr, cfg, f)
	if !strings.Contains(scr.String(), "press enter or click to start") {
		t.Error("idle frame has no start banner")
	}

	f = testFrame()
	f.State.GameEnd = true
	f.State.Lives = 0
	f.Last = flappy.Result{Reason: flappy.ReasonCrashed}
	DrawFrame(scr, cfg, f)
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Error("crashed frame has no game over banner")
	}

	f.State.Lives = 2
	f.Last = flappy.Result{Reason: flappy.ReasonCleared}
	DrawFrame(scr, cfg, f)
	if !strings.Contains(scr.String(), "CLEARED!") {
		t.Error("cleared frame has no cleared banner")
	}
}

func TestDrawFrameTinyScreen(t *testing.T) {
	// Must not panic
	DrawFrame(core.NewScreen(5, 1), config.Default(), testFrame())
	DrawFrame(core.NewScreen(0, 0), config.Default(), testFrame())
}

func TestRenderScreenPlainText(t *testing.T) {
	scr := core.NewScreen(5, 2)
	scr.DrawText(0, 0, "hello")
	scr.DrawTextColored(0, 1, "ab", core.ColorRed)

	out := RenderScreen(scr)
	if !strings.Contains(out, "hello") {
		t.Errorf("RenderScreen() = %q, expected it to contain hello", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", strings.Count(out, "\n"))
	}
}
