package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ghostbird/internal/config"
	"github.com/vovakirdan/ghostbird/internal/platform/tui"
	"github.com/vovakirdan/ghostbird/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play ghostbird in the terminal.

The first run starts when you press Enter or click. After a run ends, start
the next one the same way: the runs you finished replay as ghosts, visible for
as long as you have not beaten their score.

Controls:
  Space/W/Up     - Flap
  R/Enter/Click  - Start a run (once the previous one has ended)
  Ctrl+S         - Save a screenshot to ~/.ghostbird/screenshots
  Q/Ctrl+C       - Quit

Logs go to ~/.ghostbird/ghostbird.log (GHOSTBIRD_LOG) while playing.

Examples:
  ghostbird play
  ghostbird play --seed 1234
  ghostbird play --map ./maps/hard.csv --config ./my-ghostbird.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	logOut, closeLog := openLogFile()
	defer closeLog()

	a := setup(cmd, logOut)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open run history
	store, err := storage.Open(a.paths.DB)
	if err != nil {
		a.logger.Warn("could not open run history", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(context.Background(), tui.PlayerConfig{
		Config: a.cfg,
		Pipes:  a.pipes,
		Map:    a.mapName,
		Store:  store,
		Logger: a.logger,
	}, width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatal(a.logger, "error running game", runErr)
	}
}

// openLogFile opens the log file so that logging does not corrupt the
// alt-screen. It falls back to discarding logs.
func openLogFile() (io.Writer, func()) {
	paths, err := config.DefaultPaths().ApplyEnv()
	if err != nil {
		return io.Discard, func() {}
	}
	path, err := config.ExpandHome(paths.Log)
	if err != nil {
		return io.Discard, func() {}
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(filepath.Dir(path), 0o755)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
