// ghostbird is a terminal flappy-bird variant with lives, rebounds and ghost
// replays of your earlier runs.
//
// Usage:
//
//	ghostbird play      - Play in the terminal
//	ghostbird serve     - Start SSH server for remote play
//	ghostbird sim       - Run a headless scripted simulation
//	ghostbird scores    - Show the best recorded runs
//	ghostbird map       - Validate and print an obstacle schedule
//
// Global flags:
//
//	--config <path>     - Config YAML (default: search ~/.ghostbird/configs, ./configs)
//	--map <path>        - Obstacle schedule CSV (default: embedded map)
//	--seed <value>      - RNG seed (0 = random based on time)
//	--db <path>         - Run history database (default: ~/.ghostbird/runs.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ghostbird/internal/config"
	"github.com/vovakirdan/ghostbird/internal/games/flappy"
)

var (
	// Global flags
	flagConfig   string
	flagMap      string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ghostbird",
	Short: "ghostbird - race the ghosts of your earlier runs",
	Long: `ghostbird is a side-scrolling avoidance game for the terminal.
The bird has three lives; hitting a pipe or the edge of the field costs one
and bounces it away. Every finished run comes back as a ghost in the next.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  sim      - Run a headless scripted simulation
  scores   - View the best recorded runs
  map      - Validate and print an obstacle schedule

Examples:
  ghostbird play
  ghostbird play --map ./maps/hard.csv --seed 42
  ghostbird serve --ssh :2222
  ghostbird sim --flap-every 950ms --flap-offset 25ms
  ghostbird scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagMap, "map", "", "Path to obstacle schedule CSV (default: embedded map)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default: ~/.ghostbird/runs.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(mapCmd)
}

// app is everything a subcommand needs once flags, environment and files
// have been resolved.
type app struct {
	cfg     config.Config
	paths   config.Paths
	pipes   []flappy.Pipe
	mapName string
	logger  *log.Logger
}

// newLogger builds the root logger. Unknown levels fall back to info.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "ghostbird",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// setup resolves configuration in order: flags, then GHOSTBIRD_* environment,
// then the config file, then defaults. Failures are fatal.
func setup(cmd *cobra.Command, logOut io.Writer) *app {
	logger := newLogger(logOut)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatal(logger, "could not load config", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Run.Seed = flagSeed
	}

	paths, err := config.DefaultPaths().ApplyEnv()
	if err != nil {
		fatal(logger, "could not read environment", err)
	}
	if cmd.Flags().Changed("map") {
		paths.Map = flagMap
	}
	if cmd.Flags().Changed("db") {
		paths.DB = flagDBPath
	}

	pipes, err := flappy.LoadSchedule(paths.Map)
	if err != nil {
		fatal(logger, "could not load map", err)
	}

	a := &app{
		cfg:     cfg,
		paths:   paths,
		pipes:   pipes,
		mapName: mapName(paths.Map),
		logger:  logger,
	}
	logger.Debug("configured",
		"map", a.mapName,
		"pipes", len(pipes),
		"seed", cfg.Run.Seed,
		"tick", cfg.TickInterval(),
		"lives", cfg.Run.Lives,
	)
	return a
}

// mapName names a schedule for the run history: the file name without its
// extension, or "default" for the embedded map.
func mapName(path string) string {
	if path == "" {
		return "default"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// fatal logs a startup failure and exits.
func fatal(logger *log.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
