package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ghostbird/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ghostbird SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays on its own: ghosts come only from that connection's
earlier runs. Run results are stored per-server (all users share the same
run history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.ghostbird/host_key

Examples:
  ghostbird serve                           # Listen on :23234 with auto-generated key
  ghostbird serve --ssh :2222               # Listen on port 2222
  ghostbird serve --host-key ./my_host_key  # Use specific host key
  ghostbird serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	a := setup(cmd, os.Stderr)

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      a.paths.DB,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        a.cfg,
		Pipes:       a.pipes,
		Map:         a.mapName,
	}

	server, err := tui.NewSSHServer(cfg, a.logger.WithPrefix("ghostbird-ssh"))
	if err != nil {
		fatal(a.logger, "error creating server", err)
	}

	fmt.Printf("Starting ghostbird SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatal(a.logger, "server error", err)
	}
}
